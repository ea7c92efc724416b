// Package bitmap defines the pixel-level data model shared by every glitcher
// component.
//
// # Types
//
//   - [Buffer]: an RGBA8 bitmap, row-major, four bytes per pixel
//   - [Mask]: a per-pixel selection map whose bytes are always 0 or 255
//   - [Region]: an integer rectangle clipped to the buffer bounds
//   - [Direction]: one of the four axis-aligned shift directions
//
// # Ownership
//
// Destructive transforms mutate a *Buffer in place. Non-destructive filters
// read a *Buffer and return a new one; callers that need the original must
// [Buffer.Clone] it first.
//
// # Color helpers
//
// [Luminance], [RGBToHSL] and [HSLToRGB] implement the conversions used by
// selection and sorting. HSL math is delegated to go-colorful so every
// component agrees on hue wrap-around and rounding.
package bitmap
