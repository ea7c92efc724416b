// Package transform implements the destructive glitch transforms. Every
// function mutates its *bitmap.Buffer in place.
//
// Transforms that take a *bitmap.Mask only write destination pixels whose
// mask byte is bitmap.Selected; a nil mask writes everywhere. Intensities are
// given on a 0–100 scale and normalized internally, and every channel write
// is clamped to [0, 255].
//
// Randomized transforms draw from the *rand.Rand they are given so renders
// can be reproduced from a seed.
package transform
