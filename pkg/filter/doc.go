// Package filter implements the non-destructive filter families. A filter
// never touches the working image: Apply reads a source buffer and returns a
// new composited buffer that is only used for display and export.
//
// A filter is named by a Kind, a Family plus a Style for the families that
// have sub-styles:
//
//	emboss, edgeDetect, motionBlur, vignette, halftone, liquify,
//	colorGrading, noise, popArt-*, vintage-*, cyberpunk-*, artistic-*,
//	atmospheric-*, experimental-*
//
// Intensity runs from 0 to 100. Most families render their full effect and
// then blend it with the source by intensity. Families whose parameters are
// themselves driven by intensity (liquify, color grading, noise, the
// cyberpunk and atmospheric styles) scale each term directly.
//
// Animated styles take their clock from Spec.Frame at 60 frames per second,
// and random styles draw from Spec.Rand, so a frame renders identically when
// replayed.
package filter
