// Package selection finds the rectangular regions that glitch effects are
// applied to.
//
// # Engine
//
// [Engine] inspects a [bitmap.Buffer] and returns candidate regions using one
// of the closed set of [Method] values:
//
//   - MethodRandom: random rectangles sized by [Intensity]
//   - MethodColorRange: HSL flood fill around pixels near a target hue
//   - MethodBrightness: 16px blocks in a shadows/midtones/highlights zone
//   - MethodEdgeDetection: 32px blocks dense in Sobel edges
//   - MethodOrganicShapes: jittered blobs reduced to bounding boxes
//   - MethodContentAware: edges plus color, overlap-merged
//   - MethodCombined: any subset of color/brightness/edges, overlap-merged
//
// Deterministic methods are cached per (method, config) until the buffer
// changes. Random and organic output is never cached.
//
// # Manager
//
// [Manager] owns the manual selection [bitmap.Mask], the interactive tool
// state machine (rect, brush, wand, lasso), mask-to-region conversion,
// clump creation and a short replay history.
//
// Every flood fill in this package uses an explicit stack and a visited
// bitmap sized to the buffer, so large selections cannot exhaust the call
// stack.
package selection
