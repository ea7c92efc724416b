package io

import "math"

// Dimension normalization constants.
const (
	BaseUnit     = 64
	TargetPixels = 1_048_576
	MaxPixels    = 2_097_152

	// MaxAspectError is the relative aspect ratio deviation a candidate may
	// have and still be preferred over closer pixel counts.
	MaxAspectError = 0.20
)

// OptimalDimensions picks the width and height, both multiples of BaseUnit,
// that best fit an original of w×h within MaxPixels.
//
// Candidates within MaxAspectError of the original aspect ratio always win
// over those outside it. Among acceptable candidates the smallest aspect
// error wins, ties going to the pixel count closest to TargetPixels. If no
// candidate is acceptable the closest pixel count wins instead.
// Non-positive inputs are treated as a square.
func OptimalDimensions(w, h int) (width, height int) {
	if w <= 0 || h <= 0 {
		w, h = BaseUnit, BaseUnit
	}
	aspect := float64(w) / float64(h)
	maxBlocks := MaxPixels / (BaseUnit * BaseUnit)

	type candidate struct {
		wb, hb int
		score  int
		err    float64
		ok     bool
	}
	eval := func(wb, hb int) candidate {
		px := wb * hb * BaseUnit * BaseUnit
		e := math.Abs(float64(wb)/float64(hb)-aspect) / aspect
		return candidate{wb, hb, abs(px - TargetPixels), e, e <= MaxAspectError}
	}
	better := func(c, best candidate) bool {
		switch {
		case c.ok && best.ok:
			return c.err < best.err || (c.err == best.err && c.score < best.score)
		case c.ok:
			return true
		case best.ok:
			return false
		}
		return c.score < best.score || (c.score == best.score && c.err < best.err)
	}

	best := eval(1, 1)
	for wb := 1; wb <= maxBlocks; wb++ {
		for hb := 1; wb*hb <= maxBlocks; hb++ {
			if c := eval(wb, hb); better(c, best) {
				best = c
			}
		}
	}
	return best.wb * BaseUnit, best.hb * BaseUnit
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
