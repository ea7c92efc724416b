package selection

import (
	"math/rand/v2"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Default clump lifetimes, in frames.
const (
	DefaultMinLifetime = 90
	DefaultMaxLifetime = 150
)

// Clump is a region with a countdown lifetime. While alive, the scheduler
// applies destructive transforms to its rectangle once per frame.
type Clump struct {
	bitmap.Region
	FramesRemaining int32            `json:"frames_remaining"`
	Direction       bitmap.Direction `json:"direction"`
}

// Alive reports whether the clump still has frames left.
func (c Clump) Alive() bool {
	return c.FramesRemaining > 0
}

// Tick consumes one frame and reports whether the clump is still alive.
func (c *Clump) Tick() bool {
	c.FramesRemaining--
	return c.Alive()
}

// NewClumps turns regions into clumps with a uniformly random direction and
// a lifetime in [minLife, maxLife]. Empty regions are skipped.
func NewClumps(rng *rand.Rand, regions []bitmap.Region, minLife, maxLife int) []Clump {
	if minLife <= 0 {
		minLife = DefaultMinLifetime
	}
	if maxLife <= 0 {
		maxLife = DefaultMaxLifetime
	}
	clumps := make([]Clump, 0, len(regions))
	for _, r := range regions {
		if r.Empty() {
			continue
		}
		clumps = append(clumps, Clump{
			Region:          r,
			FramesRemaining: int32(max(1, randutil.Int(rng, minLife, maxLife))),
			Direction:       bitmap.Directions[rng.IntN(len(bitmap.Directions))],
		})
	}
	return clumps
}

// ClipClumps re-clips every clump to a width×height buffer and drops the ones
// left empty. The input slice is not modified.
func ClipClumps(clumps []Clump, width, height int) []Clump {
	out := make([]Clump, 0, len(clumps))
	for _, c := range clumps {
		c.Region = c.Region.Clip(width, height)
		if !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}
