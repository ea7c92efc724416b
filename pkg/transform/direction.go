package transform

import (
	"math/rand/v2"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Resolve returns the concrete direction for mode. DirectionRandom uses the
// clump's own direction and DirectionJitter draws a new one. ok is false for
// DirectionOff.
func (m DirectionMode) Resolve(clumpDir bitmap.Direction, rng *rand.Rand) (dir bitmap.Direction, ok bool) {
	switch m {
	case DirectionDown:
		return bitmap.Down, true
	case DirectionUp:
		return bitmap.Up, true
	case DirectionLeft:
		return bitmap.Left, true
	case DirectionRight:
		return bitmap.Right, true
	case DirectionRandom:
		return clumpDir, true
	case DirectionJitter:
		return bitmap.Directions[rng.IntN(len(bitmap.Directions))], true
	}
	return bitmap.Down, false
}

// Shift moves the pixels of r by speed pixels toward dir. Rows or columns are
// visited in the order that never reads an already-shifted pixel.
// Destinations outside r are dropped, so the leading edge of r smears.
// Both the source and destination pixel must be allowed by mask.
func Shift(buf *bitmap.Buffer, r bitmap.Region, speed int, dir bitmap.Direction, mask *bitmap.Mask) {
	if buf.Empty() || speed <= 0 {
		return
	}
	r = r.Clip(buf.Width, buf.Height)
	if r.Empty() {
		return
	}

	move := func(sx, sy, dx, dy int) {
		si := sy*buf.Width + sx
		di := dy*buf.Width + dx
		if !mask.Allows(si) || !mask.Allows(di) {
			return
		}
		copy(buf.Pix[di*4:di*4+4], buf.Pix[si*4:si*4+4])
	}

	switch dir {
	case bitmap.Down:
		for y := r.MaxY() - 1 - speed; y >= r.Y; y-- {
			for x := r.X; x < r.MaxX(); x++ {
				move(x, y, x, y+speed)
			}
		}
	case bitmap.Up:
		for y := r.Y + speed; y < r.MaxY(); y++ {
			for x := r.X; x < r.MaxX(); x++ {
				move(x, y, x, y-speed)
			}
		}
	case bitmap.Left:
		for y := r.Y; y < r.MaxY(); y++ {
			for x := r.X + speed; x < r.MaxX(); x++ {
				move(x, y, x-speed, y)
			}
		}
	case bitmap.Right:
		for y := r.Y; y < r.MaxY(); y++ {
			for x := r.MaxX() - 1 - speed; x >= r.X; x-- {
				move(x, y, x+speed, y)
			}
		}
	}
}
