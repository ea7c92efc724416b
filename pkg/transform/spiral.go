package transform

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Ripple parameters used when Swirl runs in SpiralRipple mode. Amplitude is
// derived from the swirl strength.
const (
	RippleFrequency       = 3
	rippleAmplitudeFactor = 50
	vortexFactor          = 0.5
)

// Swirl rotates the pixels of r around its center. Each pixel's polar angle
// is offset by an amount that depends on its distance from the center and on
// mode; strength is in radians at the rim. Pixels are forward-mapped with
// nearest sampling and mapped positions outside r are dropped.
//
// SpiralSpiral, SpiralInsideOut and SpiralOutsideIn rotate in the sense
// given by turn. SpiralVortex is a half-strength rotation in turn's sense and
// SpiralRipple delegates to Ripple.
func Swirl(buf *bitmap.Buffer, r bitmap.Region, strength float64, mode SpiralMode, turn Turn, mask *bitmap.Mask, rng *rand.Rand) {
	switch mode {
	case SpiralOff:
		return
	case SpiralRipple:
		Ripple(buf, r, RippleFrequency, strength*rippleAmplitudeFactor, mask)
		return
	case SpiralVortex:
		strength *= vortexFactor
		mode = SpiralCW
		if turn == TurnCCW {
			mode = SpiralCCW
		}
	}
	if buf.Empty() || !r.Within(buf.Width, buf.Height) || r.Empty() {
		return
	}

	src := extractMasked(buf, r, mask)
	dst := src.Clone()

	cx, cy := float64(r.W)/2, float64(r.H)/2
	maxR := math.Hypot(cx, cy)

	for row := 0; row < r.H; row++ {
		for col := 0; col < r.W; col++ {
			if !mask.AllowsXY(r.X+col, r.Y+row) {
				continue
			}
			dx, dy := float64(col)-cx, float64(row)-cy
			radius := math.Hypot(dx, dy)
			theta := math.Atan2(dy, dx) + swirlAngle(radius, maxR, strength, mode, turn, rng)

			nx := int(math.Round(cx + radius*math.Cos(theta)))
			ny := int(math.Round(cy + radius*math.Sin(theta)))
			if nx < 0 || ny < 0 || nx >= r.W || ny >= r.H {
				continue
			}
			copy(dst.Pix[dst.Offset(nx, ny):dst.Offset(nx, ny)+4], src.Pix[src.Offset(col, row):src.Offset(col, row)+4])
		}
	}

	writeBackMasked(buf, r, dst, mask)
}

func swirlAngle(radius, maxR, strength float64, mode SpiralMode, turn Turn, rng *rand.Rand) float64 {
	if maxR == 0 {
		return 0
	}
	t := radius / maxR
	switch mode {
	case SpiralCW:
		return strength * t
	case SpiralCCW:
		return -strength * t
	case SpiralSpiral, SpiralOutsideIn:
		return strength * t * turn.sign()
	case SpiralInsideOut:
		return strength * (1 - t) * turn.sign()
	case SpiralRandom:
		return (rng.Float64()*2 - 1) * strength * t
	}
	return 0
}

// Ripple displaces the pixels of r radially along a sine of the distance from
// the center. Each destination samples the source at the rippled radius;
// samples that fall outside r leave the destination unchanged.
func Ripple(buf *bitmap.Buffer, r bitmap.Region, frequency, amplitude float64, mask *bitmap.Mask) {
	if buf.Empty() || !r.Within(buf.Width, buf.Height) || r.Empty() {
		return
	}
	src := buf.Extract(r)
	cx, cy := float64(r.W)/2, float64(r.H)/2
	maxR := math.Hypot(cx, cy)

	for row := 0; row < r.H; row++ {
		for col := 0; col < r.W; col++ {
			if !mask.AllowsXY(r.X+col, r.Y+row) {
				continue
			}
			dx, dy := float64(col)-cx, float64(row)-cy
			radius := math.Hypot(dx, dy)
			if radius == 0 {
				continue
			}
			nr := radius + math.Sin(radius*frequency/maxR*math.Pi*4)*amplitude
			angle := math.Atan2(dy, dx)
			sx := int(math.Round(cx + nr*math.Cos(angle)))
			sy := int(math.Round(cy + nr*math.Sin(angle)))
			if sx < 0 || sy < 0 || sx >= r.W || sy >= r.H {
				continue
			}
			di := buf.Offset(r.X+col, r.Y+row)
			copy(buf.Pix[di:di+4], src.Pix[src.Offset(sx, sy):src.Offset(sx, sy)+4])
		}
	}
}

// extractMasked copies r into a scratch buffer, leaving masked-out pixels
// transparent black.
func extractMasked(buf *bitmap.Buffer, r bitmap.Region, mask *bitmap.Mask) *bitmap.Buffer {
	if mask == nil {
		return buf.Extract(r)
	}
	out := bitmap.New(r.W, r.H)
	for row := 0; row < r.H; row++ {
		for col := 0; col < r.W; col++ {
			if mask.AllowsXY(r.X+col, r.Y+row) {
				si := buf.Offset(r.X+col, r.Y+row)
				copy(out.Pix[out.Offset(col, row):out.Offset(col, row)+4], buf.Pix[si:si+4])
			}
		}
	}
	return out
}

// writeBackMasked copies scratch into r for every pixel mask allows.
func writeBackMasked(buf *bitmap.Buffer, r bitmap.Region, scratch *bitmap.Buffer, mask *bitmap.Mask) {
	for row := 0; row < r.H; row++ {
		for col := 0; col < r.W; col++ {
			if mask.AllowsXY(r.X+col, r.Y+row) {
				di := buf.Offset(r.X+col, r.Y+row)
				copy(buf.Pix[di:di+4], scratch.Pix[scratch.Offset(col, row):scratch.Offset(col, row)+4])
			}
		}
	}
}
