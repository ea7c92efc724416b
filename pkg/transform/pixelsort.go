package transform

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// RandomLineCount is the number of rows or columns SortRandomLines sorts per
// call.
const RandomLineCount = 3

// sortKey extracts the sort value of one pixel.
type sortKey func(r, g, b uint8) float64

func brightnessKey(r, g, b uint8) float64 { return bitmap.Luminance(r, g, b) }

func hueKey(r, g, b uint8) float64 { return bitmap.Hue(r, g, b) }

// PixelSort reorders pixel content along paths chosen by mode. Positions are
// fixed; only the colors that occupy them are reordered (stable, ascending).
// Pixels rejected by mask are left out of every path.
func PixelSort(buf *bitmap.Buffer, mode SortMode, mask *bitmap.Mask, rng *rand.Rand) {
	if buf.Empty() {
		return
	}
	s := sorter{buf: buf, mask: mask}
	switch mode {
	case SortColumnBrightness:
		s.columns(brightnessKey)
	case SortRowBrightness:
		s.rows(brightnessKey)
	case SortColumnHue:
		s.columns(hueKey)
	case SortRowHue:
		s.rows(hueKey)
	case SortRandomLines:
		for range RandomLineCount {
			if rng.IntN(2) == 0 {
				s.row(rng.IntN(buf.Height), brightnessKey)
			} else {
				s.column(rng.IntN(buf.Width), brightnessKey)
			}
		}
	case SortDiagonal:
		s.diagonals()
	case SortCircular:
		s.rings()
	case SortWave:
		s.waves()
	}
}

// sorter collects paths of pixel indices and sorts their content.
type sorter struct {
	buf  *bitmap.Buffer
	mask *bitmap.Mask

	path []int
	px   []sortedPixel

	// Curved paths can land on a pixel twice. When stamp is set, a pixel
	// already visited by the current path has stamp[i] == gen. Rows,
	// columns and diagonals never repeat a pixel and leave it nil.
	stamp []uint32
	gen   uint32
}

type sortedPixel struct {
	rgba [4]byte
	key  float64
}

// dedup turns on repeat detection for the paths that follow.
func (s *sorter) dedup() {
	if s.stamp == nil {
		s.stamp = make([]uint32, s.buf.Len())
		s.gen = 1
	}
}

func (s *sorter) reset() {
	s.path = s.path[:0]
	if s.stamp != nil {
		s.gen++
		if s.gen == 0 {
			clear(s.stamp)
			s.gen = 1
		}
	}
}

// add appends (x, y) to the current path. Out-of-bounds, masked-out and
// repeated pixels are skipped.
func (s *sorter) add(x, y int) {
	if !s.buf.In(x, y) {
		return
	}
	i := y*s.buf.Width + x
	if !s.mask.Allows(i) {
		return
	}
	if s.stamp != nil {
		if s.stamp[i] == s.gen {
			return
		}
		s.stamp[i] = s.gen
	}
	s.path = append(s.path, i)
}

// flush sorts the content of the current path and writes it back along the
// same positions.
func (s *sorter) flush(key sortKey) {
	if len(s.path) < 2 {
		s.reset()
		return
	}
	pix := s.buf.Pix
	s.px = s.px[:0]
	for _, i := range s.path {
		p := i * bitmap.BytesPerPixel
		var sp sortedPixel
		copy(sp.rgba[:], pix[p:p+4])
		sp.key = key(sp.rgba[0], sp.rgba[1], sp.rgba[2])
		s.px = append(s.px, sp)
	}
	slices.SortStableFunc(s.px, func(a, b sortedPixel) int {
		return cmp.Compare(a.key, b.key)
	})
	for n, i := range s.path {
		p := i * bitmap.BytesPerPixel
		copy(pix[p:p+4], s.px[n].rgba[:])
	}
	s.reset()
}

func (s *sorter) column(x int, key sortKey) {
	s.reset()
	for y := 0; y < s.buf.Height; y++ {
		s.add(x, y)
	}
	s.flush(key)
}

func (s *sorter) row(y int, key sortKey) {
	s.reset()
	for x := 0; x < s.buf.Width; x++ {
		s.add(x, y)
	}
	s.flush(key)
}

func (s *sorter) columns(key sortKey) {
	for x := 0; x < s.buf.Width; x++ {
		s.column(x, key)
	}
}

func (s *sorter) rows(key sortKey) {
	for y := 0; y < s.buf.Height; y++ {
		s.row(y, key)
	}
}

// diagonals sorts every anti-diagonal, walking from bottom-left to
// top-right.
func (s *sorter) diagonals() {
	w, h := s.buf.Width, s.buf.Height
	for k := 0; k < w+h-1; k++ {
		s.reset()
		x, y := 0, k
		if k >= h {
			x, y = k-h+1, h-1
		}
		for ; x < w && y >= 0; x, y = x+1, y-1 {
			s.add(x, y)
		}
		s.flush(brightnessKey)
	}
}

// rings sorts concentric circles 5px apart out to 80% of the smaller
// half-dimension.
func (s *sorter) rings() {
	const step = 5
	s.dedup()
	cx, cy := float64(s.buf.Width)/2, float64(s.buf.Height)/2
	maxR := math.Min(cx, cy) * 0.8
	for r := 0.0; r < maxR; r += step {
		s.reset()
		n := max(8, int(2*math.Pi*r/2))
		for i := 0; i < n; i++ {
			a := float64(i) / float64(n) * 2 * math.Pi
			s.add(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))))
		}
		s.flush(brightnessKey)
	}
}

// waves sorts along horizontal, vertical and diagonal sine paths.
func (s *sorter) waves() {
	s.dedup()
	w, h := float64(s.buf.Width), float64(s.buf.Height)
	for i := range 3 {
		phase := float64(i) * math.Pi * 0.4
		s.horizontalWave(h*0.3, 0.02, phase)
	}
	for i := range 2 {
		phase := float64(i+1) * math.Pi * 0.4
		s.verticalWave(w*0.3, 0.02, phase)
	}
	for i := range 2 {
		phase := float64(i+2) * math.Pi * 0.4
		s.diagonalWave(math.Min(w, h)*0.2, 0.015, phase)
	}
}

func (s *sorter) horizontalWave(amplitude, frequency, phase float64) {
	step := max(1, int(amplitude/8))
	for baseY := 0; baseY < s.buf.Height; baseY += step {
		s.reset()
		for x := 0; x < s.buf.Width; x++ {
			off := int(math.Round(amplitude * math.Sin(float64(x)*frequency+phase)))
			s.add(x, clampInt(baseY+off, 0, s.buf.Height-1))
		}
		s.flush(brightnessKey)
	}
}

func (s *sorter) verticalWave(amplitude, frequency, phase float64) {
	step := max(1, int(amplitude/8))
	for baseX := 0; baseX < s.buf.Width; baseX += step {
		s.reset()
		for y := 0; y < s.buf.Height; y++ {
			off := int(math.Round(amplitude * math.Sin(float64(y)*frequency+phase)))
			s.add(clampInt(baseX+off, 0, s.buf.Width-1), y)
		}
		s.flush(brightnessKey)
	}
}

func (s *sorter) diagonalWave(amplitude, frequency, phase float64) {
	w, h := float64(s.buf.Width), float64(s.buf.Height)
	cx, cy := w/2, h/2
	maxDist := math.Hypot(w, h)
	for angle := 0.0; angle < math.Pi; angle += math.Pi / 4 {
		s.reset()
		perp := angle + math.Pi/2
		for d := 0.0; d < maxDist; d += 2 {
			bx, by := cx+d*math.Cos(angle), cy+d*math.Sin(angle)
			if bx < 0 || bx >= w || by < 0 || by >= h {
				continue
			}
			off := amplitude * math.Sin(d*frequency+phase)
			s.add(int(math.Round(bx+off*math.Cos(perp))), int(math.Round(by+off*math.Sin(perp))))
		}
		s.flush(brightnessKey)
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
