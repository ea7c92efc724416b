package bitmap

// Mask byte values. No other values are ever stored.
const (
	Unselected byte = 0
	Selected   byte = 255
)

// Mask is a width×height selection map.
type Mask struct {
	Width  int
	Height int
	Bits   []byte
}

// NewMask allocates an all-unselected mask.
func NewMask(width, height int) *Mask {
	if width <= 0 || height <= 0 {
		return &Mask{}
	}
	return &Mask{Width: width, Height: height, Bits: make([]byte, width*height)}
}

// Allows reports whether pixel index i may be written. A nil mask allows
// everything, so callers can pass a nil *Mask for unconstrained transforms.
func (m *Mask) Allows(i int) bool {
	if m == nil {
		return true
	}
	return i >= 0 && i < len(m.Bits) && m.Bits[i] == Selected
}

// AllowsXY is Allows for a coordinate pair. Out-of-bounds points are never
// allowed by a non-nil mask.
func (m *Mask) AllowsXY(x, y int) bool {
	if m == nil {
		return true
	}
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x] == Selected
}

// IsSet reports whether (x, y) is selected.
func (m *Mask) IsSet(x, y int) bool {
	if m == nil {
		return false
	}
	return m.AllowsXY(x, y)
}

// Set marks (x, y) as selected. Out-of-bounds points are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Bits[y*m.Width+x] = Selected
}

// Clear unselects every pixel.
func (m *Mask) Clear() {
	clear(m.Bits)
}

// Invert flips every byte between Selected and Unselected.
func (m *Mask) Invert() {
	for i, v := range m.Bits {
		if v == Selected {
			m.Bits[i] = Unselected
		} else {
			m.Bits[i] = Selected
		}
	}
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Bits {
		if v == Selected {
			n++
		}
	}
	return n
}

// Empty reports whether nothing is selected.
func (m *Mask) Empty() bool {
	for _, v := range m.Bits {
		if v == Selected {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	out := &Mask{Width: m.Width, Height: m.Height, Bits: make([]byte, len(m.Bits))}
	copy(out.Bits, m.Bits)
	return out
}

// Equal reports whether two masks have the same size and bits.
func (m *Mask) Equal(o *Mask) bool {
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for i := range m.Bits {
		if m.Bits[i] != o.Bits[i] {
			return false
		}
	}
	return true
}
