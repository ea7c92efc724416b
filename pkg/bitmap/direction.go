package bitmap

// Direction is an axis-aligned shift direction.
type Direction uint8

const (
	Down  Direction = iota // toward larger y
	Up                     // toward smaller y
	Left                   // toward smaller x
	Right                  // toward larger x
)

// Directions lists every direction in the order random picks draw from.
var Directions = [...]Direction{Down, Up, Left, Right}

var directionNames = [...]string{
	Down:  "down",
	Up:    "up",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// ParseDirection maps a name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return Down, false
}

// Delta returns the unit step for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Down:
		return 0, 1
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return &ParseError{Kind: "direction", Value: string(b)}
	}
	*d = v
	return nil
}

// ParseError reports an unrecognised enum name.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return "unknown " + e.Kind + ": " + e.Value
}
