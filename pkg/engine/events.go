package engine

import (
	"github.com/google/uuid"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/errors"
	"github.com/matzehuels/glitcher/pkg/selection"
)

// EventKind is the type of a ToolEvent.
type EventKind uint8

const (
	EventDown      EventKind = iota // start a gesture at (X, Y)
	EventMove                       // extend the gesture to (X, Y)
	EventUp                         // finish the gesture
	EventTool                       // switch to Tool
	EventBrushSize                  // set the brush diameter to Value
	EventTolerance                  // set the wand tolerance to Value
	EventMode                       // switch manual mode to Manual
	EventClear                      // clear the mask
	EventInvert                     // invert the mask
	EventReplay                     // respawn clumps from history entry ID
)

var eventKindNames = [...]string{
	EventDown:      "down",
	EventMove:      "move",
	EventUp:        "up",
	EventTool:      "tool",
	EventBrushSize: "brushSize",
	EventTolerance: "tolerance",
	EventMode:      "mode",
	EventClear:     "clear",
	EventInvert:    "invert",
	EventReplay:    "replay",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(b []byte) error {
	for i, name := range eventKindNames {
		if name == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return &bitmap.ParseError{Kind: "event", Value: string(b)}
}

// ToolEvent is a selection command from a host. Only the fields the kind
// needs are read.
type ToolEvent struct {
	Kind   EventKind      `json:"kind"`
	X      int            `json:"x,omitempty"`
	Y      int            `json:"y,omitempty"`
	Tool   selection.Tool `json:"tool,omitempty"`
	Value  float64        `json:"value,omitempty"`
	Manual bool           `json:"manual,omitempty"`
	ID     uuid.UUID      `json:"id,omitzero"`
}

// ApplyToolEvent routes ev to the selection manager. Call it between
// frames. Switching modes or replaying history discards the live clumps so
// that the next frame respawns from the new source.
func (s *Scheduler) ApplyToolEvent(ev ToolEvent) error {
	m := s.sel
	switch ev.Kind {
	case EventDown:
		m.StartDrawing(ev.X, ev.Y)
	case EventMove:
		m.ContinueDrawing(ev.X, ev.Y)
	case EventUp:
		m.EndDrawing()
	case EventTool:
		m.SetTool(ev.Tool)
	case EventBrushSize:
		m.SetBrushSize(int(ev.Value))
	case EventTolerance:
		m.SetWandTolerance(ev.Value)
	case EventMode:
		if s.cfg.Manual != ev.Manual {
			s.cfg.Manual = ev.Manual
			m.Manual = ev.Manual
			s.state.Clumps = nil
		}
	case EventClear:
		m.Clear()
	case EventInvert:
		m.Invert()
	case EventReplay:
		regions, ok := m.Replay(ev.ID)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "no selection %s in history", ev.ID)
		}
		s.state.Clumps = m.SelectionsToClumps(regions, s.cfg.MinLifetime, s.cfg.MaxLifetime)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown tool event %d", ev.Kind)
	}
	return nil
}
