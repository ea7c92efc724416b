package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/glitcher/pkg/bitmap"
	"github.com/matzehuels/glitcher/pkg/engine"
)

func newTestPlayModel(t *testing.T) PlayModel {
	t.Helper()
	s := engine.New(engine.DefaultConfig(), log.New(io.Discard))
	if err := s.LoadImage(bitmap.Filled(32, 24, 200, 40, 90, 255)); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	return NewPlayModel(context.Background(), s, "photo.png")
}

func TestPlayModelTick(t *testing.T) {
	m := newTestPlayModel(t)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() returned no tick command")
	}

	next, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if got := next.(PlayModel).sched.DebugInfo().Frame; got != 1 {
		t.Errorf("frame after tick = %d, want 1", got)
	}
}

func TestPlayModelKeys(t *testing.T) {
	m := newTestPlayModel(t)

	m.handleKey(" ")
	if !m.sched.Paused() {
		t.Error("space did not pause")
	}
	m.handleKey("s")
	if got := m.sched.DebugInfo().Frame; got != 1 {
		t.Errorf("frame after step = %d, want 1", got)
	}
	m.handleKey("r")
	if got := m.sched.DebugInfo().Frame; got != 0 {
		t.Errorf("frame after reset = %d, want 0", got)
	}

	m.handleKey("m")
	if !m.sched.Config().Manual {
		t.Error("m did not switch to manual mode")
	}

	next, _ := m.handleKey("p")
	pm := next.(PlayModel)
	first := engine.Presets()[0]
	if pm.preset != 0 {
		t.Errorf("preset index = %d, want 0", pm.preset)
	}
	if got := pm.sched.Config().Speed; got != first.Speed {
		t.Errorf("speed after preset = %d, want %d", got, first.Speed)
	}
	if !strings.Contains(pm.View(), first.Title) {
		t.Errorf("view does not show preset %q", first.Title)
	}
}

func TestPlayModelQuit(t *testing.T) {
	m := newTestPlayModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestPlayModelView(t *testing.T) {
	m := newTestPlayModel(t)
	view := m.View()
	for _, want := range []string{"photo.png", "playing", "frame", "32x24", "custom"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	m.sched.Pause()
	if !strings.Contains(m.View(), "paused") {
		t.Error("view does not show paused state")
	}
}
