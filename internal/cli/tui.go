package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/glitcher/pkg/engine"
)

// Dashboard styles
var (
	dashLabelStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	dashValueStyle = lipgloss.NewStyle().Foreground(colorText)
	dashLiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	dashPauseStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dashDimStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	dashErrStyle   = lipgloss.NewStyle().Foreground(colorFail)
)

// =============================================================================
// PlayModel - live scheduler dashboard
// =============================================================================

// tickMsg asks the model to advance the scheduler.
type tickMsg time.Time

// PlayModel is the bubbletea model behind 'glitcher play --tui'. It ticks
// the scheduler at its target rate and shows the debug snapshot as a table.
// Frames are processed but not drawn; the terminal shows state only.
type PlayModel struct {
	ctx     context.Context
	sched   *engine.Scheduler
	name    string
	presets []engine.Preset
	preset  int // index into presets, -1 before the first switch
	err     error
}

// NewPlayModel creates a dashboard for s. name labels the source image.
func NewPlayModel(ctx context.Context, s *engine.Scheduler, name string) PlayModel {
	return PlayModel{
		ctx:     ctx,
		sched:   s,
		name:    name,
		presets: engine.Presets(),
		preset:  -1,
	}
}

func (m PlayModel) interval() time.Duration {
	return time.Duration(float64(time.Second) / m.sched.Config().TargetFPS)
}

func (m PlayModel) tick() tea.Cmd {
	return tea.Tick(m.interval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m PlayModel) Init() tea.Cmd {
	return m.tick()
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.sched.Tick(m.ctx, time.Time(msg))
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m PlayModel) handleKey(key string) (tea.Model, tea.Cmd) {
	m.err = nil
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.sched.TogglePause()
	case "r":
		m.sched.Reset()
	case "s":
		if _, err := m.sched.Step(m.ctx); err != nil {
			m.err = err
		}
	case "m":
		manual := !m.sched.Config().Manual
		m.err = m.sched.ApplyToolEvent(engine.ToolEvent{Kind: engine.EventMode, Manual: manual})
	case "p", "tab":
		m.preset = (m.preset + 1) % len(m.presets)
		cfg, err := m.sched.Config().WithPreset(m.presets[m.preset].Name)
		if err == nil {
			err = m.sched.SetConfig(cfg)
		}
		m.err = err
	}
	return m, nil
}

func (m PlayModel) View() string {
	var b strings.Builder
	info := m.sched.DebugInfo()

	b.WriteString(StyleTitle.Render("glitcher"))
	b.WriteString(" ")
	b.WriteString(dashDimStyle.Render(m.name))
	b.WriteString("  ")
	if info.Paused {
		b.WriteString(dashPauseStyle.Render("paused"))
	} else {
		b.WriteString(dashLiveStyle.Render("playing"))
	}
	b.WriteString("\n\n")

	preset := "custom"
	if m.preset >= 0 {
		preset = m.presets[m.preset].Title
	}
	mode := "automatic"
	if info.Selection.Manual {
		mode = "manual"
	}

	rows := [][]string{
		{"frame", fmt.Sprintf("%d", info.Frame)},
		{"size", fmt.Sprintf("%dx%d", info.Width, info.Height)},
		{"fps", fmt.Sprintf("%g", info.TargetFPS)},
		{"clumps", fmt.Sprintf("%d", info.Clumps)},
		{"preset", preset},
		{"selection", fmt.Sprintf("%s (%s)", mode, info.Effects.Method)},
		{"direction", info.Effects.Direction},
		{"spiral", info.Effects.Spiral},
		{"slice", info.Effects.Slice},
		{"pixel sort", info.Effects.PixelSort},
		{"color", info.Effects.Color},
		{"filter", info.Effects.Filter},
		{"mask", fmt.Sprintf("%d px", info.Selection.Selected)},
		{"history", fmt.Sprintf("%d", info.Selection.History)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return dashLabelStyle.PaddingRight(2)
			}
			return dashValueStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(dashErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dashDimStyle.Render("space pause  s step  r reset  m manual  p preset  q quit"))
	b.WriteString("\n")
	return b.String()
}
