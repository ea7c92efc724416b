package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("205") // magenta, the glitch accent
	colorOK     = lipgloss.Color("42")
	colorFail   = lipgloss.Color("196")
	colorLink   = lipgloss.Color("81")
	colorText   = lipgloss.Color("252")
	colorSubtle = lipgloss.Color("244")
	colorFaint  = lipgloss.Color("238")
)

// Styles shared by the commands and the play dashboard.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleHeader    = lipgloss.NewStyle().Bold(true).Foreground(colorSubtle)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleError     = lipgloss.NewStyle().Foreground(colorFail)
	StyleCommand   = lipgloss.NewStyle().Foreground(colorLink)
)

const (
	markOK     = "✓"
	markFail   = "✗"
	markInfo   = "›"
	markArrow  = "→"
	statCached = "cached"
	statFresh  = "fresh"
)

// =============================================================================
// Console
// =============================================================================

// console prints the human-facing result lines of a command. Logs go to
// stderr through the logger; these go to the command's stdout.
type console struct {
	w io.Writer
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) line(mark lipgloss.Style, icon, format string, args ...any) {
	fmt.Fprintln(c.w, mark.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (c *console) success(format string, args ...any) {
	c.line(StyleSuccess, markOK, format, args...)
}

func (c *console) fail(format string, args ...any) {
	c.line(StyleError, markFail, format, args...)
}

func (c *console) info(format string, args ...any) {
	c.line(StyleHeader, markInfo, format, args...)
}

// detail prints an indented, muted line under the previous one.
func (c *console) detail(format string, args ...any) {
	fmt.Fprintln(c.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints "→ path" for a written output.
func (c *console) file(path string) {
	fmt.Fprintln(c.w, "  "+StyleDim.Render(markArrow)+" "+StyleValue.Render(path))
}

// stats prints "60 frames · 640x480 · fresh"; zero values are left out.
func (c *console) stats(frames, width, height int, cached bool) {
	var parts []string
	if frames > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d frames", frames)))
	}
	if width > 0 && height > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%dx%d", width, height)))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render(statCached))
	} else {
		parts = append(parts, StyleHeader.Render(statFresh))
	}
	fmt.Fprintln(c.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// hint suggests a command to run next.
func (c *console) hint(label, command string) {
	fmt.Fprintln(c.w, StyleDim.Render(label+":")+" "+StyleCommand.Render(command))
}
