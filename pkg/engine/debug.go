package engine

import "github.com/matzehuels/glitcher/pkg/selection"

// DebugInfo is a snapshot of the scheduler for status displays.
type DebugInfo struct {
	Loaded    bool    `json:"loaded"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Frame     uint64  `json:"frame"`
	Clumps    int     `json:"clumps"`
	Paused    bool    `json:"paused"`
	Recording bool    `json:"recording"`
	TargetFPS float64 `json:"target_fps"`

	Effects   Effects          `json:"effects"`
	Selection selection.Status `json:"selection"`
}

// Effects names the active effect of every stage.
type Effects struct {
	Method    string `json:"method"`
	Direction string `json:"direction"`
	Spiral    string `json:"spiral"`
	Slice     string `json:"slice"`
	PixelSort string `json:"pixel_sort"`
	Color     string `json:"color"`
	Filter    string `json:"filter"`
}

// DebugInfo returns the current state summary.
func (s *Scheduler) DebugInfo() DebugInfo {
	d := DebugInfo{
		Loaded:    s.Loaded(),
		Frame:     s.state.Frame,
		Clumps:    len(s.state.Clumps),
		Paused:    s.state.Paused,
		Recording: s.state.Recording,
		TargetFPS: s.cfg.TargetFPS,
		Effects: Effects{
			Method:    s.cfg.Method.String(),
			Direction: s.cfg.Direction.String(),
			Spiral:    s.cfg.Spiral.String(),
			Slice:     s.cfg.Slice.String(),
			PixelSort: s.cfg.PixelSort.String(),
			Color:     s.cfg.ColorEffect.String(),
			Filter:    s.cfg.Filter.String(),
		},
		Selection: s.sel.Status(),
	}
	if d.Loaded {
		d.Width, d.Height = s.state.Work.Width, s.state.Work.Height
	}
	return d
}
