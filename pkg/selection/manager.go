package selection

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/glitcher/internal/randutil"
	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// Manual tool defaults.
const (
	DefaultBrushSize     = 30
	DefaultWandTolerance = 30
)

// MinMaskRegion is the pixel count a mask region must exceed to become a
// clump.
const MinMaskRegion = 50

// Manager owns the selection mask, the manual tools and the selection
// history. It wraps an Engine for automatic selections.
//
// Like Engine, Manager is not safe for concurrent use.
type Manager struct {
	engine  *Engine
	rng     *rand.Rand
	logger  *log.Logger
	history *History

	buf  *bitmap.Buffer
	mask *bitmap.Mask

	// Manual routes clump spawning through the mask instead of the engine.
	Manual bool

	tool          Tool
	brushSize     int
	wandTolerance float64

	drawing     bool
	start, last bitmap.Point
	lasso       []bitmap.Point
}

// NewManager creates a manager backed by engine. A nil engine gets a fresh
// one sharing rng and logger.
func NewManager(engine *Engine, rng *rand.Rand, logger *log.Logger) *Manager {
	if rng == nil {
		rng = randutil.New(42)
	}
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = NewEngine(rng, logger)
	}
	return &Manager{
		engine:        engine,
		rng:           rng,
		logger:        logger,
		history:       NewHistory(),
		tool:          ToolNone,
		brushSize:     DefaultBrushSize,
		wandTolerance: DefaultWandTolerance,
	}
}

// Engine returns the underlying selection engine.
func (m *Manager) Engine() *Engine {
	return m.engine
}

// History returns the selection history.
func (m *Manager) History() *History {
	return m.history
}

// SetImage attaches a buffer. The mask is reallocated (and therefore
// cleared), any gesture in progress is abandoned, and stored history regions
// are re-clipped to the new bounds. A nil buffer detaches the image.
func (m *Manager) SetImage(buf *bitmap.Buffer) {
	m.buf = buf
	m.drawing = false
	m.lasso = m.lasso[:0]
	m.engine.SetBuffer(buf)
	if buf.Empty() {
		m.mask = nil
		return
	}
	m.mask = bitmap.NewMask(buf.Width, buf.Height)
	m.history.clip(buf.Width, buf.Height)
}

// Mask returns the live selection mask, or nil without an image.
func (m *Manager) Mask() *bitmap.Mask {
	return m.mask
}

// ActiveMask returns the mask transforms should honor: the selection mask in
// manual mode, nil otherwise.
func (m *Manager) ActiveMask() *bitmap.Mask {
	if m.Manual {
		return m.mask
	}
	return nil
}

// Tool returns the active tool.
func (m *Manager) Tool() Tool {
	return m.tool
}

// SetTool switches tools and abandons any gesture in progress.
func (m *Manager) SetTool(t Tool) {
	m.tool = t
	m.drawing = false
	m.lasso = m.lasso[:0]
}

// BrushSize returns the brush diameter in pixels.
func (m *Manager) BrushSize() int {
	return m.brushSize
}

// SetBrushSize sets the brush diameter. Values below 1 become 1; with an
// image attached, values above its larger side are capped there.
func (m *Manager) SetBrushSize(size int) {
	m.brushSize = max(1, size)
	if m.mask != nil {
		m.brushSize = min(m.brushSize, m.longSide())
	}
}

// WandTolerance returns the magic wand RGB distance tolerance.
func (m *Manager) WandTolerance() float64 {
	return m.wandTolerance
}

// SetWandTolerance sets the magic wand tolerance. Negative values become 0.
func (m *Manager) SetWandTolerance(tol float64) {
	m.wandTolerance = max(0, tol)
}

// Generate runs an automatic selection and records it in the history.
func (m *Manager) Generate(method Method, cfg Config) []bitmap.Region {
	regions := m.engine.Generate(method, cfg)
	if m.buf.Empty() {
		return regions
	}
	m.history.Add(method, cfg, regions)
	return regions
}

// LastSelection returns the most recent automatic selection.
func (m *Manager) LastSelection() (HistoryEntry, bool) {
	return m.history.Last()
}

// Replay returns the regions recorded under id, clipped to the current image.
func (m *Manager) Replay(id uuid.UUID) ([]bitmap.Region, bool) {
	e, ok := m.history.Find(id)
	if !ok || m.buf.Empty() {
		return nil, false
	}
	return bitmap.ClipAll(e.Regions, m.buf.Width, m.buf.Height), true
}

// SelectionsToClumps turns regions into clumps using the manager's random
// source.
func (m *Manager) SelectionsToClumps(regions []bitmap.Region, minLife, maxLife int) []Clump {
	return NewClumps(m.rng, regions, minLife, maxLife)
}

// Status summarizes the manager for debug output.
type Status struct {
	Manual        bool    `json:"manual"`
	Tool          Tool    `json:"tool"`
	Drawing       bool    `json:"drawing"`
	BrushSize     int     `json:"brush_size"`
	WandTolerance float64 `json:"wand_tolerance"`
	Selected      int     `json:"selected_pixels"`
	History       int     `json:"history"`
	CachedResults int     `json:"cached_results"`
}

// Status returns a snapshot of the manager's state.
func (m *Manager) Status() Status {
	s := Status{
		Manual:        m.Manual,
		Tool:          m.tool,
		Drawing:       m.drawing,
		BrushSize:     m.brushSize,
		WandTolerance: m.wandTolerance,
		History:       m.history.Len(),
		CachedResults: m.engine.CacheLen(),
	}
	if m.mask != nil {
		s.Selected = m.mask.Count()
	}
	return s
}

// ready reports whether a mask operation can run, logging when it cannot.
func (m *Manager) ready(op string) bool {
	if m.mask == nil || m.buf.Empty() {
		m.logger.Debug("selection tool ignored: no image loaded", "op", op)
		return false
	}
	return true
}
