package selection

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/glitcher/pkg/bitmap"
)

// HistorySize is the number of entries a History keeps.
const HistorySize = 10

// HistoryEntry records one automatic selection run.
type HistoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Method    Method          `json:"method"`
	Config    Config          `json:"config"`
	Regions   []bitmap.Region `json:"regions"`
}

// History is a bounded, append-only log of selection runs. Once full, the
// oldest entry is dropped for every new one.
type History struct {
	entries []HistoryEntry
	now     func() time.Time
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{now: time.Now}
}

// Add records a run and returns its entry.
func (h *History) Add(method Method, cfg Config, regions []bitmap.Region) HistoryEntry {
	e := HistoryEntry{
		ID:        uuid.New(),
		Timestamp: h.now(),
		Method:    method,
		Config:    cfg,
		Regions:   slices.Clone(regions),
	}
	if len(h.entries) == HistorySize {
		h.entries = slices.Delete(h.entries, 0, 1)
	}
	h.entries = append(h.entries, e)
	return e
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns the stored entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	return slices.Clone(h.entries)
}

// Last returns the most recent entry.
func (h *History) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Find looks up an entry by ID.
func (h *History) Find(id uuid.UUID) (HistoryEntry, bool) {
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return HistoryEntry{}, false
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// clip re-clips every stored region to a new buffer size.
func (h *History) clip(width, height int) {
	for i := range h.entries {
		h.entries[i].Regions = bitmap.ClipAll(h.entries[i].Regions, width, height)
	}
}
