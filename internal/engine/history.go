package engine

import "github.com/adboard/adboard/backend-go/internal/document"

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 50

// History is a bounded linear undo/redo stack of document snapshots. It lives
// beside the document rather than inside it, so a snapshot can never contain
// the history that holds it. Entries are deep copies taken at commit time;
// Undo/Redo hand out fresh copies so later edits cannot reach back into a
// stored snapshot.
type History struct {
	entries []*document.BannerDocument
	index   int
	limit   int
}

// NewHistory creates an empty history. A limit <= 0 falls back to
// DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{index: -1, limit: limit}
}

// Commit appends a snapshot of doc. Any redo branch beyond the current index
// is discarded first; once the limit is reached the oldest entry is evicted.
// The index always ends up on the new entry.
func (h *History) Commit(doc *document.BannerDocument) {
	h.entries = h.entries[:h.index+1]
	h.entries = append(h.entries, doc.Clone())
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
	}
	h.index = len(h.entries) - 1
}

// Undo steps back one entry and returns a copy of it. At the oldest entry it
// returns (nil, false) and the history is unchanged: a boundary, not an
// error.
func (h *History) Undo() (*document.BannerDocument, bool) {
	if h.index <= 0 {
		return nil, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo steps forward one entry and returns a copy of it, or (nil, false) when
// already at the newest entry.
func (h *History) Redo() (*document.BannerDocument, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// CanUndo reports whether Undo would step.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would step.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Index returns the current position within the stack.
func (h *History) Index() int { return h.index }
