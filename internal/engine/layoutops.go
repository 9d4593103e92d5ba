package engine

import (
	"sort"

	"github.com/adboard/adboard/backend-go/internal/document"
)

const (
	// TidyGap is the vertical spacing inserted between stacked elements.
	TidyGap = 10.0

	// GridColumns is the width of the artboard grid; board move commands swap
	// within it.
	GridColumns = 3
)

// MoveDirection names an artboard grid move.
type MoveDirection string

const (
	MoveUp    MoveDirection = "up"
	MoveDown  MoveDirection = "down"
	MoveLeft  MoveDirection = "left"
	MoveRight MoveDirection = "right"
)

// ElementHeight returns the effective height of an element: the stored value
// when explicit, otherwise the text-metrics estimate. Heights of flowing text
// are never persisted, so every layout computation goes through here.
func ElementHeight(doc *document.BannerDocument, kind document.ElementKind, layout document.Layout) float64 {
	if v, ok := layout.Height.Explicit(); ok {
		return v
	}
	return EstimateHeight(doc.Text(kind), layout, doc.Style)
}

// AlignElementH aligns one element horizontally within its artboard and pins
// it there by storing the keyword, so later width or font edits keep the
// element aligned. Returns false if the board or element is absent.
func AlignElementH(doc *document.BannerDocument, boardID string, kind document.ElementKind, keyword document.HAlign) bool {
	board, ok := doc.BoardByID(boardID)
	if !ok {
		return false
	}
	layout, ok := board.Layout(kind)
	if !ok {
		return false
	}

	switch keyword {
	case document.HAlignLeft:
		layout.X = 0
	case document.HAlignCenter:
		layout.X = (board.Width - layout.Width) / 2
	case document.HAlignRight:
		layout.X = board.Width - layout.Width
	default:
		return false
	}
	layout.HAlign = keyword
	board.SetLayout(kind, layout)
	return true
}

// AlignElementV aligns one element vertically within its artboard. Every
// keyword collapses to an absolute y with a stored VAlign of "top"; keeping
// "bottom" as a live render-time offset (as some editors do) would make the
// three keywords behave asymmetrically, so all three are made absolute here.
func AlignElementV(doc *document.BannerDocument, boardID string, kind document.ElementKind, keyword document.VAlign) bool {
	board, ok := doc.BoardByID(boardID)
	if !ok {
		return false
	}
	layout, ok := board.Layout(kind)
	if !ok {
		return false
	}

	height := ElementHeight(doc, kind, layout)
	switch keyword {
	case document.VAlignTop:
		layout.Y = 0
	case document.VAlignMiddle:
		layout.Y = (board.Height - height) / 2
	case document.VAlignBottom:
		layout.Y = board.Height - height
	default:
		return false
	}
	layout.VAlign = document.VAlignTop
	board.SetLayout(kind, layout)
	return true
}

// AlignGroupH aligns the union bounding box of every present element on one
// artboard, translating all of them by a single offset so relative spacing is
// preserved. Alignment keywords are cleared: group alignment always produces
// explicit positions.
func AlignGroupH(doc *document.BannerDocument, boardID string, keyword document.HAlign) bool {
	return alignGroup(doc, boardID, keyword, "")
}

// AlignGroupV is the vertical counterpart of AlignGroupH.
func AlignGroupV(doc *document.BannerDocument, boardID string, keyword document.VAlign) bool {
	return alignGroup(doc, boardID, "", keyword)
}

func alignGroup(doc *document.BannerDocument, boardID string, h document.HAlign, v document.VAlign) bool {
	board, ok := doc.BoardByID(boardID)
	if !ok {
		return false
	}

	union, any := groupBounds(doc, board)
	if !any {
		return false
	}

	var dx, dy float64
	switch h {
	case document.HAlignLeft:
		dx = -union.X
	case document.HAlignCenter:
		dx = (board.Width-union.Width)/2 - union.X
	case document.HAlignRight:
		dx = board.Width - union.Width - union.X
	}
	switch v {
	case document.VAlignTop:
		dy = -union.Y
	case document.VAlignMiddle:
		dy = (board.Height-union.Height)/2 - union.Y
	case document.VAlignBottom:
		dy = board.Height - union.Height - union.Y
	}

	for _, kind := range document.ElementKinds {
		layout, ok := board.Layout(kind)
		if !ok {
			continue
		}
		layout.X += dx
		layout.Y += dy
		layout.HAlign = document.HAlignLeft
		layout.VAlign = document.VAlignTop
		board.SetLayout(kind, layout)
	}
	return true
}

// groupBounds computes the union rect of every present element on the board.
// Absent elements are skipped, not treated as zero-size participants.
func groupBounds(doc *document.BannerDocument, board *document.Artboard) (Rect, bool) {
	var union Rect
	any := false
	for _, kind := range document.ElementKinds {
		layout, ok := board.Layout(kind)
		if !ok {
			continue
		}
		r := Rect{
			X:      layout.X,
			Y:      layout.Y,
			Width:  layout.Width,
			Height: ElementHeight(doc, kind, layout),
		}
		if !any {
			union = r
			any = true
		} else {
			union = union.Union(r)
		}
	}
	return union, any
}

// TidyUp restacks the present elements of one artboard vertically: sorted by
// current y, laid out top to bottom from the topmost element's original y
// with a fixed gap between blocks. Returns false if the board is absent or
// empty.
func TidyUp(doc *document.BannerDocument, boardID string) bool {
	board, ok := doc.BoardByID(boardID)
	if !ok {
		return false
	}

	type entry struct {
		kind   document.ElementKind
		layout document.Layout
	}
	var entries []entry
	for _, kind := range document.ElementKinds {
		if layout, ok := board.Layout(kind); ok {
			entries = append(entries, entry{kind, layout})
		}
	}
	if len(entries) == 0 {
		return false
	}

	// Stable sort keeps kind order for equal y, so the stack is deterministic.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].layout.Y < entries[j].layout.Y
	})

	y := entries[0].layout.Y
	for _, e := range entries {
		e.layout.Y = y
		e.layout.VAlign = document.VAlignTop
		board.SetLayout(e.kind, e.layout)
		y += ElementHeight(doc, e.kind, e.layout) + TidyGap
	}
	return true
}

// MoveArtboard swaps the artboard at index with its neighbor in the given
// grid direction. Moves past the grid edge, including left/right moves that
// would cross a row boundary, are no-ops rather than errors.
func MoveArtboard(doc *document.BannerDocument, index int, dir MoveDirection) bool {
	if index < 0 || index >= len(doc.Boards) {
		return false
	}

	target := -1
	switch dir {
	case MoveUp:
		target = index - GridColumns
	case MoveDown:
		target = index + GridColumns
	case MoveLeft:
		if index%GridColumns != 0 {
			target = index - 1
		}
	case MoveRight:
		if index%GridColumns != GridColumns-1 {
			target = index + 1
		}
	}

	if target < 0 || target >= len(doc.Boards) {
		return false
	}
	doc.Boards[index], doc.Boards[target] = doc.Boards[target], doc.Boards[index]
	return true
}
