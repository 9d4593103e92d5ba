package engine

import (
	"encoding/json"

	"github.com/adboard/adboard/backend-go/internal/document"
)

// Engine owns the live banner document, its undo history and the in-progress
// gesture. It processes commands from the frontend and answers its queries.
// Everything runs synchronously inside one input-event callback; readers of
// the document always observe either the fully-previous or fully-next state.
type Engine struct {
	doc     *document.BannerDocument
	history *History
	gesture Gesture
	arena   *Arena

	snapConfig SnapConfig
	guides     map[string][]Guide // artboard id -> manual guides

	// Selection is ephemeral UI state: it never enters history.
	selectedBoard   string
	canvasSelection []string
	selectedSlot    document.ElementKind
	hasSelectedSlot bool
}

// NewEngine creates an engine with no document loaded.
func NewEngine() *Engine {
	return &Engine{
		history:    NewHistory(DefaultHistoryLimit),
		snapConfig: DefaultSnapConfig(),
		guides:     make(map[string][]Guide),
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON and resets history with the loaded
// state as the baseline entry.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.BannerDocument
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}
	e.setDocument(&doc)
	return nil
}

// LoadDefaultDocument creates and loads the default document for a project.
func (e *Engine) LoadDefaultDocument(projectID, name string, newBoardID func() string) {
	e.setDocument(document.NewDefaultDocument(projectID, name, newBoardID))
}

func (e *Engine) setDocument(doc *document.BannerDocument) {
	e.doc = doc
	e.arena = NewArena(&doc.Canvas)
	e.history = NewHistory(DefaultHistoryLimit)
	e.history.Commit(doc)
	e.gesture = Gesture{}
	e.canvasSelection = nil
	e.hasSelectedSlot = false
	if len(doc.Boards) > 0 {
		e.selectedBoard = doc.Boards[0].ID
	}
}

// PointerDown starts a drag or resize gesture on an artboard element.
func (e *Engine) PointerDown(boardID string, kind document.ElementKind, handle Handle, x, y float64) bool {
	if e.doc == nil {
		return false
	}
	if ok := e.gesture.BeginLayout(e.doc, boardID, kind, handle, x, y); !ok {
		return false
	}
	e.selectedBoard = boardID
	e.selectedSlot = kind
	e.hasSelectedSlot = true
	return true
}

// PointerMove applies one provisional update for the active gesture. Strays
// arriving while idle are ignored.
func (e *Engine) PointerMove(x, y float64) bool {
	if e.doc == nil || !e.gesture.Active() {
		return false
	}
	if e.gesture.elementID != "" {
		return e.gesture.MoveCanvas(e.arena, e.canvasSnapContext(), x, y)
	}
	return e.gesture.MoveLayout(e.doc, e.layoutSnapContext(), x, y)
}

// PointerUp ends the gesture and commits the final state: exactly one history
// entry per gesture. The frontend registers this on a capture-style listener
// so the pointer may be released anywhere.
func (e *Engine) PointerUp() {
	if e.gesture.End() {
		e.history.Commit(e.doc)
	}
}

// CancelGesture handles lost pointer capture: the last known-good provisional
// state is committed rather than abandoned untracked.
func (e *Engine) CancelGesture() {
	if e.gesture.Cancel() {
		e.history.Commit(e.doc)
	}
}

// CanvasPointerDown starts a drag, resize or rotate gesture on a free-form
// canvas element.
func (e *Engine) CanvasPointerDown(elementID string, handle Handle, x, y float64) bool {
	if e.doc == nil {
		return false
	}
	return e.gesture.BeginCanvas(e.arena, elementID, handle, x, y)
}

// LayoutPatch is a partial layout update; nil fields are left untouched.
// ClearHeight switches a flowing-text element back to derived height.
type LayoutPatch struct {
	X           *float64         `json:"x,omitempty"`
	Y           *float64         `json:"y,omitempty"`
	Width       *float64         `json:"width,omitempty"`
	Height      *float64         `json:"height,omitempty"`
	FontSize    *float64         `json:"fontSize,omitempty"`
	HAlign      *document.HAlign `json:"hAlign,omitempty"`
	VAlign      *document.VAlign `json:"vAlign,omitempty"`
	ClearHeight bool             `json:"clearHeight,omitempty"`
}

// UpdateLayout applies a provisional partial update to one element's layout.
// This is the entry point external drag/resize handlers use; it does not
// commit; callers close the gesture with Commit.
func (e *Engine) UpdateLayout(boardID string, kind document.ElementKind, patch LayoutPatch) bool {
	if e.doc == nil || !kind.Valid() {
		return false
	}
	board, ok := e.doc.BoardByID(boardID)
	if !ok {
		return false
	}
	layout, ok := board.Layout(kind)
	if !ok {
		return false
	}

	if patch.X != nil {
		layout.X = *patch.X
	}
	if patch.Y != nil {
		layout.Y = *patch.Y
	}
	if patch.Width != nil {
		layout.Width = max(*patch.Width, MinElementSize)
	}
	if patch.Height != nil && !kind.IsFlowingText() {
		layout.Height = document.ExplicitHeight(max(*patch.Height, MinElementSize))
	}
	if patch.ClearHeight && kind.IsFlowingText() {
		layout.Height = document.DerivedHeight()
	}
	if patch.FontSize != nil {
		layout.FontSize = max(*patch.FontSize, MinFontSize)
	}
	if patch.HAlign != nil {
		layout.HAlign = *patch.HAlign
	}
	if patch.VAlign != nil {
		layout.VAlign = *patch.VAlign
	}
	board.SetLayout(kind, layout)
	return true
}

// Commit closes a command or externally driven gesture with one history entry.
func (e *Engine) Commit() {
	if e.doc == nil {
		return
	}
	e.history.Commit(e.doc)
}

// AlignElementH aligns one element horizontally and commits.
func (e *Engine) AlignElementH(boardID string, kind document.ElementKind, keyword document.HAlign) bool {
	if e.doc == nil {
		return false
	}
	if !AlignElementH(e.doc, boardID, kind, keyword) {
		return false
	}
	e.history.Commit(e.doc)
	return true
}

// AlignElementV aligns one element vertically and commits.
func (e *Engine) AlignElementV(boardID string, kind document.ElementKind, keyword document.VAlign) bool {
	if e.doc == nil {
		return false
	}
	if !AlignElementV(e.doc, boardID, kind, keyword) {
		return false
	}
	e.history.Commit(e.doc)
	return true
}

// AlignGroupH aligns the element group of one artboard, or of every artboard
// when boardID is empty ("align as group" mode), then commits once.
func (e *Engine) AlignGroupH(boardID string, keyword document.HAlign) bool {
	return e.alignGroup(boardID, keyword, "")
}

// AlignGroupV is the vertical counterpart of AlignGroupH.
func (e *Engine) AlignGroupV(boardID string, keyword document.VAlign) bool {
	return e.alignGroup(boardID, "", keyword)
}

func (e *Engine) alignGroup(boardID string, h document.HAlign, v document.VAlign) bool {
	if e.doc == nil {
		return false
	}
	changed := false
	for i := range e.doc.Boards {
		id := e.doc.Boards[i].ID
		if boardID != "" && id != boardID {
			continue
		}
		if h != "" && AlignGroupH(e.doc, id, h) {
			changed = true
		}
		if v != "" && AlignGroupV(e.doc, id, v) {
			changed = true
		}
	}
	if changed {
		e.history.Commit(e.doc)
	}
	return changed
}

// TidyUp vertically restacks the selected artboard's elements and commits.
func (e *Engine) TidyUp() bool {
	if e.doc == nil {
		return false
	}
	if !TidyUp(e.doc, e.selectedBoard) {
		return false
	}
	e.history.Commit(e.doc)
	return true
}

// MoveBoard swaps the selected artboard within the grid and commits. An
// out-of-range move leaves the document untouched and writes no history.
func (e *Engine) MoveBoard(dir MoveDirection) bool {
	if e.doc == nil {
		return false
	}
	index := -1
	for i := range e.doc.Boards {
		if e.doc.Boards[i].ID == e.selectedBoard {
			index = i
			break
		}
	}
	if !MoveArtboard(e.doc, index, dir) {
		return false
	}
	e.history.Commit(e.doc)
	return true
}

// Undo steps the document back one history entry, if any.
func (e *Engine) Undo() bool {
	doc, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.doc = doc
	e.arena = NewArena(&doc.Canvas)
	return true
}

// Redo steps the document forward one history entry, if any.
func (e *Engine) Redo() bool {
	doc, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.doc = doc
	e.arena = NewArena(&doc.Canvas)
	return true
}

// SelectBoard marks an artboard as the target of board-level commands.
// Selection never enters history.
func (e *Engine) SelectBoard(boardID string) {
	e.selectedBoard = boardID
}

// SetCanvasSelection replaces the canvas selection. An empty list is a
// click on empty canvas.
func (e *Engine) SetCanvasSelection(ids []string) {
	e.canvasSelection = ids
}

// SetGuides replaces the manual guides of one artboard.
func (e *Engine) SetGuides(boardID string, guides []Guide) {
	e.guides[boardID] = guides
}

// SetSnapConfig replaces the snapping configuration.
func (e *Engine) SetSnapConfig(cfg SnapConfig) {
	e.snapConfig = cfg
}

// GroupSelection groups the current canvas selection and commits.
func (e *Engine) GroupSelection(groupID string) bool {
	if e.doc == nil || e.arena == nil {
		return false
	}
	if !e.arena.Group(groupID, e.canvasSelection) {
		return false
	}
	e.canvasSelection = []string{groupID}
	e.history.Commit(e.doc)
	return true
}

// UngroupElement dissolves a canvas group and commits.
func (e *Engine) UngroupElement(groupID string) bool {
	if e.doc == nil || e.arena == nil {
		return false
	}
	if !e.arena.Ungroup(groupID) {
		return false
	}
	e.history.Commit(e.doc)
	return true
}

// DeleteElement removes a canvas element (ungrouping first when it is a
// group) and commits.
func (e *Engine) DeleteElement(id string) bool {
	if e.doc == nil || e.arena == nil {
		return false
	}
	if _, ok := e.arena.Get(id); !ok {
		return false
	}
	e.arena.Delete(id)
	e.history.Commit(e.doc)
	return true
}

// --- Queries (frontend ← backend) ---

// GetDocument returns the full document as JSON.
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

// Document returns the live document for in-process callers. Callers must
// treat it as read-only between commands.
func (e *Engine) Document() *document.BannerDocument {
	return e.doc
}

// GetHistoryState reports the history position so the frontend can enable or
// disable its undo/redo controls.
func (e *Engine) GetHistoryState() string {
	data, _ := json.Marshal(map[string]interface{}{
		"index":   e.history.Index(),
		"length":  e.history.Len(),
		"canUndo": e.history.CanUndo(),
		"canRedo": e.history.CanRedo(),
	})
	return string(data)
}

// GetGestureState returns the interaction machine's state name.
func (e *Engine) GetGestureState() string {
	return e.gesture.State().String()
}

// GetSelection reports the selected artboard and element slot as JSON.
func (e *Engine) GetSelection() string {
	sel := map[string]interface{}{
		"boardId": e.selectedBoard,
		"canvas":  e.canvasSelection,
	}
	if e.hasSelectedSlot {
		sel["element"] = e.selectedSlot
	}
	data, _ := json.Marshal(sel)
	return string(data)
}

// EstimateElementHeight returns the effective height of one element, for
// inspection overlays.
func (e *Engine) EstimateElementHeight(boardID string, kind document.ElementKind) float64 {
	if e.doc == nil {
		return 0
	}
	board, ok := e.doc.BoardByID(boardID)
	if !ok {
		return 0
	}
	layout, ok := board.Layout(kind)
	if !ok {
		return 0
	}
	return ElementHeight(e.doc, kind, layout)
}

// GetSelectionBounds returns the union world bounds of the canvas selection
// as JSON.
func (e *Engine) GetSelectionBounds() string {
	var r Rect
	if e.arena != nil && len(e.canvasSelection) > 0 {
		r = e.arena.SelectionBounds(e.canvasSelection)
	}
	data, _ := json.Marshal(map[string]float64{
		"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height,
	})
	return string(data)
}

// HitTestCanvas returns the topmost canvas element at the point, or "".
func (e *Engine) HitTestCanvas(x, y float64) string {
	if e.arena == nil {
		return ""
	}
	return e.arena.HitTest(x, y)
}

// layoutSnapContext builds the snap sources for the active layout gesture:
// the board's grid and guides plus the other elements' rects in kind order.
func (e *Engine) layoutSnapContext() *SnapContext {
	board, ok := e.doc.BoardByID(e.gesture.boardID)
	if !ok {
		return nil
	}
	ctx := &SnapContext{
		Config: e.snapConfig,
		Guides: e.guides[board.ID],
	}
	for _, kind := range document.ElementKinds {
		if kind == e.gesture.kind {
			continue
		}
		layout, ok := board.Layout(kind)
		if !ok {
			continue
		}
		ctx.Siblings = append(ctx.Siblings, Rect{
			X:      layout.X,
			Y:      layout.Y,
			Width:  layout.Width,
			Height: ElementHeight(e.doc, kind, layout),
		})
	}
	return ctx
}

// canvasSnapContext builds snap sources for a canvas gesture from the other
// elements' world bounds.
func (e *Engine) canvasSnapContext() *SnapContext {
	ctx := &SnapContext{Config: e.snapConfig}
	for _, el := range e.arena.Ordered() {
		if el.ID == e.gesture.elementID || !el.Visible {
			continue
		}
		ctx.Siblings = append(ctx.Siblings, ElementBounds(&el))
	}
	return ctx
}
