package engine

import (
	"math"

	"github.com/adboard/adboard/backend-go/internal/document"
)

// GestureState is the interaction machine's current state.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDragging
	StateResizing
	StateRotating
)

func (s GestureState) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	case StateRotating:
		return "rotating"
	default:
		return "idle"
	}
}

// HandleRotate drives the rotation gesture of the free-form canvas editor.
// Artboard layouts never rotate.
const HandleRotate Handle = "rotate"

// Gesture tracks one pointer gesture from pointer-down to pointer-up. The
// machine applies provisional updates on every move; the owner commits to
// history exactly once when End or Cancel reports that the gesture was live.
// A Move in the idle state is ignored: pointer events may straggle in after
// pointer-up and must not crash or mutate anything.
type Gesture struct {
	state GestureState

	// Target: an artboard layout slot...
	boardID string
	kind    document.ElementKind
	// ...or a canvas element.
	elementID string

	handle        Handle
	start         Rect
	startFont     float64
	startRotation float64
	originX       float64
	originY       float64
	originAngle   float64
}

// State returns the current machine state.
func (g *Gesture) State() GestureState { return g.state }

// Active reports whether a gesture is in progress.
func (g *Gesture) Active() bool { return g.state != StateIdle }

// BeginLayout starts a drag or resize gesture on an artboard element. The
// gesture-start transform is captured here; every Move resolves against it
// rather than against the provisional state, so constraint corrections never
// accumulate drift. Returns false if already in a gesture or the target is
// absent.
func (g *Gesture) BeginLayout(doc *document.BannerDocument, boardID string, kind document.ElementKind, handle Handle, x, y float64) bool {
	if g.state != StateIdle || !handle.Valid() {
		return false
	}
	board, ok := doc.BoardByID(boardID)
	if !ok {
		return false
	}
	layout, ok := board.Layout(kind)
	if !ok {
		return false
	}

	g.boardID = boardID
	g.kind = kind
	g.elementID = ""
	g.handle = handle
	g.start = Rect{
		X:      layout.X,
		Y:      layout.Y,
		Width:  layout.Width,
		Height: ElementHeight(doc, kind, layout),
	}
	g.startFont = layout.FontSize
	if g.startFont <= 0 {
		g.startFont = doc.Style.FontSize
	}
	g.originX = x
	g.originY = y

	if handle == HandleMove {
		g.state = StateDragging
	} else {
		g.state = StateResizing
	}
	return true
}

// BeginCanvas starts a gesture on a free-form canvas element. HandleMove
// drags, HandleRotate rotates around the element center, and the compass
// handles resize.
func (g *Gesture) BeginCanvas(arena *Arena, elementID string, handle Handle, x, y float64) bool {
	if g.state != StateIdle {
		return false
	}
	el, ok := arena.Get(elementID)
	if !ok {
		return false
	}

	g.elementID = elementID
	g.boardID = ""
	g.handle = handle
	g.start = Rect{X: el.X, Y: el.Y, Width: el.Width, Height: el.Height}
	g.startRotation = el.Rotation
	g.originX = x
	g.originY = y

	switch handle {
	case HandleMove:
		g.state = StateDragging
	case HandleRotate:
		cx := el.X + el.Width/2
		cy := el.Y + el.Height/2
		g.originAngle = math.Atan2(y-cy, x-cx)
		g.state = StateRotating
	default:
		if !handle.Valid() {
			g.state = StateIdle
			return false
		}
		g.state = StateResizing
	}
	return true
}

// MoveLayout applies one provisional update for an artboard gesture: resolve
// the raw delta against the element's constraint profile, snap the result,
// and write it into the live document. Returns false (and does nothing) when
// no layout gesture is active.
func (g *Gesture) MoveLayout(doc *document.BannerDocument, snap *SnapContext, x, y float64) bool {
	if g.boardID == "" || (g.state != StateDragging && g.state != StateResizing) {
		return false
	}
	board, ok := doc.BoardByID(g.boardID)
	if !ok {
		return false
	}
	layout, ok := board.Layout(g.kind)
	if !ok {
		return false
	}

	bounds := Rect{Width: board.Width, Height: board.Height}
	res := Resolve(g.kind, g.start, g.startFont, x-g.originX, y-g.originY, bounds, g.handle)

	// Edge snapping would fight the aspect lock on logo corner resizes, so
	// those stay unsnapped.
	if snap != nil && !(g.kind == document.KindLogo && g.handle.isCorner()) {
		applySnap(&res.Rect, snap, g.handle, bounds, g.kind.IsFlowingText())
	}

	layout.X = res.Rect.X
	layout.Y = res.Rect.Y
	layout.Width = res.Rect.Width
	if !g.kind.IsFlowingText() {
		layout.Height = document.ExplicitHeight(res.Rect.Height)
	}
	if g.kind != document.KindLogo && res.FontSize != g.startFont {
		layout.FontSize = res.FontSize
	}
	if res.ResetAlignment {
		layout.HAlign = document.HAlignLeft
		layout.VAlign = document.VAlignTop
	}
	board.SetLayout(g.kind, layout)
	return true
}

// MoveCanvas applies one provisional update for a canvas gesture.
func (g *Gesture) MoveCanvas(arena *Arena, snap *SnapContext, x, y float64) bool {
	if g.elementID == "" || g.state == StateIdle {
		return false
	}
	el, ok := arena.Get(g.elementID)
	if !ok {
		return false
	}

	dx := x - g.originX
	dy := y - g.originY

	switch g.state {
	case StateDragging:
		el.X = g.start.X + dx
		el.Y = g.start.Y + dy
		if snap != nil {
			el.X, el.Y = snap.SnapPoint(el.X, el.Y)
		}

	case StateResizing:
		r := g.start
		if g.handle.movesLeft() {
			r.X += dx
			r.Width -= dx
		} else if g.handle.movesRight() {
			r.Width += dx
		}
		if g.handle.movesTop() {
			r.Y += dy
			r.Height -= dy
		} else if g.handle.movesBottom() {
			r.Height += dy
		}
		if r.Width < MinElementSize {
			if g.handle.movesLeft() {
				r.X = g.start.Right() - MinElementSize
			}
			r.Width = MinElementSize
		}
		if r.Height < MinElementSize {
			if g.handle.movesTop() {
				r.Y = g.start.Bottom() - MinElementSize
			}
			r.Height = MinElementSize
		}
		el.X, el.Y, el.Width, el.Height = r.X, r.Y, r.Width, r.Height

	case StateRotating:
		cx := g.start.X + g.start.Width/2
		cy := g.start.Y + g.start.Height/2
		angle := math.Atan2(y-cy, x-cx)
		el.Rotation = g.startRotation + (angle-g.originAngle)*180/math.Pi
	}

	arena.Put(el)
	return true
}

// End closes the gesture and reports whether one was active; the owner
// commits the document exactly once when it was.
func (g *Gesture) End() bool {
	active := g.state != StateIdle
	g.state = StateIdle
	g.boardID = ""
	g.elementID = ""
	return active
}

// Cancel handles lost pointer capture: the machine returns to idle and the
// owner commits the last known-good provisional state rather than leaving the
// document in an untracked condition.
func (g *Gesture) Cancel() bool {
	return g.End()
}

// applySnap pulls the resolved rect's moving edges toward the snap sources.
// Dragging snaps the whole rect by its top-left corner; resizing snaps only
// the edges the handle moves, keeping the anchored edges fixed. A snap that
// would push a dimension under the minimum floor, or an edge outside the
// artboard, is discarded. Grid lines past the board edge exist whenever the
// board dimension is not a grid multiple, so containment must be checked
// here and not just in the resolver.
func applySnap(r *Rect, snap *SnapContext, handle Handle, bounds Rect, flowing bool) {
	if handle == HandleMove {
		r.X, r.Y = snap.SnapPoint(r.X, r.Y)
		*r = r.ClampInto(bounds)
		return
	}

	if handle.movesLeft() {
		x := snap.SnapAxis(r.X, Vertical)
		if w := r.Right() - x; w >= MinElementSize && x >= bounds.X {
			r.Width = w
			r.X = x
		}
	} else if handle.movesRight() {
		right := snap.SnapAxis(r.Right(), Vertical)
		if w := right - r.X; w >= MinElementSize && right <= bounds.Right() {
			r.Width = w
		}
	}
	if flowing {
		return
	}
	if handle.movesTop() {
		y := snap.SnapAxis(r.Y, Horizontal)
		if h := r.Bottom() - y; h >= MinElementSize && y >= bounds.Y {
			r.Height = h
			r.Y = y
		}
	} else if handle.movesBottom() {
		bottom := snap.SnapAxis(r.Bottom(), Horizontal)
		if h := bottom - r.Y; h >= MinElementSize && bottom <= bounds.Bottom() {
			r.Height = h
		}
	}
}
