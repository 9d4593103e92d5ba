package engine

import (
	"fmt"

	"github.com/adboard/adboard/backend-go/internal/document"
)

// Handle identifies which resize handle (or a plain move) drives a gesture.
type Handle string

const (
	HandleMove Handle = "move"
	HandleN    Handle = "n"
	HandleNE   Handle = "ne"
	HandleE    Handle = "e"
	HandleSE   Handle = "se"
	HandleS    Handle = "s"
	HandleSW   Handle = "sw"
	HandleW    Handle = "w"
	HandleNW   Handle = "nw"
)

const (
	// MinElementSize is the floor for element width, and for height on
	// elements whose height is stored rather than derived.
	MinElementSize = 20.0

	// MinFontSize is the floor for proportional font scaling during a width
	// resize.
	MinFontSize = 8.0
)

// movesLeft reports whether the handle drags the left edge.
func (h Handle) movesLeft() bool { return h == HandleW || h == HandleNW || h == HandleSW }

// movesRight reports whether the handle drags the right edge.
func (h Handle) movesRight() bool { return h == HandleE || h == HandleNE || h == HandleSE }

// movesTop reports whether the handle drags the top edge.
func (h Handle) movesTop() bool { return h == HandleN || h == HandleNW || h == HandleNE }

// movesBottom reports whether the handle drags the bottom edge.
func (h Handle) movesBottom() bool { return h == HandleS || h == HandleSW || h == HandleSE }

// isCorner reports whether the handle is one of the four corner handles.
func (h Handle) isCorner() bool {
	return h == HandleNW || h == HandleNE || h == HandleSW || h == HandleSE
}

// Valid reports whether h names a known handle.
func (h Handle) Valid() bool {
	switch h {
	case HandleMove, HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW:
		return true
	}
	return false
}

// Resolved is the corrected transform produced by the constraint resolver.
type Resolved struct {
	Rect     Rect
	FontSize float64

	// ResetAlignment is set when a handle resize fired: the element now has
	// an explicit position, so its stored alignment keywords must collapse
	// back to a top-left anchor.
	ResetAlignment bool
}

// Resolve corrects a raw pointer delta against an element's constraint
// profile. start is the element's rect at gesture start (for flowing text the
// height is the estimated height, used only for boundary math). startFont is
// the effective font size at gesture start, dx/dy the accumulated pointer
// delta, and bounds the containing artboard. The result always lies within
// bounds and respects the minimum-size floors; a gesture is corrected, never
// rejected.
func Resolve(kind document.ElementKind, start Rect, startFont, dx, dy float64, bounds Rect, handle Handle) Resolved {
	if handle == HandleMove {
		moved := start
		moved.X = start.X + dx
		moved.Y = start.Y + dy
		return Resolved{
			Rect:     moved.ClampInto(bounds),
			FontSize: startFont,
		}
	}

	out := Resolved{Rect: start, FontSize: startFont, ResetAlignment: true}
	r := &out.Rect

	flowing := kind.IsFlowingText()

	// Map the compass handle onto which fields move. Left/top handles shift
	// position and inversely adjust the size so the opposite edge stays put.
	switch {
	case handle.movesLeft():
		r.X += dx
		r.Width -= dx
	case handle.movesRight():
		r.Width += dx
	}
	if !flowing {
		switch {
		case handle.movesTop():
			r.Y += dy
			r.Height -= dy
		case handle.movesBottom():
			r.Height += dy
		}
	}

	// Aspect lock: logo corner resizes keep the original ratio. The larger
	// requested change wins, the other dimension follows, and boundary
	// clamping shrinks both dimensions together so the ratio survives it.
	if kind == document.KindLogo && handle.isCorner() && start.Height > 0 {
		resolveAspectLocked(r, start, bounds, handle)
		assertValidRect(*r, flowing)
		return out
	}

	applyMinSize(r, start, handle, flowing)

	// Boundary re-clamp: shrink from whichever side escaped, never translate
	// the rect to dodge the shrink.
	if r.X < bounds.X {
		r.Width -= bounds.X - r.X
		r.X = bounds.X
	}
	if r.Right() > bounds.Right() {
		r.Width = bounds.Right() - r.X
	}
	if !flowing {
		if r.Y < bounds.Y {
			r.Height -= bounds.Y - r.Y
			r.Y = bounds.Y
		}
		if r.Bottom() > bounds.Bottom() {
			r.Height = bounds.Bottom() - r.Y
		}
	} else {
		r.Y = clamp(r.Y, bounds.Y, max(bounds.Y, bounds.Bottom()-r.Height))
	}

	applyMinSize(r, start, handle, flowing)

	// Width resizes on text-bearing elements scale the font with the box so
	// the copy keeps its visual proportion. Re-wrapping is downstream.
	if kind != document.KindLogo && start.Width > 0 && r.Width != start.Width {
		out.FontSize = max(MinFontSize, startFont*r.Width/start.Width)
	}

	assertValidRect(*r, flowing)
	return out
}

// resolveAspectLocked corrects a corner resize that must preserve the
// element's original aspect ratio. The anchor is the corner opposite the
// active handle; position shifts so that corner stays fixed.
func resolveAspectLocked(r *Rect, start, bounds Rect, handle Handle) {
	ratio := start.Width / start.Height

	// Larger requested change by magnitude wins.
	width := r.Width
	if abs(r.Height-start.Height) > abs(r.Width-start.Width) {
		width = r.Height * ratio
	}

	// Space available from the anchored edges.
	availW := bounds.Right() - start.X
	if handle.movesLeft() {
		availW = start.Right() - bounds.X
	}
	availH := bounds.Bottom() - start.Y
	if handle.movesTop() {
		availH = start.Bottom() - bounds.Y
	}

	width = min(width, availW, availH*ratio)
	width = max(width, MinElementSize, MinElementSize*ratio)

	r.Width = width
	r.Height = width / ratio
	r.X = start.X
	r.Y = start.Y
	if handle.movesLeft() {
		r.X = start.Right() - r.Width
	}
	if handle.movesTop() {
		r.Y = start.Bottom() - r.Height
	}
}

// applyMinSize enforces the size floors, keeping the gesture's anchor edge
// fixed when the floor kicks in on a left/top handle.
func applyMinSize(r *Rect, start Rect, handle Handle, flowing bool) {
	if r.Width < MinElementSize {
		if handle.movesLeft() {
			r.X = start.Right() - MinElementSize
		}
		r.Width = MinElementSize
	}
	if !flowing && r.Height < MinElementSize {
		if handle.movesTop() {
			r.Y = start.Bottom() - MinElementSize
		}
		r.Height = MinElementSize
	}
}

// assertValidRect panics on a structurally invalid result. Reaching this is a
// resolver bug, not a user input condition.
func assertValidRect(r Rect, flowing bool) {
	if r.Width < 0 || (!flowing && r.Height < 0) {
		panic(fmt.Sprintf("constraint resolver produced invalid rect: %+v", r))
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
