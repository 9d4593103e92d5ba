package engine

import (
	"testing"

	"github.com/adboard/adboard/backend-go/internal/document"
)

func TestGestureLifecycle(t *testing.T) {
	t.Run("Drag applies provisional updates", func(t *testing.T) {
		doc := testDoc()
		var g Gesture

		if !g.BeginLayout(doc, "board_a", document.KindCTA, HandleMove, 100, 100) {
			t.Fatal("begin failed")
		}
		if g.State() != StateDragging {
			t.Fatalf("state = %s, want dragging", g.State())
		}

		g.MoveLayout(doc, nil, 130, 90)
		board, _ := doc.BoardByID("board_a")
		layout, _ := board.Layout(document.KindCTA)
		assertFloat(t, "x", layout.X, 50)
		assertFloat(t, "y", layout.Y, 70)

		// Each move resolves from the gesture-start snapshot, not the
		// provisional state, so corrections never accumulate.
		g.MoveLayout(doc, nil, 110, 100)
		layout, _ = board.Layout(document.KindCTA)
		assertFloat(t, "x", layout.X, 30)
		assertFloat(t, "y", layout.Y, 80)

		if !g.End() {
			t.Error("end of a live gesture must request a commit")
		}
		if g.State() != StateIdle {
			t.Errorf("state = %s, want idle", g.State())
		}
	})

	t.Run("Resize enters resizing state", func(t *testing.T) {
		doc := testDoc()
		var g Gesture
		g.BeginLayout(doc, "board_a", document.KindCTA, HandleSE, 120, 100)
		if g.State() != StateResizing {
			t.Fatalf("state = %s, want resizing", g.State())
		}
	})

	t.Run("Begin on missing element refused", func(t *testing.T) {
		doc := testDoc()
		var g Gesture
		if g.BeginLayout(doc, "board_a", document.KindLogo, HandleMove, 0, 0) {
			t.Error("begin must fail for an absent element")
		}
		if g.State() != StateIdle {
			t.Error("failed begin must stay idle")
		}
	})

	t.Run("Stray move while idle is ignored", func(t *testing.T) {
		doc := testDoc()
		var g Gesture
		if g.MoveLayout(doc, nil, 50, 50) {
			t.Error("move without a gesture must be ignored")
		}
		board, _ := doc.BoardByID("board_a")
		layout, _ := board.Layout(document.KindCTA)
		assertFloat(t, "x untouched", layout.X, 20)
	})

	t.Run("End while idle requests no commit", func(t *testing.T) {
		var g Gesture
		if g.End() {
			t.Error("idle end must not request a commit")
		}
	})

	t.Run("Cancel reaches idle and requests a commit", func(t *testing.T) {
		doc := testDoc()
		var g Gesture
		g.BeginLayout(doc, "board_a", document.KindCTA, HandleMove, 0, 0)
		g.MoveLayout(doc, nil, 15, 0)
		if !g.Cancel() {
			t.Error("cancel of a live gesture must request a commit")
		}
		if g.State() != StateIdle {
			t.Error("cancel must reach idle")
		}
	})
}

func TestGestureSnapping(t *testing.T) {
	doc := testDoc()
	var g Gesture
	snap := &SnapContext{Config: SnapConfig{GridSize: 10, Threshold: 10, Grid: true}}

	g.BeginLayout(doc, "board_a", document.KindCTA, HandleMove, 0, 0)
	g.MoveLayout(doc, snap, 14, 3)

	board, _ := doc.BoardByID("board_a")
	layout, _ := board.Layout(document.KindCTA)
	assertFloat(t, "x snapped", layout.X, 30) // 20+14=34 -> 30
	assertFloat(t, "y snapped", layout.Y, 80) // 80+3=83 -> 80
}

func TestGestureSnapKeepsResizeInBoard(t *testing.T) {
	// A board dimension that is not a grid multiple leaves a grid line past
	// the board edge; snapping a resized edge must never cross it.
	snap := &SnapContext{Config: SnapConfig{GridSize: 10, Threshold: 10, Grid: true}}

	t.Run("Right edge", func(t *testing.T) {
		doc := testDoc()
		board, _ := doc.BoardByID("board_a")
		board.Width = 95
		layout, _ := board.Layout(document.KindCTA)
		layout.X, layout.Width = 10, 40
		board.SetLayout(document.KindCTA, layout)

		var g Gesture
		g.BeginLayout(doc, "board_a", document.KindCTA, HandleE, 50, 30)
		g.MoveLayout(doc, snap, 150, 30)

		layout, _ = board.Layout(document.KindCTA)
		assertFloat(t, "x", layout.X, 10)
		// Clamped at the board edge; the 100 grid line is out of reach.
		assertFloat(t, "width", layout.Width, 85)
	})

	t.Run("Bottom edge", func(t *testing.T) {
		doc := testDoc()
		board, _ := doc.BoardByID("board_a")
		board.Height = 95
		board.SetLayout(document.KindLogo, document.Layout{
			X: 10, Y: 10, Width: 40,
			Height: document.ExplicitHeight(40),
			HAlign: document.HAlignLeft, VAlign: document.VAlignTop,
		})

		var g Gesture
		g.BeginLayout(doc, "board_a", document.KindLogo, HandleS, 30, 50)
		g.MoveLayout(doc, snap, 30, 150)

		layout, _ := board.Layout(document.KindLogo)
		assertFloat(t, "y", layout.Y, 10)
		h, ok := layout.Height.Explicit()
		if !ok {
			t.Fatal("logo height must stay explicit")
		}
		assertFloat(t, "height", h, 85)
	})
}

func TestGestureResizeAlignmentReset(t *testing.T) {
	doc := testDoc()
	board, _ := doc.BoardByID("board_a")
	layout, _ := board.Layout(document.KindCTA)
	layout.HAlign = document.HAlignCenter
	layout.VAlign = document.VAlignBottom
	board.SetLayout(document.KindCTA, layout)

	var g Gesture
	g.BeginLayout(doc, "board_a", document.KindCTA, HandleE, 120, 100)
	g.MoveLayout(doc, nil, 150, 100)

	layout, _ = board.Layout(document.KindCTA)
	if layout.HAlign != document.HAlignLeft || layout.VAlign != document.VAlignTop {
		t.Errorf("resize must reset alignment keywords, got %s/%s", layout.HAlign, layout.VAlign)
	}
	assertFloat(t, "width", layout.Width, 130)
}

func TestGestureFlowingHeightStaysDerived(t *testing.T) {
	doc := testDoc()
	board, _ := doc.BoardByID("board_a")
	layout, _ := board.Layout(document.KindHeadline)
	layout.Height = document.DerivedHeight()
	board.SetLayout(document.KindHeadline, layout)

	var g Gesture
	g.BeginLayout(doc, "board_a", document.KindHeadline, HandleSE, 0, 0)
	g.MoveLayout(doc, nil, 40, 40)

	layout, _ = board.Layout(document.KindHeadline)
	if !layout.Height.IsDerived() {
		t.Error("flowing text height must stay derived through a resize")
	}
	assertFloat(t, "width", layout.Width, 240)
}

func TestGestureCanvasRotate(t *testing.T) {
	scene := document.CanvasScene{Elements: map[string]document.CanvasElement{
		"el_1": {
			ID: "el_1", Type: document.ElementShape,
			X: 100, Y: 100, Width: 40, Height: 40,
			ScaleX: 1, ScaleY: 1, Opacity: 1, Visible: true,
		},
	}}
	arena := NewArena(&scene)

	var g Gesture
	// Center is (120, 120); start from due east of it.
	if !g.BeginCanvas(arena, "el_1", HandleRotate, 160, 120) {
		t.Fatal("begin rotate failed")
	}
	if g.State() != StateRotating {
		t.Fatalf("state = %s, want rotating", g.State())
	}

	// Move to due south: a quarter turn clockwise.
	g.MoveCanvas(arena, nil, 120, 160)
	el, _ := arena.Get("el_1")
	assertFloat(t, "rotation", el.Rotation, 90)

	if !g.End() {
		t.Error("end must request a commit")
	}
}

func TestGestureCanvasDragAndResize(t *testing.T) {
	scene := document.CanvasScene{Elements: map[string]document.CanvasElement{
		"el_1": {
			ID: "el_1", Type: document.ElementText,
			X: 50, Y: 50, Width: 100, Height: 30,
			ScaleX: 1, ScaleY: 1, Opacity: 1, Visible: true,
		},
	}}
	arena := NewArena(&scene)

	t.Run("Drag", func(t *testing.T) {
		var g Gesture
		g.BeginCanvas(arena, "el_1", HandleMove, 0, 0)
		g.MoveCanvas(arena, nil, 25, -10)
		el, _ := arena.Get("el_1")
		assertFloat(t, "x", el.X, 75)
		assertFloat(t, "y", el.Y, 40)
		g.End()
	})

	t.Run("Resize respects floor", func(t *testing.T) {
		var g Gesture
		g.BeginCanvas(arena, "el_1", HandleE, 0, 0)
		g.MoveCanvas(arena, nil, -500, 0)
		el, _ := arena.Get("el_1")
		assertFloat(t, "width", el.Width, MinElementSize)
		g.End()
	})
}
