package engine

import (
	"encoding/json"
	"testing"

	"github.com/adboard/adboard/backend-go/internal/document"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	e.LoadDefaultDocument("proj_test", "test", newIDGen("board"))
	e.SetSnapConfig(SnapConfig{}) // exact coordinates in assertions
	return e
}

func TestEngineGestureCommitsOnce(t *testing.T) {
	e := newTestEngine(t)
	boardID := e.Document().Boards[0].ID

	if !e.PointerDown(boardID, document.KindHeadline, HandleMove, 0, 0) {
		t.Fatal("pointer down failed")
	}
	e.PointerMove(10, 5)
	e.PointerMove(20, 10)
	e.PointerMove(30, 15)
	e.PointerUp()

	var state struct {
		Index   int  `json:"index"`
		Length  int  `json:"length"`
		CanUndo bool `json:"canUndo"`
		CanRedo bool `json:"canRedo"`
	}
	if err := json.Unmarshal([]byte(e.GetHistoryState()), &state); err != nil {
		t.Fatal(err)
	}
	if state.Length != 2 {
		t.Fatalf("history length = %d, want 2 (baseline + one gesture)", state.Length)
	}
	if !state.CanUndo || state.CanRedo {
		t.Errorf("unexpected undo/redo availability: %+v", state)
	}
}

func TestEngineUndoRestoresGestureStart(t *testing.T) {
	e := newTestEngine(t)
	boardID := e.Document().Boards[0].ID
	board, _ := e.Document().BoardByID(boardID)
	start, _ := board.Layout(document.KindHeadline)

	e.PointerDown(boardID, document.KindHeadline, HandleMove, 0, 0)
	e.PointerMove(10, 40)
	e.PointerUp()

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	board, _ = e.Document().BoardByID(boardID)
	layout, _ := board.Layout(document.KindHeadline)
	assertFloat(t, "x", layout.X, start.X)
	assertFloat(t, "y", layout.Y, start.Y)

	if !e.Redo() {
		t.Fatal("redo failed")
	}
	board, _ = e.Document().BoardByID(boardID)
	layout, _ = board.Layout(document.KindHeadline)
	assertFloat(t, "redone x", layout.X, start.X+10)
}

func TestEngineUpdateLayoutIsProvisional(t *testing.T) {
	e := newTestEngine(t)
	boardID := e.Document().Boards[0].ID

	x := 111.0
	if !e.UpdateLayout(boardID, document.KindCTA, LayoutPatch{X: &x}) {
		t.Fatal("update failed")
	}
	board, _ := e.Document().BoardByID(boardID)
	layout, _ := board.Layout(document.KindCTA)
	assertFloat(t, "x", layout.X, 111)

	// No commit happened: undo has nothing beyond the baseline.
	if e.Undo() {
		t.Error("provisional update must not create a history entry")
	}

	e.Commit()
	if !e.history.CanUndo() {
		t.Error("explicit commit must close the entry")
	}
}

func TestEngineLayoutCommandsCommit(t *testing.T) {
	e := newTestEngine(t)
	boardID := e.Document().Boards[0].ID

	if !e.AlignElementH(boardID, document.KindHeadline, document.HAlignCenter) {
		t.Fatal("align failed")
	}
	if e.history.Len() != 2 {
		t.Errorf("history length = %d, want 2", e.history.Len())
	}

	e.SelectBoard(boardID)
	if !e.TidyUp() {
		t.Fatal("tidy up failed")
	}
	if e.history.Len() != 3 {
		t.Errorf("history length = %d, want 3", e.history.Len())
	}
}

func TestEngineMoveBoardNoOpWritesNoHistory(t *testing.T) {
	e := newTestEngine(t)
	e.SelectBoard(e.Document().Boards[2].ID) // row end

	before := e.history.Len()
	if e.MoveBoard(MoveRight) {
		t.Error("move past row edge must be refused")
	}
	if e.history.Len() != before {
		t.Error("a refused move must not create a history entry")
	}
}

func TestEngineDocumentRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	data := e.GetDocument()
	fresh := NewEngine()
	if err := fresh.LoadDocument(data); err != nil {
		t.Fatal(err)
	}

	if fresh.GetDocument() != data {
		t.Error("document did not survive a serialize/load round trip")
	}
}

func TestEngineStrayEventsAfterUp(t *testing.T) {
	e := newTestEngine(t)
	boardID := e.Document().Boards[0].ID

	e.PointerDown(boardID, document.KindHeadline, HandleMove, 0, 0)
	e.PointerUp()

	if e.PointerMove(500, 500) {
		t.Error("move after pointer-up must be ignored")
	}
	e.PointerUp() // double up must not add an entry
	if e.history.Len() != 2 {
		t.Errorf("history length = %d, want 2", e.history.Len())
	}
}
