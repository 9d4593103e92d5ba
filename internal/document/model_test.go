package document

import (
	"encoding/json"
	"testing"
)

func TestHeightJSON(t *testing.T) {
	t.Run("explicit height is a number", func(t *testing.T) {
		data, err := json.Marshal(ExplicitHeight(42))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "42" {
			t.Errorf("marshal = %s, want 42", data)
		}
	})

	t.Run("derived height is null", func(t *testing.T) {
		data, err := json.Marshal(DerivedHeight())
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "null" {
			t.Errorf("marshal = %s, want null", data)
		}
	})

	t.Run("null round-trips to derived", func(t *testing.T) {
		var h Height
		if err := json.Unmarshal([]byte("null"), &h); err != nil {
			t.Fatal(err)
		}
		if !h.IsDerived() {
			t.Error("null must decode as derived")
		}
	})

	t.Run("number round-trips to explicit", func(t *testing.T) {
		var h Height
		if err := json.Unmarshal([]byte("37.5"), &h); err != nil {
			t.Fatal(err)
		}
		v, explicit := h.Explicit()
		if !explicit || v != 37.5 {
			t.Errorf("got (%v, %v), want (37.5, true)", v, explicit)
		}
	})

	t.Run("non-numeric height is rejected", func(t *testing.T) {
		var h Height
		if err := json.Unmarshal([]byte(`"tall"`), &h); err == nil {
			t.Error("expected error for string height")
		}
	})
}

func TestBoardByID(t *testing.T) {
	doc := &BannerDocument{Boards: []Artboard{{ID: "board_a"}, {ID: "board_b"}}}

	board, ok := doc.BoardByID("board_b")
	if !ok || board.ID != "board_b" {
		t.Fatalf("BoardByID = (%v, %v)", board, ok)
	}

	// The pointer aliases the slice entry so edits stick.
	board.Name = "Leaderboard"
	if doc.Boards[1].Name != "Leaderboard" {
		t.Error("BoardByID must return a pointer into the document")
	}

	if _, ok := doc.BoardByID("missing"); ok {
		t.Error("missing board must report ok=false")
	}
}
