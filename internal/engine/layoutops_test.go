package engine

import (
	"testing"

	"github.com/adboard/adboard/backend-go/internal/document"
)

func TestAlignElement(t *testing.T) {
	t.Run("Horizontal keywords", func(t *testing.T) {
		cases := []struct {
			keyword document.HAlign
			wantX   float64
		}{
			{document.HAlignLeft, 0},
			{document.HAlignCenter, 50}, // (300 - 200) / 2
			{document.HAlignRight, 100}, // 300 - 200
		}
		for _, tc := range cases {
			doc := testDoc()
			if !AlignElementH(doc, "board_a", document.KindHeadline, tc.keyword) {
				t.Fatalf("%s: align failed", tc.keyword)
			}
			board, _ := doc.BoardByID("board_a")
			layout, _ := board.Layout(document.KindHeadline)
			assertFloat(t, string(tc.keyword)+" x", layout.X, tc.wantX)
			if layout.HAlign != tc.keyword {
				t.Errorf("keyword not stored: got %s", layout.HAlign)
			}
		}
	})

	t.Run("Vertical keywords collapse to absolute y", func(t *testing.T) {
		cases := []struct {
			keyword document.VAlign
			wantY   float64
		}{
			{document.VAlignTop, 0},
			{document.VAlignMiddle, 110}, // (250 - 30) / 2
			{document.VAlignBottom, 220}, // 250 - 30
		}
		for _, tc := range cases {
			doc := testDoc()
			if !AlignElementV(doc, "board_a", document.KindHeadline, tc.keyword) {
				t.Fatalf("%s: align failed", tc.keyword)
			}
			board, _ := doc.BoardByID("board_a")
			layout, _ := board.Layout(document.KindHeadline)
			assertFloat(t, string(tc.keyword)+" y", layout.Y, tc.wantY)
			if layout.VAlign != document.VAlignTop {
				t.Errorf("%s: vAlign = %s, want collapsed top", tc.keyword, layout.VAlign)
			}
		}
	})

	t.Run("Missing element is a no-op", func(t *testing.T) {
		doc := testDoc()
		if AlignElementH(doc, "board_a", document.KindLogo, document.HAlignCenter) {
			t.Error("aligning an absent element must report no change")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		doc := testDoc()
		AlignElementH(doc, "board_a", document.KindCTA, document.HAlignRight)
		board, _ := doc.BoardByID("board_a")
		first, _ := board.Layout(document.KindCTA)

		AlignElementH(doc, "board_a", document.KindCTA, document.HAlignRight)
		second, _ := board.Layout(document.KindCTA)
		if first != second {
			t.Errorf("second align changed the layout: %+v -> %+v", first, second)
		}
	})
}

func TestAlignGroup(t *testing.T) {
	t.Run("Preserves pairwise offsets", func(t *testing.T) {
		doc := testDoc()
		board, _ := doc.BoardByID("board_a")
		before := map[document.ElementKind]document.Layout{}
		for _, kind := range document.ElementKinds {
			if l, ok := board.Layout(kind); ok {
				before[kind] = l
			}
		}

		if !AlignGroupH(doc, "board_a", document.HAlignRight) {
			t.Fatal("group align failed")
		}

		var refKind document.ElementKind
		var refBefore, refAfter document.Layout
		for kind, b := range before {
			a, _ := board.Layout(kind)
			if refKind == "" {
				refKind, refBefore, refAfter = kind, b, a
				continue
			}
			assertFloat(t, "dx "+string(kind), a.X-refAfter.X, b.X-refBefore.X)
			assertFloat(t, "dy "+string(kind), a.Y-refAfter.Y, b.Y-refBefore.Y)
		}
	})

	t.Run("Union box reaches the target edge", func(t *testing.T) {
		doc := testDoc()
		if !AlignGroupH(doc, "board_a", document.HAlignRight) {
			t.Fatal("group align failed")
		}
		board, _ := doc.BoardByID("board_a")
		union, _ := groupBounds(doc, board)
		assertFloat(t, "union right", union.Right(), 300)
	})

	t.Run("Clears alignment keywords", func(t *testing.T) {
		doc := testDoc()
		board, _ := doc.BoardByID("board_a")
		layout, _ := board.Layout(document.KindHeadline)
		layout.HAlign = document.HAlignRight
		board.SetLayout(document.KindHeadline, layout)

		AlignGroupV(doc, "board_a", document.VAlignMiddle)
		layout, _ = board.Layout(document.KindHeadline)
		if layout.HAlign != document.HAlignLeft || layout.VAlign != document.VAlignTop {
			t.Errorf("keywords not cleared: %s/%s", layout.HAlign, layout.VAlign)
		}
	})

	t.Run("Absent elements are skipped not zero-sized", func(t *testing.T) {
		doc := testDoc() // no logo present
		board, _ := doc.BoardByID("board_a")
		union, any := groupBounds(doc, board)
		if !any {
			t.Fatal("expected elements")
		}
		// Union of the three text slots: x 20, y 20, right 220, bottom 180.
		assertFloat(t, "x", union.X, 20)
		assertFloat(t, "y", union.Y, 20)
		assertFloat(t, "right", union.Right(), 220)
		assertFloat(t, "bottom", union.Bottom(), 180)
	})

	t.Run("Empty board is a no-op", func(t *testing.T) {
		doc := testDoc()
		doc.Boards[0].Layouts = nil
		if AlignGroupH(doc, "board_a", document.HAlignLeft) {
			t.Error("empty board must report no change")
		}
	})
}

func TestTidyUp(t *testing.T) {
	// Elements at y 150, 20, 80 with heights 30, 40, 20: sorted order is
	// subheadline (20), cta (80), headline (150); stacked with gap 10 the
	// resulting y values are 20, 70, 100.
	doc := testDoc()
	if !TidyUp(doc, "board_a") {
		t.Fatal("tidy up failed")
	}
	board, _ := doc.BoardByID("board_a")

	sub, _ := board.Layout(document.KindSubheadline)
	cta, _ := board.Layout(document.KindCTA)
	head, _ := board.Layout(document.KindHeadline)

	assertFloat(t, "subheadline y", sub.Y, 20)
	assertFloat(t, "cta y", cta.Y, 70)
	assertFloat(t, "headline y", head.Y, 100)

	for kind, l := range map[document.ElementKind]document.Layout{
		document.KindSubheadline: sub, document.KindCTA: cta, document.KindHeadline: head,
	} {
		if l.VAlign != document.VAlignTop {
			t.Errorf("%s: vAlign = %s, want top", kind, l.VAlign)
		}
	}
}

func TestMoveArtboard(t *testing.T) {
	newDoc := func() *document.BannerDocument {
		return document.NewDefaultDocument("proj_test", "test", newIDGen("board"))
	}

	t.Run("Left swaps within a row", func(t *testing.T) {
		doc := newDoc()
		a, b := doc.Boards[3].ID, doc.Boards[4].ID
		if !MoveArtboard(doc, 4, MoveLeft) {
			t.Fatal("move failed")
		}
		if doc.Boards[3].ID != b || doc.Boards[4].ID != a {
			t.Error("boards 3 and 4 not swapped")
		}
	})

	t.Run("Right at row end is a no-op", func(t *testing.T) {
		doc := newDoc()
		if MoveArtboard(doc, 5, MoveRight) {
			t.Error("move past the grid edge must be a no-op")
		}
	})

	t.Run("Left at row start refuses to cross rows", func(t *testing.T) {
		doc := newDoc()
		if MoveArtboard(doc, 3, MoveLeft) {
			t.Error("index 3 starts a row; moving left must be a no-op")
		}
	})

	t.Run("Up and down swap across rows", func(t *testing.T) {
		doc := newDoc()
		a, b := doc.Boards[1].ID, doc.Boards[4].ID
		if !MoveArtboard(doc, 1, MoveDown) {
			t.Fatal("move down failed")
		}
		if doc.Boards[4].ID != a || doc.Boards[1].ID != b {
			t.Error("boards 1 and 4 not swapped")
		}
		if !MoveArtboard(doc, 4, MoveUp) {
			t.Fatal("move up failed")
		}
		if doc.Boards[1].ID != a {
			t.Error("move up did not restore the original order")
		}
	})

	t.Run("Out of range index", func(t *testing.T) {
		doc := newDoc()
		if MoveArtboard(doc, 9, MoveUp) || MoveArtboard(doc, -1, MoveDown) {
			t.Error("invalid index must be a no-op")
		}
	})
}
