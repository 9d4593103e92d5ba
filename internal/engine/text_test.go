package engine

import (
	"testing"

	"github.com/adboard/adboard/backend-go/internal/document"
)

func TestEstimateHeight(t *testing.T) {
	style := document.StyleSettings{FontFamily: "Inter", FontWeight: 400, FontSize: 16}

	t.Run("Explicit height always wins", func(t *testing.T) {
		layout := document.Layout{Width: 10, Height: document.ExplicitHeight(120)}
		got := EstimateHeight("a very long headline that would wrap many times", layout, style)
		assertFloat(t, "height", got, 120)
	})

	t.Run("Single short word is one line", func(t *testing.T) {
		layout := document.Layout{Width: 300, Height: document.DerivedHeight()}
		assertFloat(t, "height", EstimateHeight("Go", layout, style), 16*LineHeightMultiplier)
	})

	t.Run("Empty text still occupies one line", func(t *testing.T) {
		layout := document.Layout{Width: 300, Height: document.DerivedHeight()}
		assertFloat(t, "height", EstimateHeight("", layout, style), 16*LineHeightMultiplier)
	})

	t.Run("Layout font size overrides style", func(t *testing.T) {
		layout := document.Layout{Width: 300, Height: document.DerivedHeight(), FontSize: 24}
		assertFloat(t, "height", EstimateHeight("Go", layout, style), 24*LineHeightMultiplier)
	})

	t.Run("Narrow container wraps to more lines", func(t *testing.T) {
		text := "several words that need some room to breathe"
		wide := document.Layout{Width: 1000, Height: document.DerivedHeight()}
		narrow := document.Layout{Width: 80, Height: document.DerivedHeight()}
		if EstimateHeight(text, narrow, style) <= EstimateHeight(text, wide, style) {
			t.Error("narrower container must wrap to at least as many lines")
		}
	})

	t.Run("Word wider than container occupies one line", func(t *testing.T) {
		layout := document.Layout{Width: 10, Height: document.DerivedHeight()}
		assertFloat(t, "height", EstimateHeight("unbreakable", layout, style), 16*LineHeightMultiplier)
	})

	t.Run("Explicit newlines force lines", func(t *testing.T) {
		layout := document.Layout{Width: 1000, Height: document.DerivedHeight()}
		assertFloat(t, "height", EstimateHeight("one\ntwo\nthree", layout, style), 3*16*LineHeightMultiplier)
	})

	t.Run("Pure function", func(t *testing.T) {
		layout := document.Layout{Width: 120, Height: document.DerivedHeight()}
		text := "the same text estimated twice"
		first := EstimateHeight(text, layout, style)
		for i := 0; i < 10; i++ {
			if got := EstimateHeight(text, layout, style); got != first {
				t.Fatalf("estimate changed between calls: %v then %v", first, got)
			}
		}
	})
}

func TestWrapLineCount(t *testing.T) {
	// Four words of equal width in a container fitting exactly two per line.
	word := "nnnn" // 4 * 0.52 * 10 = 20.8 wide at font 10
	width := 2*20.8 + 0.28*10 + 0.01
	text := word + " " + word + " " + word + " " + word

	if got := wrapLineCount(text, width, 10, 400); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}
	if got := wrapLineCount(text, 20.8, 10, 400); got != 4 {
		t.Errorf("lines = %d, want 4", got)
	}
}

func TestElementHeight(t *testing.T) {
	doc := testDoc()

	t.Run("Explicit layout height", func(t *testing.T) {
		board, _ := doc.BoardByID("board_a")
		layout, _ := board.Layout(document.KindHeadline)
		assertFloat(t, "height", ElementHeight(doc, document.KindHeadline, layout), 30)
	})

	t.Run("Derived from document copy", func(t *testing.T) {
		layout := document.Layout{Width: 1000, Height: document.DerivedHeight()}
		want := EstimateHeight(doc.Style.Texts.Headline, layout, doc.Style)
		assertFloat(t, "height", ElementHeight(doc, document.KindHeadline, layout), want)
	})
}
