package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/adboard/adboard/backend-go/internal/document"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !almostEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testDoc builds a single-board document with explicit heights so layout math
// is independent of the text estimator.
func testDoc() *document.BannerDocument {
	doc := &document.BannerDocument{
		Project: document.Project{ID: "proj_test", Name: "test"},
		Style: document.StyleSettings{
			FontFamily: "Inter",
			FontWeight: 400,
			FontSize:   16,
			Texts: document.TextSet{
				Headline:    "Hello world",
				Subheadline: "Some supporting copy",
				CTA:         "Go",
			},
		},
	}
	board := document.Artboard{
		ID:     "board_a",
		Name:   "Medium Rectangle",
		Width:  300,
		Height: 250,
	}
	board.SetLayout(document.KindHeadline, document.Layout{
		X: 20, Y: 150, Width: 200,
		Height: document.ExplicitHeight(30),
		HAlign: document.HAlignLeft, VAlign: document.VAlignTop,
	})
	board.SetLayout(document.KindSubheadline, document.Layout{
		X: 20, Y: 20, Width: 200,
		Height: document.ExplicitHeight(40),
		HAlign: document.HAlignLeft, VAlign: document.VAlignTop,
	})
	board.SetLayout(document.KindCTA, document.Layout{
		X: 20, Y: 80, Width: 100,
		Height: document.ExplicitHeight(20),
		HAlign: document.HAlignLeft, VAlign: document.VAlignTop,
	})
	doc.Boards = append(doc.Boards, board)
	return doc
}

// newIDGen returns a deterministic artboard id generator.
func newIDGen(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}
