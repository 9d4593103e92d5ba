package engine

import "math"

// Orientation of a manual guide line.
type Orientation string

const (
	// Vertical guides constrain x, horizontal guides constrain y.
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Guide is a manually placed guide line on an artboard.
type Guide struct {
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
}

// SnapConfig controls which snap sources apply and how aggressively.
type SnapConfig struct {
	GridSize  float64 `json:"gridSize"`
	Threshold float64 `json:"threshold"`
	Grid      bool    `json:"grid"`
	Guides    bool    `json:"guides"`
	Elements  bool    `json:"elements"`
}

// DefaultSnapConfig matches the editor defaults.
func DefaultSnapConfig() SnapConfig {
	return SnapConfig{GridSize: 10, Threshold: 10, Grid: true, Guides: true, Elements: true}
}

// SnapContext bundles the snap sources for one artboard. Siblings must be
// supplied in stable order (element kind order) so repeated calls with the
// same state produce identical results.
type SnapContext struct {
	Config   SnapConfig
	Guides   []Guide
	Siblings []Rect
}

// SnapPoint corrects a candidate position against all snap sources, each axis
// independently. Sources are evaluated grid first, then guides, then sibling
// edges and centers; a later source only wins when it is strictly closer.
func (ctx *SnapContext) SnapPoint(x, y float64) (float64, float64) {
	return ctx.SnapAxis(x, Vertical), ctx.SnapAxis(y, Horizontal)
}

// SnapAxis corrects a single coordinate. A vertical orientation snaps x, a
// horizontal orientation snaps y.
func (ctx *SnapContext) SnapAxis(candidate float64, orient Orientation) float64 {
	threshold := ctx.Config.Threshold
	if threshold <= 0 {
		return candidate
	}

	best := candidate
	bestDist := threshold

	consider := func(target float64) {
		// Strict comparison keeps earlier sources winning ties, which makes
		// the result independent of how many later sources coincide.
		if d := math.Abs(candidate - target); d < bestDist {
			best = target
			bestDist = d
		}
	}

	if ctx.Config.Grid && ctx.Config.GridSize > 0 {
		// Round half up so a candidate exactly between two grid lines snaps
		// to the higher one.
		cell := ctx.Config.GridSize
		consider(math.Floor(candidate/cell+0.5) * cell)
	}

	if ctx.Config.Guides {
		for _, g := range ctx.Guides {
			if g.Orientation == orient {
				consider(g.Position)
			}
		}
	}

	if ctx.Config.Elements {
		for _, s := range ctx.Siblings {
			cx, cy := s.Center()
			if orient == Vertical {
				consider(s.X)
				consider(s.Right())
				consider(cx)
			} else {
				consider(s.Y)
				consider(s.Bottom())
				consider(cy)
			}
		}
	}

	return best
}
