package document

import (
	"encoding/json"
	"fmt"
)

// BannerDocument is the full editable state of one project: global style
// settings plus one artboard per target banner size. The undo/redo history is
// deliberately not part of the document; the engine owns it separately, so
// snapshots can never recursively contain other snapshots.
type BannerDocument struct {
	Project Project       `json:"project"`
	Style   StyleSettings `json:"style"`
	Boards  []Artboard    `json:"boards"`
	Canvas  CanvasScene   `json:"canvas"`
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// StyleSettings are the document-wide style defaults. Per-element layouts may
// override the font size; everything else is shared across artboards.
type StyleSettings struct {
	FontFamily    string   `json:"fontFamily"`
	FontWeight    int      `json:"fontWeight"`
	FontSize      float64  `json:"fontSize"`
	TextColor     string   `json:"textColor"`
	AccentColor   string   `json:"accentColor"`
	Background    string   `json:"background"`
	GradientFrom  string   `json:"gradientFrom"`
	GradientTo    string   `json:"gradientTo"`
	GradientAngle float64  `json:"gradientAngle"`
	Texts         TextSet  `json:"texts"`
	LogoAssetID   string   `json:"logoAssetId"`
	Palette       []string `json:"palette"`
}

// TextSet holds the copy shared by every artboard. Each artboard only stores
// where the text goes, not what it says.
type TextSet struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTA         string `json:"cta"`
}

// ElementKind identifies one logical element slot on an artboard.
type ElementKind string

const (
	KindLogo        ElementKind = "logo"
	KindHeadline    ElementKind = "headline"
	KindSubheadline ElementKind = "subheadline"
	KindCTA         ElementKind = "cta"
)

// ElementKinds lists every kind in stable order. Iteration over layouts must
// go through this so that snapping and alignment are deterministic.
var ElementKinds = []ElementKind{KindLogo, KindHeadline, KindSubheadline, KindCTA}

// Valid reports whether k is a known element kind.
func (k ElementKind) Valid() bool {
	switch k {
	case KindLogo, KindHeadline, KindSubheadline, KindCTA:
		return true
	}
	return false
}

// IsFlowingText reports whether the element's height is always derived from
// word wrap rather than stored. Only the logo has an intrinsic height.
func (k ElementKind) IsFlowingText() bool {
	return k != KindLogo
}

type HAlign string

const (
	HAlignLeft   HAlign = "left"
	HAlignCenter HAlign = "center"
	HAlignRight  HAlign = "right"
)

type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Height is either an explicit pixel value or derived from text wrapping.
// It is a two-state value rather than a nullable number so that callers can
// never mistake "derived" for zero.
type Height struct {
	explicit bool
	value    float64
}

// ExplicitHeight returns a fixed pixel height.
func ExplicitHeight(v float64) Height {
	return Height{explicit: true, value: v}
}

// DerivedHeight marks the height as computed from text metrics.
func DerivedHeight() Height {
	return Height{}
}

// Explicit returns the stored value and whether one is set.
func (h Height) Explicit() (float64, bool) {
	return h.value, h.explicit
}

// IsDerived reports whether the height must come from the text estimator.
func (h Height) IsDerived() bool {
	return !h.explicit
}

// MarshalJSON encodes an explicit height as a number and a derived height as
// null, matching the wire format the frontend persists.
func (h Height) MarshalJSON() ([]byte, error) {
	if !h.explicit {
		return []byte("null"), nil
	}
	return json.Marshal(h.value)
}

func (h *Height) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = DerivedHeight()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("height: %w", err)
	}
	*h = ExplicitHeight(v)
	return nil
}

// Layout is the stored position/size/style record for one element slot on
// one artboard. Position is always top-left origin; a VAlign of "middle" or
// "bottom" is a rendering-time visual offset, not a change to Y.
type Layout struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   Height  `json:"height"`
	FontSize float64 `json:"fontSize"` // 0 = inherit the document style size
	HAlign   HAlign  `json:"hAlign"`
	VAlign   VAlign  `json:"vAlign"`
}

// Point is a 2D offset in artboard pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Artboard is one fixed-size canvas representing a single output banner size.
// Artboards are never created or destroyed at runtime, only reordered; their
// index in BannerDocument.Boards is their grid position.
type Artboard struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Width             float64                `json:"width"`
	Height            float64                `json:"height"`
	Layouts           map[ElementKind]Layout `json:"layouts"`
	BackgroundAssetID string                 `json:"backgroundAssetId"`
	BackgroundOffset  Point                  `json:"backgroundOffset"`
}

// Layout returns the layout for kind and whether that element is present on
// the board. Optional elements (a logo before one is uploaded) are simply
// absent from the map.
func (a *Artboard) Layout(kind ElementKind) (Layout, bool) {
	l, ok := a.Layouts[kind]
	return l, ok
}

// SetLayout stores the layout for kind.
func (a *Artboard) SetLayout(kind ElementKind, l Layout) {
	if a.Layouts == nil {
		a.Layouts = make(map[ElementKind]Layout)
	}
	a.Layouts[kind] = l
}

// Text returns the document copy rendered into the given element slot.
func (d *BannerDocument) Text(kind ElementKind) string {
	switch kind {
	case KindHeadline:
		return d.Style.Texts.Headline
	case KindSubheadline:
		return d.Style.Texts.Subheadline
	case KindCTA:
		return d.Style.Texts.CTA
	}
	return ""
}

// BoardByID finds an artboard by id.
func (d *BannerDocument) BoardByID(id string) (*Artboard, bool) {
	for i := range d.Boards {
		if d.Boards[i].ID == id {
			return &d.Boards[i], true
		}
	}
	return nil, false
}
