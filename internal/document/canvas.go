package document

import "encoding/json"

// The canvas model backs the free-form editor, which is more general than the
// per-slot artboard layouts: any number of elements, rotation, grouping and
// z-order. Elements live in a flat table keyed by id; group membership is a
// one-directional child→group mapping maintained by the engine's arena, never
// stored on both sides.

// CanvasScene is the free-form editing surface stored alongside the
// artboards. Elements are keyed by id.
type CanvasScene struct {
	Elements map[string]CanvasElement `json:"elements"`
}

// Clone returns a structurally independent copy of the scene.
func (s CanvasScene) Clone() CanvasScene {
	out := CanvasScene{}
	if s.Elements != nil {
		out.Elements = make(map[string]CanvasElement, len(s.Elements))
		for id, el := range s.Elements {
			el.Data = append([]byte(nil), el.Data...)
			out.Elements[id] = el
		}
	}
	return out
}

// ElementType tags the canvas element union.
type ElementType string

const (
	ElementText     ElementType = "text"
	ElementImage    ElementType = "image"
	ElementGradient ElementType = "gradient"
	ElementShape    ElementType = "shape"
	ElementGroup    ElementType = "group"
)

// CanvasElement is one element on the free-form canvas. The shared transform
// fields apply to every type; Data carries the type-specific payload
// (TextPayload, ImagePayload, ...).
type CanvasElement struct {
	ID       string          `json:"id"`
	Type     ElementType     `json:"type"`
	GroupID  string          `json:"groupId,omitempty"` // owning group, empty if top-level
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Rotation float64         `json:"rotation"` // degrees, clockwise
	ScaleX   float64         `json:"scaleX"`
	ScaleY   float64         `json:"scaleY"`
	Opacity  float64         `json:"opacity"`
	Visible  bool            `json:"visible"`
	Z        int             `json:"z"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type TextPayload struct {
	Text       string  `json:"text"`
	FontFamily string  `json:"fontFamily"`
	FontWeight int     `json:"fontWeight"`
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
}

type ImagePayload struct {
	AssetID string `json:"assetId"`
}

type GradientPayload struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Angle float64 `json:"angle"`
}

type ShapePayload struct {
	Shape  string `json:"shape"` // "rect" or "ellipse"
	Fill   string `json:"fill"`
	Stroke string `json:"stroke"`
}

// GroupPayload lists the member element ids in z-order. The members' own
// GroupID fields are derived from this list on load and on every group
// mutation; the list is the single source of truth.
type GroupPayload struct {
	Children []string `json:"children"`
}
