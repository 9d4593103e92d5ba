package engine

import (
	"encoding/json"
	"sort"

	"github.com/adboard/adboard/backend-go/internal/document"
)

// Arena is the engine's view over the document's canvas scene: a flat element
// table plus a derived child→group index. The index is rebuilt from the group
// payloads on every group mutation, so membership has a single source of
// truth and the two sides can never drift apart.
type Arena struct {
	scene      *document.CanvasScene
	childGroup map[string]string
}

// NewArena wraps a canvas scene. The membership index is built immediately so
// stale GroupID fields from a loaded document are corrected on entry.
func NewArena(scene *document.CanvasScene) *Arena {
	a := &Arena{scene: scene}
	a.rebuildMembership()
	return a
}

// Get returns the element with the given id.
func (a *Arena) Get(id string) (document.CanvasElement, bool) {
	el, ok := a.scene.Elements[id]
	return el, ok
}

// Put stores an element, overwriting any existing one with the same id.
func (a *Arena) Put(el document.CanvasElement) {
	if a.scene.Elements == nil {
		a.scene.Elements = make(map[string]document.CanvasElement)
	}
	a.scene.Elements[el.ID] = el
	if el.Type == document.ElementGroup {
		a.rebuildMembership()
	}
}

// Delete removes an element. Deleting a group ungroups its children first;
// they are promoted to top level rather than cascade-deleted, so a stray
// group delete never silently destroys content.
func (a *Arena) Delete(id string) {
	el, ok := a.scene.Elements[id]
	if !ok {
		return
	}
	if el.Type == document.ElementGroup {
		a.Ungroup(id)
	}
	delete(a.scene.Elements, id)
	a.rebuildMembership()
}

// Group collects the given elements into a new group element with the given
// id. Elements already in a group are skipped. Returns false when fewer than
// two elements remain to group.
func (a *Arena) Group(groupID string, memberIDs []string) bool {
	var members []string
	for _, id := range memberIDs {
		el, ok := a.scene.Elements[id]
		if !ok || el.Type == document.ElementGroup {
			continue
		}
		if _, grouped := a.childGroup[id]; grouped {
			continue
		}
		members = append(members, id)
	}
	if len(members) < 2 {
		return false
	}

	bounds := a.boundsOf(members)
	payload, _ := json.Marshal(document.GroupPayload{Children: members})
	a.Put(document.CanvasElement{
		ID:      groupID,
		Type:    document.ElementGroup,
		X:       bounds.X,
		Y:       bounds.Y,
		Width:   bounds.Width,
		Height:  bounds.Height,
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
		Visible: true,
		Z:       a.maxZ() + 1,
		Data:    payload,
	})
	return true
}

// Ungroup dissolves a group, promoting its members to top level. The group
// element itself is removed.
func (a *Arena) Ungroup(groupID string) bool {
	el, ok := a.scene.Elements[groupID]
	if !ok || el.Type != document.ElementGroup {
		return false
	}
	delete(a.scene.Elements, groupID)
	a.rebuildMembership()
	return true
}

// GroupOf returns the id of the group containing the element, if any.
func (a *Arena) GroupOf(id string) (string, bool) {
	g, ok := a.childGroup[id]
	return g, ok
}

// Members returns the child ids of a group in stored order.
func (a *Arena) Members(groupID string) []string {
	el, ok := a.scene.Elements[groupID]
	if !ok || el.Type != document.ElementGroup {
		return nil
	}
	var payload document.GroupPayload
	if err := json.Unmarshal(el.Data, &payload); err != nil {
		return nil
	}
	var out []string
	for _, id := range payload.Children {
		if _, ok := a.scene.Elements[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Ordered returns every element sorted by z, then id for equal z, so callers
// iterate deterministically.
func (a *Arena) Ordered() []document.CanvasElement {
	out := make([]document.CanvasElement, 0, len(a.scene.Elements))
	for _, el := range a.scene.Elements {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SelectionBounds returns the union of the rotated world bounds of the given
// elements. Unknown ids are skipped.
func (a *Arena) SelectionBounds(ids []string) Rect {
	var union Rect
	any := false
	for _, id := range ids {
		el, ok := a.scene.Elements[id]
		if !ok {
			continue
		}
		b := ElementBounds(&el)
		if !any {
			union = b
			any = true
		} else {
			union = union.Union(b)
		}
	}
	return union
}

// HitTest returns the id of the topmost visible element containing the point,
// or empty string. Rotated elements are tested in their local space via the
// inverse transform.
func (a *Arena) HitTest(x, y float64) string {
	ordered := a.Ordered()
	for i := len(ordered) - 1; i >= 0; i-- {
		el := ordered[i]
		if !el.Visible || el.Type == document.ElementGroup {
			continue
		}
		lx, ly := ElementMatrix(&el).Invert().TransformPoint(x, y)
		if (Rect{Width: el.Width, Height: el.Height}).Contains(lx, ly) {
			return el.ID
		}
	}
	return ""
}

func (a *Arena) boundsOf(ids []string) Rect {
	return a.SelectionBounds(ids)
}

func (a *Arena) maxZ() int {
	z := 0
	for _, el := range a.scene.Elements {
		if el.Z > z {
			z = el.Z
		}
	}
	return z
}

// rebuildMembership recomputes the child→group index from group payloads and
// rewrites each element's derived GroupID to match.
func (a *Arena) rebuildMembership() {
	a.childGroup = make(map[string]string)
	for id, el := range a.scene.Elements {
		if el.Type != document.ElementGroup {
			continue
		}
		var payload document.GroupPayload
		if err := json.Unmarshal(el.Data, &payload); err != nil {
			continue
		}
		for _, child := range payload.Children {
			if _, ok := a.scene.Elements[child]; ok {
				a.childGroup[child] = id
			}
		}
	}
	for id, el := range a.scene.Elements {
		group := a.childGroup[id]
		if el.GroupID != group {
			el.GroupID = group
			a.scene.Elements[id] = el
		}
	}
}
