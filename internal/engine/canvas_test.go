package engine

import (
	"encoding/json"
	"testing"

	"github.com/adboard/adboard/backend-go/internal/document"
)

func testScene() *document.CanvasScene {
	scene := &document.CanvasScene{Elements: map[string]document.CanvasElement{}}
	for i, id := range []string{"el_a", "el_b", "el_c"} {
		scene.Elements[id] = document.CanvasElement{
			ID: id, Type: document.ElementShape,
			X: float64(i * 100), Y: 0, Width: 50, Height: 50,
			ScaleX: 1, ScaleY: 1, Opacity: 1, Visible: true, Z: i,
		}
	}
	return scene
}

func TestArenaGrouping(t *testing.T) {
	t.Run("Group builds one-directional membership", func(t *testing.T) {
		arena := NewArena(testScene())
		if !arena.Group("grp_1", []string{"el_a", "el_b"}) {
			t.Fatal("group failed")
		}

		for _, id := range []string{"el_a", "el_b"} {
			g, ok := arena.GroupOf(id)
			if !ok || g != "grp_1" {
				t.Errorf("%s: group = %q, want grp_1", id, g)
			}
			el, _ := arena.Get(id)
			if el.GroupID != "grp_1" {
				t.Errorf("%s: derived GroupID = %q", id, el.GroupID)
			}
		}
		if _, ok := arena.GroupOf("el_c"); ok {
			t.Error("el_c must not be grouped")
		}

		group, ok := arena.Get("grp_1")
		if !ok || group.Type != document.ElementGroup {
			t.Fatal("group element missing")
		}
		// Group bounds are the union of members: el_a(0..50) and el_b(100..150).
		assertFloat(t, "group x", group.X, 0)
		assertFloat(t, "group width", group.Width, 150)
	})

	t.Run("Fewer than two members refused", func(t *testing.T) {
		arena := NewArena(testScene())
		if arena.Group("grp_1", []string{"el_a"}) {
			t.Error("single-member group must be refused")
		}
		if arena.Group("grp_1", []string{"el_a", "missing"}) {
			t.Error("unknown ids must not count toward membership")
		}
	})

	t.Run("Already grouped elements skipped", func(t *testing.T) {
		arena := NewArena(testScene())
		arena.Group("grp_1", []string{"el_a", "el_b"})
		if arena.Group("grp_2", []string{"el_a", "el_c"}) {
			t.Error("el_a is already grouped; grp_2 must be refused")
		}
	})

	t.Run("Ungroup promotes members", func(t *testing.T) {
		arena := NewArena(testScene())
		arena.Group("grp_1", []string{"el_a", "el_b"})
		if !arena.Ungroup("grp_1") {
			t.Fatal("ungroup failed")
		}
		if _, ok := arena.Get("grp_1"); ok {
			t.Error("group element must be removed")
		}
		if _, ok := arena.GroupOf("el_a"); ok {
			t.Error("membership must be cleared")
		}
		if _, ok := arena.Get("el_a"); !ok {
			t.Error("members must survive ungrouping")
		}
	})

	t.Run("Deleting a group ungroups children first", func(t *testing.T) {
		arena := NewArena(testScene())
		arena.Group("grp_1", []string{"el_a", "el_b"})
		arena.Delete("grp_1")
		if _, ok := arena.Get("el_a"); !ok {
			t.Error("deleting a group must not delete its children")
		}
		el, _ := arena.Get("el_a")
		if el.GroupID != "" {
			t.Error("children must be promoted to top level")
		}
	})

	t.Run("Membership survives a JSON round trip", func(t *testing.T) {
		arena := NewArena(testScene())
		arena.Group("grp_1", []string{"el_a", "el_b"})

		data, err := json.Marshal(arena.scene)
		if err != nil {
			t.Fatal(err)
		}
		var loaded document.CanvasScene
		if err := json.Unmarshal(data, &loaded); err != nil {
			t.Fatal(err)
		}
		reloaded := NewArena(&loaded)
		if got := reloaded.Members("grp_1"); len(got) != 2 {
			t.Fatalf("members = %v, want 2 entries", got)
		}
		if g, ok := reloaded.GroupOf("el_b"); !ok || g != "grp_1" {
			t.Error("membership index not rebuilt on load")
		}
	})
}

func TestArenaOrderedAndHitTest(t *testing.T) {
	arena := NewArena(testScene())

	t.Run("Ordered by z", func(t *testing.T) {
		ordered := arena.Ordered()
		for i := 1; i < len(ordered); i++ {
			if ordered[i-1].Z > ordered[i].Z {
				t.Fatal("not z-sorted")
			}
		}
	})

	t.Run("Topmost element wins", func(t *testing.T) {
		// Stack el_c on top of el_a.
		el, _ := arena.Get("el_c")
		el.X = 0
		arena.Put(el)
		if got := arena.HitTest(25, 25); got != "el_c" {
			t.Errorf("hit = %q, want el_c (higher z)", got)
		}
	})

	t.Run("Invisible elements are skipped", func(t *testing.T) {
		el, _ := arena.Get("el_c")
		el.Visible = false
		arena.Put(el)
		if got := arena.HitTest(25, 25); got != "el_a" {
			t.Errorf("hit = %q, want el_a", got)
		}
	})

	t.Run("Empty canvas area misses", func(t *testing.T) {
		if got := arena.HitTest(-500, -500); got != "" {
			t.Errorf("hit = %q, want none", got)
		}
	})
}

func TestElementBoundsRotation(t *testing.T) {
	el := document.CanvasElement{
		ID: "el_r", Type: document.ElementShape,
		X: 100, Y: 100, Width: 40, Height: 20,
		Rotation: 90, ScaleX: 1, ScaleY: 1, Visible: true,
	}
	b := ElementBounds(&el)

	// A 90° turn swaps the extents around the unchanged center (120, 110).
	assertFloat(t, "width", b.Width, 20)
	assertFloat(t, "height", b.Height, 40)
	cx, cy := b.Center()
	assertFloat(t, "cx", cx, 120)
	assertFloat(t, "cy", cy, 110)
}

func TestHitTestRotated(t *testing.T) {
	scene := &document.CanvasScene{Elements: map[string]document.CanvasElement{
		"el_r": {
			ID: "el_r", Type: document.ElementShape,
			X: 100, Y: 100, Width: 40, Height: 20,
			Rotation: 90, ScaleX: 1, ScaleY: 1, Visible: true,
		},
	}}
	arena := NewArena(scene)

	// (120, 125) is inside the rotated rect but outside the unrotated one.
	if got := arena.HitTest(120, 125); got != "el_r" {
		t.Errorf("hit = %q, want el_r", got)
	}
	// (105, 110) is inside the unrotated rect but outside the rotated one.
	if got := arena.HitTest(105, 110); got != "" {
		t.Errorf("hit = %q, want none", got)
	}
}
