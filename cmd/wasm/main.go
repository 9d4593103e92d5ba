//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/adboard/adboard/backend-go/internal/document"
	"github.com/adboard/adboard/backend-go/internal/engine"
	"github.com/adboard/adboard/backend-go/internal/typeid"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	adboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	adboardEngine.Set("loadDocument", js.FuncOf(loadDocument))
	adboardEngine.Set("loadDefaultDocument", js.FuncOf(loadDefaultDocument))
	adboardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	adboardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	adboardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	adboardEngine.Set("cancelGesture", js.FuncOf(cancelGesture))
	adboardEngine.Set("canvasPointerDown", js.FuncOf(canvasPointerDown))
	adboardEngine.Set("updateLayout", js.FuncOf(updateLayout))
	adboardEngine.Set("commit", js.FuncOf(commit))
	adboardEngine.Set("alignElement", js.FuncOf(alignElement))
	adboardEngine.Set("alignGroup", js.FuncOf(alignGroup))
	adboardEngine.Set("tidyUp", js.FuncOf(tidyUp))
	adboardEngine.Set("moveBoard", js.FuncOf(moveBoard))
	adboardEngine.Set("undo", js.FuncOf(undo))
	adboardEngine.Set("redo", js.FuncOf(redo))
	adboardEngine.Set("selectBoard", js.FuncOf(selectBoard))
	adboardEngine.Set("setCanvasSelection", js.FuncOf(setCanvasSelection))
	adboardEngine.Set("setGuides", js.FuncOf(setGuides))
	adboardEngine.Set("setSnapConfig", js.FuncOf(setSnapConfig))
	adboardEngine.Set("groupSelection", js.FuncOf(groupSelection))
	adboardEngine.Set("ungroupElement", js.FuncOf(ungroupElement))
	adboardEngine.Set("deleteElement", js.FuncOf(deleteElement))

	// --- Queries (frontend ← backend) ---
	adboardEngine.Set("getDocument", js.FuncOf(getDocument))
	adboardEngine.Set("getHistoryState", js.FuncOf(getHistoryState))
	adboardEngine.Set("getGestureState", js.FuncOf(getGestureState))
	adboardEngine.Set("getSelection", js.FuncOf(getSelection))
	adboardEngine.Set("estimateElementHeight", js.FuncOf(estimateElementHeight))
	adboardEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	adboardEngine.Set("hitTest", js.FuncOf(hitTest))

	// Register on global scope
	js.Global().Set("adboardEngine", adboardEngine)

	// Signal that WASM is ready
	js.Global().Set("adboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	jsonData := args[0].String()
	if err := eng.LoadDocument(jsonData); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadDefaultDocument(this js.Value, args []js.Value) interface{} {
	projectID := "proj_playground"
	name := "Untitled"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		projectID = args[0].String()
	}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		name = args[1].String()
	}

	eng.LoadDefaultDocument(projectID, name, typeid.NewBoardID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf(false)
	}
	boardID := args[0].String()
	kind := document.ElementKind(args[1].String())
	handle := engine.Handle(args[2].String())
	x := args[3].Float()
	y := args[4].Float()
	return js.ValueOf(eng.PointerDown(boardID, kind, handle, x, y))
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.PointerMove(args[0].Float(), args[1].Float()))
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	eng.PointerUp()
	return nil
}

func cancelGesture(this js.Value, args []js.Value) interface{} {
	eng.CancelGesture()
	return nil
}

func canvasPointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(false)
	}
	elementID := args[0].String()
	handle := engine.Handle(args[1].String())
	x := args[2].Float()
	y := args[3].Float()
	return js.ValueOf(eng.CanvasPointerDown(elementID, handle, x, y))
}

func updateLayout(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(false)
	}
	boardID := args[0].String()
	kind := document.ElementKind(args[1].String())

	var patch engine.LayoutPatch
	if err := json.Unmarshal([]byte(args[2].String()), &patch); err != nil {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.UpdateLayout(boardID, kind, patch))
}

func commit(this js.Value, args []js.Value) interface{} {
	eng.Commit()
	return nil
}

func alignElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return js.ValueOf(false)
	}
	boardID := args[0].String()
	kind := document.ElementKind(args[1].String())
	axis := args[2].String()
	keyword := args[3].String()

	if axis == "horizontal" {
		return js.ValueOf(eng.AlignElementH(boardID, kind, document.HAlign(keyword)))
	}
	return js.ValueOf(eng.AlignElementV(boardID, kind, document.VAlign(keyword)))
}

func alignGroup(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(false)
	}
	boardID := args[0].String() // empty string aligns every board
	axis := args[1].String()
	keyword := args[2].String()

	if axis == "horizontal" {
		return js.ValueOf(eng.AlignGroupH(boardID, document.HAlign(keyword)))
	}
	return js.ValueOf(eng.AlignGroupV(boardID, document.VAlign(keyword)))
}

func tidyUp(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.TidyUp())
}

func moveBoard(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.MoveBoard(engine.MoveDirection(args[0].String())))
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

func selectBoard(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SelectBoard(args[0].String())
	return nil
}

func setCanvasSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetCanvasSelection(nil)
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject {
		eng.SetCanvasSelection(nil)
		return nil
	}

	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetCanvasSelection(ids)
	return nil
}

func setGuides(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	boardID := args[0].String()
	var guides []engine.Guide
	if err := json.Unmarshal([]byte(args[1].String()), &guides); err != nil {
		return nil
	}
	eng.SetGuides(boardID, guides)
	return nil
}

func setSnapConfig(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	var cfg engine.SnapConfig
	if err := json.Unmarshal([]byte(args[0].String()), &cfg); err != nil {
		return nil
	}
	eng.SetSnapConfig(cfg)
	return nil
}

func groupSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GroupSelection(typeid.NewGroupID()))
}

func ungroupElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.UngroupElement(args[0].String()))
}

func deleteElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.DeleteElement(args[0].String()))
}

// --- Query Handlers ---

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getHistoryState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetHistoryState())
}

func getGestureState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetGestureState())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func estimateElementHeight(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(0)
	}
	boardID := args[0].String()
	kind := document.ElementKind(args[1].String())
	return js.ValueOf(eng.EstimateElementHeight(boardID, kind))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTestCanvas(x, y))
}
