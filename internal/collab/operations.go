package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/adboard/adboard/backend-go/internal/document"
	"github.com/adboard/adboard/backend-go/internal/engine"
)

// DocumentState holds the authoritative banner document for one room. Every
// operation mutates the document under the lock; reads snapshot under RLock.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *document.BannerDocument
	serverSeq int64
	dirty     bool
}

// NewDocumentState creates a new document state from an initial document.
func NewDocumentState(doc *document.BannerDocument) *DocumentState {
	return &DocumentState{doc: doc}
}

// Snapshot returns the current document serialized to JSON plus the server
// sequence it corresponds to.
func (ds *DocumentState) Snapshot() (json.RawMessage, int64, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	data, err := json.Marshal(ds.doc)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal document: %w", err)
	}
	return data, ds.serverSeq, nil
}

// TakeDirty reports whether the document changed since the last call and, if
// so, returns a clone safe to persist outside the lock.
func (ds *DocumentState) TakeDirty() (*document.BannerDocument, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if !ds.dirty {
		return nil, false
	}
	ds.dirty = false
	return ds.doc.Clone(), true
}

// ApplyOperation applies an operation to the document and returns the server
// sequence assigned to it.
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.dirty = true
	return ds.serverSeq, nil
}

func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case OpLayoutUpdate:
		return ds.applyLayoutUpdate(op)
	case OpLayoutAlign:
		return ds.applyLayoutAlign(op)
	case OpBoardTidy:
		return ds.applyBoardTidy(op)
	case OpBoardMove:
		return ds.applyBoardMove(op)
	case OpBoardBackground:
		return ds.applyBoardBackground(op)
	case OpStyleUpdate:
		return ds.applyStyleUpdate(op)
	case OpTextUpdate:
		return ds.applyTextUpdate(op)
	case OpProjectRename:
		return ds.applyProjectRename(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

type layoutChanges struct {
	X        *float64        `json:"x"`
	Y        *float64        `json:"y"`
	Width    *float64        `json:"width"`
	Height   json.RawMessage `json:"height"` // number or null
	FontSize *float64        `json:"fontSize"`
	HAlign   *string         `json:"hAlign"`
	VAlign   *string         `json:"vAlign"`
}

func (ds *DocumentState) applyLayoutUpdate(op Operation) error {
	board, ok := ds.doc.BoardByID(op.BoardID)
	if !ok {
		return fmt.Errorf("board not found: %s", op.BoardID)
	}
	kind := document.ElementKind(op.Element)
	layout, ok := board.Layout(kind)
	if !ok {
		return fmt.Errorf("element not found: %s", op.Element)
	}

	var changes layoutChanges
	if err := json.Unmarshal(op.Changes, &changes); err != nil {
		return fmt.Errorf("invalid layout changes: %w", err)
	}

	if changes.X != nil {
		layout.X = *changes.X
	}
	if changes.Y != nil {
		layout.Y = *changes.Y
	}
	if changes.Width != nil {
		layout.Width = max(*changes.Width, engine.MinElementSize)
	}
	if len(changes.Height) > 0 {
		var h document.Height
		if err := h.UnmarshalJSON(changes.Height); err != nil {
			return fmt.Errorf("invalid height: %w", err)
		}
		// Flowing text derives its height from the copy; a stored explicit
		// height would go stale on the next font or width edit. Null switches
		// flowing text back to derived and has no meaning elsewhere.
		if v, explicit := h.Explicit(); explicit {
			if !kind.IsFlowingText() {
				layout.Height = document.ExplicitHeight(max(v, engine.MinElementSize))
			}
		} else if kind.IsFlowingText() {
			layout.Height = document.DerivedHeight()
		}
	}
	if changes.FontSize != nil {
		size := *changes.FontSize
		if size != 0 && size < engine.MinFontSize {
			size = engine.MinFontSize
		}
		layout.FontSize = size
	}
	if changes.HAlign != nil {
		layout.HAlign = document.HAlign(*changes.HAlign)
	}
	if changes.VAlign != nil {
		layout.VAlign = document.VAlign(*changes.VAlign)
	}

	// Keep the element on the board regardless of what the client sent.
	bounds := engine.Rect{Width: board.Width, Height: board.Height}
	r := engine.Rect{X: layout.X, Y: layout.Y, Width: layout.Width, Height: engine.ElementHeight(ds.doc, kind, layout)}
	r = r.ClampInto(bounds)
	layout.X = r.X
	layout.Y = r.Y

	board.SetLayout(kind, layout)
	return nil
}

func (ds *DocumentState) applyLayoutAlign(op Operation) error {
	switch op.Axis {
	case "horizontal":
		keyword := document.HAlign(op.Alignment)
		if op.Group {
			if !engine.AlignGroupH(ds.doc, op.BoardID, keyword) {
				return fmt.Errorf("board not found or empty: %s", op.BoardID)
			}
			return nil
		}
		if !engine.AlignElementH(ds.doc, op.BoardID, document.ElementKind(op.Element), keyword) {
			return fmt.Errorf("cannot align %s on board %s", op.Element, op.BoardID)
		}
		return nil
	case "vertical":
		keyword := document.VAlign(op.Alignment)
		if op.Group {
			if !engine.AlignGroupV(ds.doc, op.BoardID, keyword) {
				return fmt.Errorf("board not found or empty: %s", op.BoardID)
			}
			return nil
		}
		if !engine.AlignElementV(ds.doc, op.BoardID, document.ElementKind(op.Element), keyword) {
			return fmt.Errorf("cannot align %s on board %s", op.Element, op.BoardID)
		}
		return nil
	default:
		return fmt.Errorf("unknown align axis: %s", op.Axis)
	}
}

func (ds *DocumentState) applyBoardTidy(op Operation) error {
	if !engine.TidyUp(ds.doc, op.BoardID) {
		return fmt.Errorf("board not found or empty: %s", op.BoardID)
	}
	return nil
}

func (ds *DocumentState) applyBoardMove(op Operation) error {
	if !engine.MoveArtboard(ds.doc, op.BoardIndex, engine.MoveDirection(op.Direction)) {
		return fmt.Errorf("cannot move board %d %s", op.BoardIndex, op.Direction)
	}
	return nil
}

func (ds *DocumentState) applyBoardBackground(op Operation) error {
	board, ok := ds.doc.BoardByID(op.BoardID)
	if !ok {
		return fmt.Errorf("board not found: %s", op.BoardID)
	}
	board.BackgroundAssetID = op.AssetID
	board.BackgroundOffset = document.Point{X: op.OffsetX, Y: op.OffsetY}
	return nil
}

type styleChanges struct {
	FontFamily    *string  `json:"fontFamily"`
	FontWeight    *int     `json:"fontWeight"`
	FontSize      *float64 `json:"fontSize"`
	TextColor     *string  `json:"textColor"`
	AccentColor   *string  `json:"accentColor"`
	Background    *string  `json:"background"`
	GradientFrom  *string  `json:"gradientFrom"`
	GradientTo    *string  `json:"gradientTo"`
	GradientAngle *float64 `json:"gradientAngle"`
	LogoAssetID   *string  `json:"logoAssetId"`
	Palette       []string `json:"palette"`
}

func (ds *DocumentState) applyStyleUpdate(op Operation) error {
	var changes styleChanges
	if err := json.Unmarshal(op.Changes, &changes); err != nil {
		return fmt.Errorf("invalid style changes: %w", err)
	}

	style := &ds.doc.Style
	if changes.FontFamily != nil {
		style.FontFamily = *changes.FontFamily
	}
	if changes.FontWeight != nil {
		style.FontWeight = *changes.FontWeight
	}
	if changes.FontSize != nil {
		style.FontSize = max(*changes.FontSize, engine.MinFontSize)
	}
	if changes.TextColor != nil {
		style.TextColor = *changes.TextColor
	}
	if changes.AccentColor != nil {
		style.AccentColor = *changes.AccentColor
	}
	if changes.Background != nil {
		style.Background = *changes.Background
	}
	if changes.GradientFrom != nil {
		style.GradientFrom = *changes.GradientFrom
	}
	if changes.GradientTo != nil {
		style.GradientTo = *changes.GradientTo
	}
	if changes.GradientAngle != nil {
		style.GradientAngle = *changes.GradientAngle
	}
	if changes.LogoAssetID != nil {
		style.LogoAssetID = *changes.LogoAssetID
	}
	if changes.Palette != nil {
		style.Palette = append([]string(nil), changes.Palette...)
	}
	return nil
}

func (ds *DocumentState) applyTextUpdate(op Operation) error {
	if op.Text == nil {
		return fmt.Errorf("text.update requires a text value")
	}
	switch document.ElementKind(op.Element) {
	case document.KindHeadline:
		ds.doc.Style.Texts.Headline = *op.Text
	case document.KindSubheadline:
		ds.doc.Style.Texts.Subheadline = *op.Text
	case document.KindCTA:
		ds.doc.Style.Texts.CTA = *op.Text
	default:
		return fmt.Errorf("element has no text slot: %s", op.Element)
	}
	return nil
}

func (ds *DocumentState) applyProjectRename(op Operation) error {
	if op.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	ds.doc.Project.Name = op.Name
	return nil
}

// GetServerTimestamp returns the current server timestamp.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
