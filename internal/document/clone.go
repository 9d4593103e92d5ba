package document

// Clone returns a structurally independent deep copy of the document.
// History snapshots are clones, so mutating the live document after a commit
// must never reach into a stored snapshot.
func (d *BannerDocument) Clone() *BannerDocument {
	out := *d

	out.Style.Palette = append([]string(nil), d.Style.Palette...)

	out.Boards = make([]Artboard, len(d.Boards))
	for i := range d.Boards {
		out.Boards[i] = d.Boards[i].Clone()
	}

	out.Canvas = d.Canvas.Clone()
	return &out
}

// Clone returns a deep copy of the artboard.
func (a Artboard) Clone() Artboard {
	out := a
	if a.Layouts != nil {
		out.Layouts = make(map[ElementKind]Layout, len(a.Layouts))
		for k, l := range a.Layouts {
			out.Layouts[k] = l
		}
	}
	return out
}
