package document

// BoardSize is one entry in the fixed artboard size catalogue.
type BoardSize struct {
	Name   string
	Width  float64
	Height float64
}

// BoardCatalogue lists the banner sizes every new document is created with.
// Artboard grid position is catalogue order; boards are reordered by move
// commands but never added or removed while editing.
var BoardCatalogue = []BoardSize{
	{Name: "Medium Rectangle", Width: 300, Height: 250},
	{Name: "Leaderboard", Width: 728, Height: 90},
	{Name: "Wide Skyscraper", Width: 160, Height: 600},
	{Name: "Half Page", Width: 300, Height: 600},
	{Name: "Mobile Banner", Width: 320, Height: 50},
	{Name: "Billboard", Width: 970, Height: 250},
}

// NewDefaultDocument creates the starting document for a new project: one
// artboard per catalogue size, seeded with stacked text layouts and default
// copy. newBoardID supplies artboard ids so the document package stays free
// of id-generation concerns.
func NewDefaultDocument(projectID, projectName string, newBoardID func() string) *BannerDocument {
	doc := &BannerDocument{
		Project: Project{
			ID:      projectID,
			Name:    projectName,
			Version: 1,
		},
		Style: StyleSettings{
			FontFamily:    "Inter",
			FontWeight:    400,
			FontSize:      16,
			TextColor:     "#1a1a2e",
			AccentColor:   "#e94560",
			Background:    "#ffffff",
			GradientFrom:  "#ffffff",
			GradientTo:    "#ffffff",
			GradientAngle: 0,
			Texts: TextSet{
				Headline:    "Your headline here",
				Subheadline: "Supporting copy that explains the offer",
				CTA:         "Learn more",
			},
			Palette: []string{"#1a1a2e", "#e94560", "#ffffff"},
		},
	}

	for _, size := range BoardCatalogue {
		doc.Boards = append(doc.Boards, newArtboard(newBoardID(), size))
	}
	return doc
}

func newArtboard(id string, size BoardSize) Artboard {
	margin := 16.0
	textWidth := size.Width - 2*margin

	board := Artboard{
		ID:     id,
		Name:   size.Name,
		Width:  size.Width,
		Height: size.Height,
	}

	// Text slots stack from the top; heights stay derived so font and copy
	// edits re-flow automatically. The logo slot is only placed once an asset
	// exists, so it is absent here.
	board.SetLayout(KindHeadline, Layout{
		X: margin, Y: margin,
		Width:  textWidth,
		Height: DerivedHeight(),
		HAlign: HAlignLeft, VAlign: VAlignTop,
	})
	board.SetLayout(KindSubheadline, Layout{
		X: margin, Y: margin + 40,
		Width:  textWidth,
		Height: DerivedHeight(),
		HAlign: HAlignLeft, VAlign: VAlignTop,
	})
	board.SetLayout(KindCTA, Layout{
		X: margin, Y: size.Height - margin - 32,
		Width:    120,
		Height:   DerivedHeight(),
		FontSize: 14,
		HAlign:   HAlignLeft, VAlign: VAlignTop,
	})
	return board
}
