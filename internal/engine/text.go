package engine

import (
	"strings"

	"github.com/adboard/adboard/backend-go/internal/document"
)

// LineHeightMultiplier converts a font size into a rendered line height.
const LineHeightMultiplier = 1.2

// EstimateHeight computes the rendered height of an element's text block.
// An explicit layout height always wins; otherwise the text is greedily
// word-wrapped into the layout width and the height is derived from the line
// count. The function is pure: alignment and tidy-up call it repeatedly and
// must never observe side effects.
func EstimateHeight(text string, layout document.Layout, style document.StyleSettings) float64 {
	if v, ok := layout.Height.Explicit(); ok {
		return v
	}

	font := layout.FontSize
	if font <= 0 {
		font = style.FontSize
	}

	lines := wrapLineCount(text, layout.Width, font, style.FontWeight)
	return float64(lines) * font * LineHeightMultiplier
}

// wrapLineCount counts the lines of a greedy word wrap. A word wider than the
// container still occupies a single line; wrapping never splits words.
func wrapLineCount(text string, width, font float64, weight int) int {
	total := 0
	for _, paragraph := range strings.Split(text, "\n") {
		total += wrapParagraph(paragraph, width, font, weight)
	}
	if total < 1 {
		total = 1
	}
	return total
}

func wrapParagraph(paragraph string, width, font float64, weight int) int {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return 1
	}

	space := runeAdvance(' ', font, weight)
	lines := 1
	lineWidth := 0.0
	for _, word := range words {
		w := stringAdvance(word, font, weight)
		switch {
		case lineWidth == 0:
			lineWidth = w
		case lineWidth+space+w <= width:
			lineWidth += space + w
		default:
			lines++
			lineWidth = w
		}
	}
	return lines
}

// stringAdvance estimates the rendered width of s without consulting real
// font metrics. The per-rune factors approximate a humanist sans at the
// weights the editor offers; they only need to be consistent, not exact.
func stringAdvance(s string, font float64, weight int) float64 {
	total := 0.0
	for _, r := range s {
		total += runeAdvance(r, font, weight)
	}
	return total
}

func runeAdvance(r rune, font float64, weight int) float64 {
	var factor float64
	switch {
	case strings.ContainsRune("iljft.,:;'|!", r):
		factor = 0.30
	case strings.ContainsRune("mwMW@", r):
		factor = 0.85
	case r == ' ':
		factor = 0.28
	case r >= 'A' && r <= 'Z':
		factor = 0.66
	case r >= '0' && r <= '9':
		factor = 0.60
	default:
		factor = 0.52
	}
	if weight >= 600 {
		factor *= 1.06
	}
	return factor * font
}
