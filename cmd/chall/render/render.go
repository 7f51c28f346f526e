package render

import "chall/internal/present"

// Renderer turns presenter output into terminal text.
type Renderer interface {
	present.Markup
	RenderCard(card present.Card) string
	RenderSummary(summary present.Summary) string
}
