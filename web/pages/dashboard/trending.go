package dashboard

import (
	"html"
	"net/url"

	"konvyshop/models"

	"github.com/rohanthewiz/element"
)

// TrendingChips are recent popular search terms. Clicking one fills it into
// the first blank row.
type TrendingChips struct {
	Terms []models.TermCount
}

func (t TrendingChips) Render(b *element.Builder) (x any) {
	if len(t.Terms) == 0 {
		return
	}
	b.Div("class", "trending", "id", "trending").R(
		b.Span().T("🔥 Trending:"),
		element.ForEach(t.Terms, func(tc models.TermCount) {
			b.Button("type", "button", "class", "trending-chip",
				"hx-post", "/rows/fill?term="+url.QueryEscape(tc.Term),
				"hx-target", "#items-container",
				"hx-swap", "outerHTML").T(html.EscapeString(tc.Term))
		}),
	)
	return
}
