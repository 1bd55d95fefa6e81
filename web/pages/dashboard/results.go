package dashboard

import (
	"fmt"
	"html"
	"net/url"
	"strconv"

	"konvyshop/models"
	"konvyshop/search"

	"github.com/rohanthewiz/element"
)

// Results is the content of #search-results for one search outcome.
type Results struct {
	Outcome  search.Outcome
	LoggedIn bool
	// IsFavorite reports the visible favorite state of an account
	IsFavorite func(itemID int64) bool
}

func (r Results) Render(b *element.Builder) (x any) {
	switch r.Outcome.Status {
	case search.Loading:
		// Nothing searched yet; the htmx indicator covers in-flight searches
		return
	case search.Failed:
		element.RenderComponents(b, EmptyState{Icon: "❌", Text: search.FailedHeadline, Hint: r.Outcome.Message})
	case search.Empty:
		element.RenderComponents(b, EmptyState{Icon: "😕", Text: search.EmptyText, Hint: search.EmptyHint})
	case search.Results:
		b.DivClass("results-grid").R(
			element.ForEach(r.Outcome.Accounts, func(acc models.AccountResult) {
				b.Wrap(func() {
					element.RenderComponents(b, AccountCard{
						Account:  acc,
						LoggedIn: r.LoggedIn,
						Favorite: r.IsFavorite != nil && r.IsFavorite(acc.ItemID),
					})
				})
			}),
		)
	}
	element.RenderComponents(b, NotFoundList{Items: r.Outcome.NotFound})
	return
}

// EmptyState is the icon/text/hint block used for empty and failed searches.
type EmptyState struct {
	Icon, Text, Hint string
}

func (e EmptyState) Render(b *element.Builder) (x any) {
	b.DivClass("empty-state").R(
		b.DivClass("empty-state-icon").T(e.Icon),
		b.DivClass("empty-state-text").T(html.EscapeString(e.Text)),
		b.DivClass("empty-state-hint").T(html.EscapeString(e.Hint)),
	)
	return
}

// Loading is the indicator shown while a search is in flight.
type Loading struct{}

func (Loading) Render(b *element.Builder) (x any) {
	b.Div("id", "search-loading", "class", "loading-state").R(
		b.DivClass("loading-spinner").R(),
		b.DivClass("loading-text").T(search.LoadingText),
	)
	return
}

// NotFoundList lists the terms the marketplace could not resolve. A
// suggestion can be clicked to fill it into the form.
type NotFoundList struct {
	Items []search.NotFound
}

func (n NotFoundList) Render(b *element.Builder) (x any) {
	if len(n.Items) == 0 {
		return
	}
	b.DivClass("not-found").R(
		b.Span().T("Not found: "),
		element.ForEach(n.Items, func(nf search.NotFound) {
			b.Span("class", "not-found-item").R(
				b.Span().T(html.EscapeString(nf.Name)),
				b.Wrap(func() {
					if nf.Suggestion == "" {
						return
					}
					b.Span().T(" (did you mean ")
					b.A("class", "suggestion",
						"hx-post", "/rows/fill?term="+url.QueryEscape(nf.Suggestion),
						"hx-include", "#search-form",
						"hx-target", "#items-container",
						"hx-swap", "outerHTML").T(html.EscapeString(nf.Suggestion))
					b.Span().T("?) ")
				}),
			)
		}),
	)
	return
}

// AccountCard is one search hit with its favorite, buy and preview actions.
type AccountCard struct {
	Account  models.AccountResult
	LoggedIn bool
	Favorite bool
}

func (c AccountCard) Render(b *element.Builder) (x any) {
	acc := c.Account
	id := strconv.FormatInt(acc.ItemID, 10)

	buyAttrs := []string{"class", "action-btn primary buy-btn", "id", "buy-" + id,
		"hx-post", "/buy/" + id + "?base_price=" + strconv.FormatFloat(acc.BasePrice, 'f', -1, 64),
		"hx-swap", "none",
		"hx-disabled-elt", "this",
	}
	if c.LoggedIn {
		// Anonymous buys never reach the back-end, so they get no overlay
		buyAttrs = append(buyAttrs, "hx-indicator", "#processing-overlay")
	}

	b.Div("class", "account-card", "id", "account-"+id).R(
		element.RenderComponents(b, FavoriteButton{ItemID: acc.ItemID, Active: c.Favorite}),
		b.DivClass("full-access-badge").T("Full Access"),
		b.DivClass("account-header").R(
			b.DivClass("account-price").T(acc.PriceLabel()),
			b.DivClass("account-id").T("#"+id),
		),
		b.DivClass("account-stats").R(
			stat(b, "🎭 Skins", strconv.Itoa(acc.Skins)),
			stat(b, "⛏️ Pickaxes", strconv.Itoa(acc.Pickaxes)),
			stat(b, "💃 Emotes", strconv.Itoa(acc.Emotes)),
			stat(b, "🪂 Gliders", strconv.Itoa(acc.Gliders)),
			stat(b, "💰 V-Bucks", strconv.Itoa(acc.VBucks)),
			stat(b, "📅 Last Played", html.EscapeString(acc.LastPlayedLabel())),
		),
		b.DivClass("account-actions").R(
			b.Button(buyAttrs...).T("💳 Buy"),
			b.Button("class", "action-btn secondary skins-btn",
				"hx-get", "/preview/"+id+"/dialog",
				"hx-target", "#modal-root",
				"hx-swap", "innerHTML").T("👀 Preview"),
		),
	)
	return
}

func stat(b *element.Builder, label, value string) any {
	return b.DivClass("stat-item").R(
		b.SpanClass("stat-label").T(label),
		b.SpanClass("stat-value").T(value),
	)
}

// FavoriteButton swaps itself after every toggle.
type FavoriteButton struct {
	ItemID int64
	Active bool
}

func (f FavoriteButton) Render(b *element.Builder) (x any) {
	class, glyph := "favorite-btn", "♡"
	if f.Active {
		class, glyph = "favorite-btn active", "♥"
	}
	b.Button("class", class, "id", fmt.Sprintf("fav-%d", f.ItemID),
		"hx-post", fmt.Sprintf("/favorites/%d/toggle", f.ItemID),
		"hx-target", "this",
		"hx-swap", "outerHTML").T(glyph)
	return
}
