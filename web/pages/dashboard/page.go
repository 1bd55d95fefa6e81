// Package dashboard renders the storefront dashboard and the partials its
// htmx requests swap in.
package dashboard

import (
	"strings"

	"konvyshop/web/pages/shared"
	"konvyshop/web/static"

	"github.com/rohanthewiz/element"
)

// Page is the full dashboard: search, wallet and my-accounts sections.
type Page struct {
	shared.Page
	Rows       RowsPanel
	Trending   TrendingChips
	Results    Results
	MyAccounts MyAccountsPanel
}

// Render generates the complete HTML for the dashboard
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		p.renderBody(b),
	)

	return "<!DOCTYPE html>" + b.String()
}

func (p Page) renderBody(b *element.Builder) any {
	return b.Body().R(
		element.RenderComponents(b, p.Banner(true)),

		b.Main().R(
			b.Div("class", "section", "id", "section-home").R(
				p.renderSearchPanel(b),
				element.RenderComponents(b, Loading{}),
				b.Div("id", "search-results").R(
					element.RenderComponents(b, p.Results),
				),
			),
			b.Div("class", "section hidden", "id", "section-wallet").R(
				element.RenderComponents(b, WalletPanel{}),
			),
			b.Div("class", "section hidden", "id", "section-my-accounts").R(
				element.RenderComponents(b, p.MyAccounts),
			),
		),

		element.RenderComponents(b, p.Footer(), ProcessingOverlay{}),

		// Dialogs and the preview modal are swapped in here
		b.Div("id", "modal-root").R(),

		b.Script("src", static.URL("js/app.js")).R(),
	)
}

func (p Page) renderSearchPanel(b *element.Builder) any {
	return b.DivClass("search-panel").R(
		b.Form("id", "search-form",
			"hx-post", "/search",
			"hx-target", "#search-results",
			"hx-swap", "innerHTML",
			"hx-indicator", "#search-loading").R(
			b.H2().T("Find your account"),
			// Tells the server the request carries every row's text
			b.Input("type", "hidden", "name", "form_rows", "value", "1"),
			element.RenderComponents(b, p.Rows),
			b.Button("type", "button", "class", "add-item-btn", "id", "add-item-btn",
				"hx-post", "/rows/add",
				"hx-target", "#items-container",
				"hx-swap", "outerHTML").T("+ Add item"),
			b.DivClass("filters").R(
				b.Input("type", "number", "class", "filter-input", "name", "days", "min", "0",
					"placeholder", "Min days since last played"),
				b.Input("type", "number", "class", "filter-input", "name", "skins", "min", "0",
					"placeholder", "Min skins"),
				b.Input("type", "number", "class", "filter-input", "name", "budget", "id", "budget-input",
					"min", "0", "step", "0.01", "placeholder", "Max budget ($)"),
			),
			b.Button("type", "submit", "class", "search-btn").T("🔍 Search Accounts"),
			element.RenderComponents(b, p.Trending),
		),
	)
}

// RenderString renders components as a standalone fragment for partial
// responses.
func RenderString(comps ...element.Component) string {
	b := element.NewBuilder()
	element.RenderComponents(b, comps...)
	return strings.TrimSpace(b.String())
}
