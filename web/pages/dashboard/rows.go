package dashboard

import (
	"fmt"
	"html"

	"konvyshop/autocomplete"

	"github.com/rohanthewiz/element"
)

// RowsPanel is the list of item inputs. It is re-rendered whole whenever a
// row is added, removed or filled.
type RowsPanel struct {
	Rows          []autocomplete.View
	RemoveVisible bool
}

// NewRowsPanel snapshots every row of rs.
func NewRowsPanel(rs *autocomplete.RowSet) RowsPanel {
	p := RowsPanel{RemoveVisible: rs.RemoveVisible()}
	for _, c := range rs.Rows() {
		p.Rows = append(p.Rows, c.Snapshot())
	}
	return p
}

func (p RowsPanel) Render(b *element.Builder) (x any) {
	b.Div("id", "items-container", "class", "items-container").R(
		element.ForEach(p.Rows, func(v autocomplete.View) {
			element.RenderComponents(b, Row{View: v, RemoveVisible: p.RemoveVisible})
		}),
	)
	return
}

// Row is one input with its dropdown and remove button.
type Row struct {
	View          autocomplete.View
	RemoveVisible bool
}

func (r Row) Render(b *element.Builder) (x any) {
	id := r.View.ID
	b.Div("class", "item-input-row", "id", "row-"+id).R(
		b.Div("class", "autocomplete-wrapper", "data-row-id", id).R(
			b.Input("type", "text", "class", "item-search-input",
				"id", "item-"+id, "name", "item-"+id, "data-row-id", id,
				"value", html.EscapeString(r.View.Text),
				"placeholder", "Type item name...", "autocomplete", "off",
				"hx-post", "/row/"+id+"/input",
				"hx-trigger", "input changed delay:200ms",
				"hx-target", "#dropdown-"+id,
				"hx-swap", "outerHTML"),
			element.RenderComponents(b, Dropdown{View: r.View}),
		),
		b.Wrap(func() {
			if r.RemoveVisible {
				b.Button("type", "button", "class", "remove-item-btn",
					"hx-post", "/row/"+id+"/remove",
					"hx-target", "#items-container",
					"hx-swap", "outerHTML").T("✕")
			}
		}),
	)
	return
}

// Dropdown renders the suggestion list of one row. Hidden dropdowns still
// render an empty element so later swaps have a target.
type Dropdown struct {
	View autocomplete.View
}

// NoResultsText is the explicit empty row of a visible dropdown.
const NoResultsText = autocomplete.NoResultsText

func (d Dropdown) Render(b *element.Builder) (x any) {
	id := d.View.ID
	class := "autocomplete-dropdown"
	if d.View.Visible {
		class += " show"
	}

	b.Div("class", class, "id", "dropdown-"+id).R(
		b.Wrap(func() {
			if !d.View.Visible {
				return
			}
			if d.View.NoResults {
				b.DivClass("autocomplete-no-results").T(NoResultsText)
				return
			}
			for i, item := range d.View.Candidates {
				itemClass := "autocomplete-item"
				if i == d.View.Selected {
					itemClass += " selected"
				}
				b.Div("class", itemClass,
					"hx-post", fmt.Sprintf("/row/%s/pick/%d", id, i),
					"hx-target", "#dropdown-"+id,
					"hx-swap", "outerHTML").R(
					b.SpanClass("autocomplete-item-name").T(html.EscapeString(item.Name)),
					b.SpanClass("autocomplete-item-type rarity-"+item.RarityLabel()).T(html.EscapeString(item.TypeLabel())),
				)
			}
		}),
	)
	return
}

// DismissedDropdown is an out-of-band swap that empties a dropdown closed
// by an outside click.
type DismissedDropdown struct {
	ID string
}

func (d DismissedDropdown) Render(b *element.Builder) (x any) {
	b.Div("class", "autocomplete-dropdown", "id", "dropdown-"+d.ID, "hx-swap-oob", "true").R()
	return
}
