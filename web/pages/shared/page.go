// Package shared contains the chrome shared by every storefront page.
package shared

import (
	"html"

	"konvyshop/web/static"

	"github.com/rohanthewiz/element"
)

// HTMXSrc is the pinned htmx build loaded by every page.
const HTMXSrc = "https://unpkg.com/htmx.org@1.9.12"

// Page is embedded by full-page components. It carries the title and the
// shopper identity shown in the banner.
//
//	type Dashboard struct {
//		shared.Page
//		...
//	}
type Page struct {
	Title    string
	Username string
	LoggedIn bool
}

// Banner returns the top bar. Nav buttons are only shown on the dashboard.
func (p Page) Banner(withNav bool) Banner {
	return Banner{Username: p.Username, LoggedIn: p.LoggedIn, WithNav: withNav}
}

func (p Page) Footer() Footer {
	return Footer{}
}

// Head renders the document head used by every page.
func (p Page) Head(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(html.EscapeString(p.Title)),
		// Theme is applied before CSS loads to avoid a flash of the wrong theme
		b.Script().T(`(function(){var t=localStorage.getItem('theme')||'dark';document.documentElement.setAttribute('data-theme',t);})()`),
		b.Link("rel", "stylesheet", "href", static.URL("css/app.css")),
		b.Script("src", HTMXSrc).R(),
	)
}
