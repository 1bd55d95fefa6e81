package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Banner is the storefront top bar: brand, section nav and the login box.
type Banner struct {
	Username string
	LoggedIn bool
	WithNav  bool
}

var navSections = []struct{ id, label string }{
	{"home", "🏠 Search"},
	{"wallet", "💰 Wallet"},
	{"my-accounts", "🎮 My Accounts"},
}

func (bn Banner) Render(b *element.Builder) any {
	b.HeaderClass("topbar").R(
		b.DivClass("brand").T("KONVY"),
		b.Wrap(func() {
			if !bn.WithNav {
				return
			}
			b.Nav().R(
				element.ForEach(navSections, func(s struct{ id, label string }) {
					class := "nav-btn"
					if s.id == "home" {
						class += " active"
					}
					b.Button("type", "button", "class", class, "data-section", s.id,
						"onclick", "konvy.showSection('"+s.id+"')").T(s.label)
				}),
			)
		}),
		b.DivClass("user-box").R(
			b.Span("id", "username").T(html.EscapeString(bn.displayName())),
			b.Wrap(func() {
				if bn.LoggedIn {
					b.A("href", "/logout").T("Logout")
				} else {
					b.A("href", "/login").T("Login")
				}
			}),
			b.Button("type", "button", "class", "nav-btn", "title", "Toggle theme",
				"onclick", "konvy.toggleTheme()").T("🌓"),
		),
	)
	return nil
}

func (bn Banner) displayName() string {
	if bn.Username == "" {
		return "Guest"
	}
	return bn.Username
}
