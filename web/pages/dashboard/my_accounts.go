package dashboard

import (
	"html"

	"konvyshop/models"
	"konvyshop/search"

	"github.com/rohanthewiz/element"
)

// MyAccountsPanel is the purchased-accounts carousel.
type MyAccountsPanel struct {
	LoggedIn   bool
	Loaded     bool
	Failed     bool
	Current    models.PurchasedAccount
	HasCurrent bool
	Indicator  string
	// OOB marks the panel for an out-of-band swap after a purchase
	OOB bool
}

// NewMyAccountsPanel snapshots the carousel.
func NewMyAccountsPanel(state *models.SessionState) MyAccountsPanel {
	acc, ok := state.MyAccounts.Current()
	return MyAccountsPanel{
		LoggedIn:   state.LoggedIn(),
		Loaded:     state.MyAccounts.Loaded(),
		Failed:     state.MyAccounts.Failed(),
		Current:    acc,
		HasCurrent: ok,
		Indicator:  state.MyAccounts.Indicator(),
	}
}

func (p MyAccountsPanel) Render(b *element.Builder) (x any) {
	attrs := []string{"id", "my-accounts", "class", "wallet-card"}
	if p.OOB {
		attrs = append(attrs, "hx-swap-oob", "true")
	}

	b.Div(attrs...).R(
		b.H3().T("My Accounts"),
		b.Div("id", "my-accounts-view").R(
			b.Wrap(func() { p.renderView(b) }),
		),
		b.Wrap(func() {
			if !p.HasCurrent {
				return
			}
			b.DivClass("carousel-controls").R(
				b.Button("type", "button", "class", "action-btn secondary", "id", "prev-account",
					"hx-post", "/my-accounts/prev", "hx-target", "#my-accounts", "hx-swap", "outerHTML").T("◀"),
				b.Span("id", "account-indicator").T(p.Indicator),
				b.Button("type", "button", "class", "action-btn secondary", "id", "next-account",
					"hx-post", "/my-accounts/next", "hx-target", "#my-accounts", "hx-swap", "outerHTML").T("▶"),
				b.A("href", "/my-accounts/export.xlsx", "class", "action-btn secondary").T("⬇ Export"),
			)
		}),
	)
	return
}

func (p MyAccountsPanel) renderView(b *element.Builder) {
	switch {
	case !p.LoggedIn:
		b.P().R(
			b.A("href", "/login").T("Login"),
			b.T(" to see your purchased accounts."),
		)
	case p.Failed && !p.HasCurrent:
		b.T(search.MyAccountsFailedText)
	case !p.HasCurrent:
		b.T(search.MyAccountsEmptyText)
	default:
		cred := p.Current.Credentials()
		credBlock(b, "Email Login", cred.EmailLogin)
		credBlock(b, "Email Site", cred.EmailSite)
		credBlock(b, "Epic Login", cred.EpicLogin)
	}
}

func credBlock(b *element.Builder, label, value string) {
	b.DivClass("cred-block").R(
		b.Label().T(label),
		b.SpanClass("code").T(html.EscapeString(value)),
	)
}
