package dashboard

import (
	"fmt"
	"html"

	"github.com/rohanthewiz/element"
)

// WalletPanel holds the balance, top-up and redeem widgets. Each form posts
// to its endpoint and swaps only its own result line.
type WalletPanel struct{}

func (WalletPanel) Render(b *element.Builder) (x any) {
	b.DivClass("wallet-grid").R(
		b.DivClass("wallet-card").R(
			b.H3().T("Balance"),
			b.Button("type", "button", "class", "action-btn primary", "id", "check-balance-btn",
				"hx-post", "/wallet/balance",
				"hx-target", "#balance-result",
				"hx-swap", "outerHTML").T("Check Balance"),
			element.RenderComponents(b, WalletResult{ID: "balance-result"}),
		),
		b.DivClass("wallet-card").R(
			b.H3().T("Top Up"),
			b.Form("hx-post", "/wallet/topup", "hx-target", "#topup-result", "hx-swap", "outerHTML").R(
				b.Input("type", "number", "class", "filter-input", "id", "topup-amount",
					"name", "amount", "min", "1", "step", "0.01", "placeholder", "Amount ($)"),
				b.Button("type", "submit", "class", "action-btn primary", "id", "topup-btn").T("Generate Checkout"),
			),
			element.RenderComponents(b, WalletResult{ID: "topup-result"}),
		),
		b.DivClass("wallet-card").R(
			b.H3().T("Redeem"),
			b.Form("hx-post", "/wallet/redeem", "hx-target", "#redeem-result", "hx-swap", "outerHTML").R(
				b.Input("type", "number", "class", "filter-input", "id", "redeem-order",
					"name", "order_number", "placeholder", "Order number"),
				b.Button("type", "submit", "class", "action-btn primary", "id", "redeem-btn").T("Redeem"),
			),
			element.RenderComponents(b, WalletResult{ID: "redeem-result"}),
		),
	)
	return
}

// WalletResult is the result line under a wallet widget. Link, when set,
// is rendered as the checkout link.
type WalletResult struct {
	ID    string
	Text  string
	Link  string
	Error bool
}

// BalanceText formats a balance the way the wallet shows it.
func BalanceText(balance float64) string {
	return fmt.Sprintf("Balance: $%.2f", balance)
}

func (w WalletResult) Render(b *element.Builder) (x any) {
	class := "wallet-result"
	if w.Error {
		class += " error"
	}
	b.Div("class", class, "id", w.ID).R(
		b.Wrap(func() {
			if w.Link != "" {
				b.A("href", html.EscapeString(w.Link), "target", "_blank", "rel", "noopener").T("Open Checkout")
				return
			}
			b.T(html.EscapeString(w.Text))
		}),
	)
	return
}
