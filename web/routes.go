package web

import (
	"konvyshop/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server) {
	// Pages
	s.Get("/", api.Dashboard)
	s.Get("/dashboard", api.Dashboard)
	s.Get("/login", api.LoginPage)
	s.Post("/login", api.Login)
	s.Get("/register", api.RegisterPage)
	s.Post("/register", api.Register)
	s.Get("/logout", api.Logout)

	// Item rows and autocomplete - htmx partials
	s.Post("/rows/add", api.RowAdd)
	s.Post("/rows/dismiss", api.RowsDismiss) // outside click
	s.Post("/rows/fill", api.RowsFill)       // trending chip or suggestion
	s.Post("/row/:id/input", api.RowInput)
	s.Post("/row/:id/key", api.RowKey)
	s.Post("/row/:id/pick/:index", api.RowPick)
	s.Post("/row/:id/remove", api.RowRemove)

	// Search and card actions
	s.Post("/search", api.Search)
	s.Post("/favorites/:id/toggle", api.ToggleFavorite)
	s.Post("/buy/:id", api.Buy)

	// Preview
	s.Get("/preview/:id/dialog", api.PreviewDialog)
	s.Post("/preview/:id/start", api.PreviewStart)
	s.Get("/jobs/:job", api.PreviewPoll)
	s.Post("/modal/close", api.PreviewClose)

	// Wallet and purchased accounts
	s.Post("/wallet/balance", api.Balance)
	s.Post("/wallet/topup", api.TopUp)
	s.Post("/wallet/redeem", api.Redeem)
	s.Post("/my-accounts/next", api.MyAccountsNext)
	s.Post("/my-accounts/prev", api.MyAccountsPrev)
	s.Get("/my-accounts/export.xlsx", api.MyAccountsExport)

	// JSON
	s.Get("/api/status", api.Status)
}
