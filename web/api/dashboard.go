package api

import (
	"time"

	"konvyshop/models"
	"konvyshop/web/pages/dashboard"
	"konvyshop/web/pages/shared"
	"konvyshop/web/session"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

const (
	trendingLimit  = 8
	trendingWindow = 24 * time.Hour
)

// Dashboard renders the full storefront page. Guests can browse; buying and
// favorites need a login.
func Dashboard(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	return writePage(ctx, BuildDashboard(sess).Render())
}

// BuildDashboard assembles the page from the session state.
func BuildDashboard(sess *session.Session) dashboard.Page {
	terms, err := models.TrendingTerms(trendingLimit, trendingWindow)
	if err != nil {
		logger.LogErr(err, "failed to load trending terms")
	}

	return dashboard.Page{
		Page: shared.Page{
			Title:    "Konvy - Account Marketplace",
			Username: sess.State.Username(),
			LoggedIn: sess.State.LoggedIn(),
		},
		Rows:     dashboard.NewRowsPanel(sess.Rows),
		Trending: dashboard.TrendingChips{Terms: terms},
		Results: dashboard.Results{
			Outcome:    sess.Pipeline.Last(),
			LoggedIn:   sess.State.LoggedIn(),
			IsFavorite: sess.State.Favorites.Has,
		},
		MyAccounts: dashboard.NewMyAccountsPanel(sess.State),
	}
}
