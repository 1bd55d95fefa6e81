package api

import (
	"context"
	"errors"

	"konvyshop/search"
	"konvyshop/web/pages/dashboard"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Search submits the search form and renders the results area. Blank forms
// only raise the prompt; superseded responses leave the area untouched.
func Search(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	syncRows(ctx, sess)

	filters := search.Filters{
		Days:   ctx.Request().FormValue("days"),
		Skins:  ctx.Request().FormValue("skins"),
		Budget: ctx.Request().FormValue("budget"),
	}

	out, err := sess.Pipeline.Submit(context.Background(), sess.Rows.Values(), filters)
	if errors.Is(err, search.ErrNoItems) {
		trigger(ctx, eventAlert, search.NoItemsMessage)
		return noContent(ctx)
	}
	if err != nil {
		logger.LogErr(err, "search submit failed")
		return err
	}

	if out.Status == search.Stale {
		return noContent(ctx)
	}

	return writePartial(ctx, dashboard.Results{
		Outcome:    out,
		LoggedIn:   sess.State.LoggedIn(),
		IsFavorite: sess.State.Favorites.Has,
	})
}
