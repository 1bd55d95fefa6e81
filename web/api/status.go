package api

import (
	"net/http"
	"time"

	"github.com/rohanthewiz/rweb"
)

// StatusOutput describes the storefront for health checks.
type StatusOutput struct {
	CatalogItems    int       `json:"catalog_items"`
	CatalogLoadedAt time.Time `json:"catalog_loaded_at,omitempty"`
	LoggedIn        bool      `json:"logged_in"`
	Username        string    `json:"username"`
}

// Status reports catalog readiness and the caller's login state.
func Status(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "session unavailable")
	}

	return writeSuccess(ctx, http.StatusOK, StatusOutput{
		CatalogItems:    sess.Catalog.Len(),
		CatalogLoadedAt: sess.Catalog.LoadedAt(),
		LoggedIn:        sess.State.LoggedIn(),
		Username:        sess.State.Username(),
	})
}
