package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"konvyshop/shopapi"
	"konvyshop/web/pages/dashboard"
	"konvyshop/web/session"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// APIResponse is the envelope of the JSON endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}

// writePartial renders components as an htmx fragment.
func writePartial(ctx rweb.Context, comps ...element.Component) error {
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(dashboard.RenderString(comps...))
}

// noContent leaves the swap target untouched.
func noContent(ctx rweb.Context) error {
	ctx.SetStatus(http.StatusNoContent)
	return nil
}

// Client-side events raised through HX-Trigger. See static/js/app.js.
const (
	eventAlert        = "showAlert"
	eventConfirmLogin = "confirmLogin"
	eventRowCommitted = "rowCommitted"
)

// trigger raises a client-side event carrying value.
func trigger(ctx rweb.Context, event string, value interface{}) {
	raw, err := json.Marshal(map[string]interface{}{event: value})
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to encode HX-Trigger"), "event", event)
		return
	}
	ctx.Response().SetHeader("HX-Trigger", string(raw))
}

// current returns the request's session. The session middleware always
// attaches one, so a miss is a wiring bug.
func current(ctx rweb.Context) (*session.Session, error) {
	s := session.From(ctx)
	if s == nil {
		return nil, serr.New("no session attached to request")
	}
	return s, nil
}

func sessionMissing(ctx rweb.Context, err error) error {
	logger.LogErr(err, "session middleware not installed")
	ctx.SetStatus(http.StatusInternalServerError)
	return ctx.WriteHTML("Session unavailable")
}

// messageOf is the text shown for a failed back-end call: the back-end's
// error field when there is one, the raw error otherwise.
func messageOf(err error) string {
	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
