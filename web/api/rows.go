package api

import (
	"errors"
	"net/http"
	"strconv"

	"konvyshop/autocomplete"
	"konvyshop/web/pages/dashboard"
	"konvyshop/web/session"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// FormRowsMarker is a hidden field of the search form. Its presence means
// the request carries every row's current text.
const FormRowsMarker = "form_rows"

var keyNames = map[string]autocomplete.Key{
	"down":   autocomplete.KeyDown,
	"up":     autocomplete.KeyUp,
	"enter":  autocomplete.KeyEnter,
	"escape": autocomplete.KeyEscape,
}

// syncRows copies the submitted row texts into the controllers so typing
// that has not reached the server yet survives a re-render.
func syncRows(ctx rweb.Context, sess *session.Session) {
	if ctx.Request().FormValue(FormRowsMarker) == "" {
		return
	}
	for _, c := range sess.Rows.Rows() {
		if text := ctx.Request().FormValue("item-" + c.ID()); text != c.Text() {
			c.SetText(text)
		}
	}
}

func rowFor(ctx rweb.Context, sess *session.Session) (*autocomplete.Controller, bool) {
	return sess.Rows.Row(ctx.Request().Param("id"))
}

func rowNotFound(ctx rweb.Context) error {
	ctx.SetStatus(http.StatusNotFound)
	return ctx.WriteHTML("")
}

func commitTrigger(ctx rweb.Context, c *autocomplete.Controller) {
	trigger(ctx, eventRowCommitted, map[string]string{"id": c.ID(), "text": c.Text()})
}

// RowInput runs the autocomplete filter for a row. The browser already
// waited out the debounce, so the keystroke is recorded and its quiet
// period elapsed in one step.
func RowInput(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	c, ok := rowFor(ctx, sess)
	if !ok {
		return rowNotFound(ctx)
	}

	ticket := c.Input(ctx.Request().FormValue("item-" + c.ID()))
	c.Elapse(ticket)
	return writePartial(ctx, dashboard.Dropdown{View: c.Snapshot()})
}

// RowKey applies arrow/enter/escape to the row's dropdown.
func RowKey(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	c, ok := rowFor(ctx, sess)
	if !ok {
		return rowNotFound(ctx)
	}

	key, ok := keyNames[ctx.Request().FormValue("key")]
	if !ok {
		ctx.SetStatus(http.StatusBadRequest)
		return ctx.WriteHTML("")
	}

	if c.Key(key) == autocomplete.Committed {
		commitTrigger(ctx, c)
	}
	return writePartial(ctx, dashboard.Dropdown{View: c.Snapshot()})
}

// RowPick commits the clicked candidate.
func RowPick(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	c, ok := rowFor(ctx, sess)
	if !ok {
		return rowNotFound(ctx)
	}

	i, err := strconv.Atoi(ctx.Request().Param("index"))
	if err == nil && c.Click(i) {
		commitTrigger(ctx, c)
	}
	return writePartial(ctx, dashboard.Dropdown{View: c.Snapshot()})
}

// RowAdd appends a row, refusing a sixth.
func RowAdd(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	syncRows(ctx, sess)

	if _, err := sess.Rows.Add(); err != nil {
		if !errors.Is(err, autocomplete.ErrMaxRows) {
			logger.LogErr(err, "failed to add item row")
		}
		trigger(ctx, eventAlert, autocomplete.MaxRowsMessage)
	}
	return writePartial(ctx, dashboard.NewRowsPanel(sess.Rows))
}

// RowRemove drops a row. The last row cannot be removed; its button is
// not rendered, so a request for it just re-renders the rows.
func RowRemove(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	syncRows(ctx, sess)

	if err := sess.Rows.Remove(ctx.Request().Param("id")); err != nil {
		logger.Debug("Item row not removed", "error", err.Error())
	}
	return writePartial(ctx, dashboard.NewRowsPanel(sess.Rows))
}

// RowsDismiss closes every open dropdown outside the clicked wrapper. The
// response is only out-of-band swaps.
func RowsDismiss(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	closed := sess.Rows.Registry().DismissOutside(ctx.Request().FormValue("wrapper"))
	if len(closed) == 0 {
		return noContent(ctx)
	}
	comps := make([]element.Component, 0, len(closed))
	for _, id := range closed {
		comps = append(comps, dashboard.DismissedDropdown{ID: id})
	}
	return writePartial(ctx, comps...)
}

// RowsFill puts a term (trending chip or suggestion) into the first blank row.
func RowsFill(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	syncRows(ctx, sess)

	if term := ctx.Request().QueryParam("term"); term != "" {
		if _, err := sess.Rows.Fill(term); err != nil {
			trigger(ctx, eventAlert, autocomplete.MaxRowsMessage)
		}
	}
	return writePartial(ctx, dashboard.NewRowsPanel(sess.Rows))
}
