package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"konvyshop/search"
	"konvyshop/web/pages/dashboard"

	"github.com/rohanthewiz/rweb"
)

// Shown when a second buy click arrives while the first is still running.
const purchaseInFlightMessage = "A purchase of this account is already in progress."

func itemID(ctx rweb.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Request().Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func badItem(ctx rweb.Context) error {
	ctx.SetStatus(http.StatusBadRequest)
	return ctx.WriteHTML("invalid item id")
}

// ToggleFavorite flips the heart of one card. The button is re-rendered
// with the state that is true after the back-end answered.
func ToggleFavorite(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	id, ok := itemID(ctx)
	if !ok {
		return badItem(ctx)
	}

	active, err := search.ToggleFavorite(context.Background(), sess.State, sess.Shop, id)
	if err != nil {
		trigger(ctx, eventAlert, search.FavoriteErrorText(err))
	}
	return writePartial(ctx, dashboard.FavoriteButton{ItemID: id, Active: active})
}

// Buy purchases the account of a card. Guests are asked to log in and no
// purchase request is sent.
func Buy(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	id, ok := itemID(ctx)
	if !ok {
		return badItem(ctx)
	}

	basePrice, err := strconv.ParseFloat(ctx.Request().QueryParam("base_price"), 64)
	if err != nil {
		ctx.SetStatus(http.StatusBadRequest)
		return ctx.WriteHTML("invalid base price")
	}

	out, err := sess.Buyer.Buy(context.Background(), sess.State, sess.Shop, id, basePrice)
	if err != nil {
		if errors.Is(err, search.ErrPurchaseInFlight) {
			trigger(ctx, eventAlert, purchaseInFlightMessage)
			return noContent(ctx)
		}
		return err
	}

	switch out.Status {
	case search.BuyRedirectLogin:
		trigger(ctx, eventConfirmLogin, out.Message)
		return noContent(ctx)
	case search.BuyFailed:
		trigger(ctx, eventAlert, "❌ "+out.Message)
		return noContent(ctx)
	}

	trigger(ctx, eventAlert, out.Message)
	panel := dashboard.NewMyAccountsPanel(sess.State)
	panel.OOB = true
	return writePartial(ctx, panel)
}
