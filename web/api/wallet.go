package api

import (
	"context"
	"strconv"
	"strings"

	"konvyshop/web/pages/dashboard"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Balance shows the shopper's wallet balance.
func Balance(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	res := dashboard.WalletResult{ID: "balance-result"}
	bal, err := sess.Shop.Balance(context.Background())
	if err != nil {
		logger.LogErr(err, "balance lookup failed")
		res.Text, res.Error = messageOf(err), true
	} else {
		res.Text = dashboard.BalanceText(bal)
	}
	return writePartial(ctx, res)
}

// TopUp creates a checkout session and links to it.
func TopUp(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(ctx.Request().FormValue("amount")), 64)

	res := dashboard.WalletResult{ID: "topup-result"}
	checkoutURL, err := sess.Shop.TopUp(context.Background(), amount)
	if err != nil {
		logger.LogErr(err, "top-up failed", "amount", amount)
		res.Text, res.Error = messageOf(err), true
	} else {
		res.Link = checkoutURL
	}
	return writePartial(ctx, res)
}

// Redeem credits a paid order to the wallet.
func Redeem(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	order, _ := strconv.Atoi(strings.TrimSpace(ctx.Request().FormValue("order_number")))

	res := dashboard.WalletResult{ID: "redeem-result"}
	msg, err := sess.Shop.Redeem(context.Background(), order)
	if err != nil {
		logger.LogErr(err, "redeem failed", "order", order)
		res.Text, res.Error = messageOf(err), true
	} else {
		res.Text = msg
	}
	return writePartial(ctx, res)
}
