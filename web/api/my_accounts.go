package api

import (
	"net/http"

	"konvyshop/models"
	"konvyshop/web/pages/dashboard"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// XLSXContentType is the MIME type of the purchases export.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MyAccountsNext moves the carousel forward.
func MyAccountsNext(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	sess.State.MyAccounts.Next()
	return writePartial(ctx, dashboard.NewMyAccountsPanel(sess.State))
}

// MyAccountsPrev moves the carousel back.
func MyAccountsPrev(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	sess.State.MyAccounts.Prev()
	return writePartial(ctx, dashboard.NewMyAccountsPanel(sess.State))
}

// MyAccountsExport downloads every purchased account as a spreadsheet.
func MyAccountsExport(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	if !sess.State.LoggedIn() {
		return ctx.Redirect(http.StatusFound, "/login")
	}

	data, err := models.PurchasesWorkbook(sess.State.MyAccounts.All())
	if err != nil {
		logger.LogErr(err, "failed to build purchases workbook")
		ctx.SetStatus(http.StatusInternalServerError)
		return ctx.WriteHTML("Export failed")
	}

	ctx.Response().SetHeader("Content-Type", XLSXContentType)
	ctx.Response().SetHeader("Content-Disposition", `attachment; filename="konvy-accounts.xlsx"`)
	return ctx.Bytes(data)
}
