package api

import (
	"context"
	"net/http"
	"strings"

	"konvyshop/search"
	"konvyshop/shopapi"
	"konvyshop/web/pages/auth"
	"konvyshop/web/session"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Shown when the back-end cannot be reached at all.
const authUnavailableMessage = "Login service unavailable, please try again."

// LoginPage renders the sign-in form. Logged-in shoppers go straight to the
// dashboard.
// GET /login
func LoginPage(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}
	if sess.State.LoggedIn() {
		return ctx.Redirect(http.StatusFound, "/")
	}
	return writePage(ctx, auth.NewLoginPage().Render())
}

// Login proxies the form to the back-end. On success the back-end session
// cookie lives in the session's client jar, and favorites and purchased
// accounts are loaded once.
// POST /login
func Login(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	username := strings.TrimSpace(ctx.Request().FormValue("username"))
	password := ctx.Request().FormValue("password")

	if err := sess.Shop.Login(context.Background(), username, password); err != nil {
		page := auth.NewLoginPage()
		page.Username = username
		page.Error = credentialsError(err, "login")
		return writePage(ctx, page.Render())
	}

	signedIn(sess, username)
	return ctx.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the account creation form.
// GET /register
func RegisterPage(ctx rweb.Context) error {
	return writePage(ctx, auth.NewRegisterPage().Render())
}

// Register creates a back-end account, which also signs the shopper in.
// POST /register
func Register(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	username := strings.TrimSpace(ctx.Request().FormValue("username"))
	password := ctx.Request().FormValue("password")

	page := auth.NewRegisterPage()
	page.Username = username
	if username == "" || password == "" {
		page.Error = "Username and password are required."
		return writePage(ctx, page.Render())
	}

	if err := sess.Shop.Register(context.Background(), username, password); err != nil {
		page.Error = credentialsError(err, "registration")
		return writePage(ctx, page.Render())
	}

	signedIn(sess, username)
	return ctx.Redirect(http.StatusFound, "/")
}

// Logout ends the back-end session and drops user data from the session.
// GET /logout
func Logout(ctx rweb.Context) error {
	sess, err := current(ctx)
	if err != nil {
		return sessionMissing(ctx, err)
	}

	if err := sess.Shop.Logout(context.Background()); err != nil {
		logger.LogErr(err, "back-end logout failed")
	}
	logger.Info("Shopper logged out", "username", sess.State.Username())
	sess.State.ClearLogin()
	session.MarkDirty(ctx)

	return ctx.Redirect(http.StatusFound, "/login")
}

func signedIn(sess *session.Session, username string) {
	sess.State.SetLogin(username)
	search.LoadFavorites(context.Background(), sess.State, sess.Shop)
	search.LoadMyAccounts(context.Background(), sess.State, sess.Shop)
	logger.Info("Shopper logged in", "username", username)
}

func credentialsError(err error, action string) string {
	if shopapi.IsLoginError(err) {
		return err.Error()
	}
	logger.LogErr(err, "back-end "+action+" failed")
	return authUnavailableMessage
}

func writePage(ctx rweb.Context, html string) error {
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.WriteHTML(html)
}
