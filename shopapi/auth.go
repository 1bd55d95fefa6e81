package shopapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"konvyshop/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohanthewiz/serr"
)

const (
	pathLogin    = "/login"
	pathRegister = "/register"
	pathLogout   = "/logout"

	loginFailedMessage    = "Invalid username or password."
	registerFailedMessage = "Registration failed."
)

// LoginError is a rejected login or registration. Message is the text of
// the back-end's error box.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// Login posts the back-end's login form. A redirect means the session cookie
// was issued and now lives in the client's jar; anything else is a rejection
// whose message is scraped from the returned page.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.postCredentials(ctx, pathLogin, username, password, loginFailedMessage)
}

// Register creates a back-end account. On success the back-end logs the new
// user in, exactly like Login.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.postCredentials(ctx, pathRegister, username, password, registerFailedMessage)
}

func (c *Client) postCredentials(ctx context.Context, path, username, password, fallback string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return serr.Wrap(err, "rate limiter wait failed")
	}

	form := url.Values{}
	form.Set("username", strings.TrimSpace(username))
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return serr.Wrap(err, "failed to create credentials request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Same jar, but stop at the redirect so it can be recognised
	noFollow := *c.httpClient
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return serr.Wrap(err, "credentials request to "+path+" failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return nil
	}

	msg := fallback
	if doc, err := goquery.NewDocumentFromReader(resp.Body); err == nil {
		if text := strings.TrimSpace(doc.Find(".error").First().Text()); text != "" {
			msg = text
		}
	}
	return &LoginError{Message: msg}
}

// IsLoginError reports whether err is a credential rejection.
func IsLoginError(err error) bool {
	var le *LoginError
	return errors.As(err, &le)
}

// Logout ends the back-end session and clears the jar for the back-end host.
func (c *Client) Logout(ctx context.Context) error {
	defer c.ImportCookies(nil)

	if err := c.limiter.Wait(ctx); err != nil {
		return serr.Wrap(err, "rate limiter wait failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(pathLogout), nil)
	if err != nil {
		return serr.Wrap(err, "failed to create logout request")
	}

	noFollow := *c.httpClient
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return serr.Wrap(err, "logout request failed")
	}
	resp.Body.Close()
	return nil
}

// ExportCookies returns the back-end cookies so they can be persisted with
// the storefront session.
func (c *Client) ExportCookies() []models.SavedCookie {
	cookies := c.httpClient.Jar.Cookies(c.baseURL)
	out := make([]models.SavedCookie, 0, len(cookies))
	for _, ck := range cookies {
		out = append(out, models.SavedCookie{
			Name:  ck.Name,
			Value: ck.Value,
			Path:  "/",
		})
	}
	return out
}

// ImportCookies restores persisted cookies. Passing nil expires every
// cookie currently held for the back-end.
func (c *Client) ImportCookies(saved []models.SavedCookie) {
	if saved == nil {
		existing := c.httpClient.Jar.Cookies(c.baseURL)
		expired := make([]*http.Cookie, 0, len(existing))
		for _, ck := range existing {
			expired = append(expired, &http.Cookie{Name: ck.Name, Value: "", Path: "/", MaxAge: -1})
		}
		c.httpClient.Jar.SetCookies(c.baseURL, expired)
		return
	}

	cookies := make([]*http.Cookie, 0, len(saved))
	for _, s := range saved {
		ck := &http.Cookie{Name: s.Name, Value: s.Value, Path: s.Path}
		if ck.Path == "" {
			ck.Path = "/"
		}
		if !s.Expires.IsZero() {
			ck.Expires = s.Expires
		}
		cookies = append(cookies, ck)
	}
	c.httpClient.Jar.SetCookies(c.baseURL, cookies)
}
