package api_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

// TestAuthAPI covers the login and registration pages proxied to the back-end.
func TestAuthAPI(t *testing.T) {
	sf := setupStorefront(t)

	t.Run("LoginPage", func(t *testing.T) {
		resp, body := sf.get(t, "/login")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, `action="/login"`) {
			t.Error("expected the login form")
		}
	})

	t.Run("RegisterMissingFields", func(t *testing.T) {
		_, body := sf.post(t, "/register", url.Values{"username": {"  "}, "password": {""}})
		if !strings.Contains(body, "Username and password are required.") {
			t.Errorf("expected a validation message: %s", body)
		}
		if sf.shop.count("/register") != 0 {
			t.Error("blank registrations must not reach the back-end")
		}
	})

	t.Run("RegisterTaken", func(t *testing.T) {
		resp, body := sf.post(t, "/register", url.Values{"username": {"taken"}, "password": {"pw"}})
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, "That username is already taken.") {
			t.Errorf("expected the back-end error, got %d: %s", resp.StatusCode, body)
		}
		if !strings.Contains(body, `value="taken"`) {
			t.Error("expected the username to be kept")
		}
	})

	t.Run("RegisterSuccess", func(t *testing.T) {
		resp, _ := sf.post(t, "/register", url.Values{"username": {"newbie"}, "password": {"pw"}})
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
			t.Fatalf("expected redirect to the dashboard, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
		}
		_, body := sf.get(t, "/api/status")
		if !strings.Contains(body, `"username":"newbie"`) {
			t.Errorf("expected the new user to be signed in: %s", body)
		}
	})

	t.Run("LoginPageRedirectsWhenSignedIn", func(t *testing.T) {
		resp, _ := sf.get(t, "/login")
		if resp.StatusCode != http.StatusFound {
			t.Errorf("expected redirect, got %d", resp.StatusCode)
		}
	})
}
