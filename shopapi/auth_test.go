package shopapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"konvyshop/shopapi"
)

// fakeBackend mimics the back-end's form login: a redirect plus session
// cookie on success, the login page with an error box otherwise.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse login form: %v", err)
			}
			if r.PostForm.Get("username") == "alice" && r.PostForm.Get("password") == "secret" {
				http.SetCookie(w, &http.Cookie{Name: "session", Value: "alice-session", Path: "/"})
				http.Redirect(w, r, "/index", http.StatusFound)
				return
			}
			_, _ = io.WriteString(w, `<html><body><form><div class="error">Invalid username or password.</div></form></body></html>`)
		case "/register":
			_ = r.ParseForm()
			if r.PostForm.Get("username") == "alice" {
				_, _ = io.WriteString(w, `<html><body><div class="error">That username is already taken.</div></body></html>`)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "alice-session", Path: "/"})
			http.Redirect(w, r, "/index", http.StatusFound)
		case "/logout":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
			http.Redirect(w, r, "/login", http.StatusFound)
		case "/api/balance":
			ck, err := r.Cookie("session")
			if err != nil || ck.Value != "alice-session" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"error":"not_logged_in"}`)
				return
			}
			_, _ = io.WriteString(w, `{"balance":5}`)
		}
	}))
}

func TestLoginCarriesSessionCookie(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	client := newClient(t, srv)
	ctx := context.Background()

	if _, err := client.Balance(ctx); err == nil {
		t.Fatal("expected balance to fail before login")
	}

	if err := client.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	bal, err := client.Balance(ctx)
	if err != nil || bal != 5 {
		t.Fatalf("expected balance 5 after login, got %v (%v)", bal, err)
	}

	cookies := client.ExportCookies()
	if len(cookies) != 1 || cookies[0].Value != "alice-session" {
		t.Errorf("unexpected exported cookies %+v", cookies)
	}

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := client.Balance(ctx); err == nil {
		t.Error("expected balance to fail after logout")
	}
}

func TestLoginRejectedScrapesErrorBox(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()

	err := newClient(t, srv).Login(context.Background(), "alice", "wrong")
	if !shopapi.IsLoginError(err) {
		t.Fatalf("expected a login error, got %v", err)
	}
	if err.Error() != "Invalid username or password." {
		t.Errorf("unexpected login error message %q", err.Error())
	}
}

func TestImportCookiesRestoresSession(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	ctx := context.Background()

	first := newClient(t, srv)
	if err := first.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second := newClient(t, srv)
	second.ImportCookies(first.ExportCookies())

	if bal, err := second.Balance(ctx); err != nil || bal != 5 {
		t.Errorf("expected restored session to see balance, got %v (%v)", bal, err)
	}
}

func TestRegister(t *testing.T) {
	srv := fakeBackend(t)
	defer srv.Close()
	ctx := context.Background()

	err := newClient(t, srv).Register(ctx, "alice", "pw")
	if !shopapi.IsLoginError(err) || err.Error() != "That username is already taken." {
		t.Errorf("expected taken error, got %v", err)
	}

	client := newClient(t, srv)
	if err := client.Register(ctx, "bob", "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if bal, err := client.Balance(ctx); err != nil || bal != 5 {
		t.Errorf("expected registered client to be logged in, got %v (%v)", bal, err)
	}
}
