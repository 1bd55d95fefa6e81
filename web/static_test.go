package web_test

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"konvyshop/models"
	"konvyshop/shopapi"
	"konvyshop/web"
	"konvyshop/web/session"
	"konvyshop/web/static"

	"github.com/rohanthewiz/rweb"
)

func startServer(t *testing.T) string {
	t.Helper()
	tokens, err := models.NewSessionTokens("test-secret-key-for-session-tokens-32chars", time.Hour)
	if err != nil {
		t.Fatalf("failed to create session tokens: %v", err)
	}
	sessions, err := session.NewManager(session.ManagerOptions{
		Tokens: tokens,
		Store:  models.NewMemorySessionStore(time.Hour),
		Shop:   shopapi.Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, RequestsPerSec: 100, Burst: 10},
	})
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	readyChan := make(chan struct{}, 1)
	srv := web.NewTestServer(rweb.ServerOptions{
		ReadyChan: readyChan,
		Address:   "localhost:",
	}, sessions)
	go func() {
		_ = srv.Run()
	}()
	<-readyChan
	return fmt.Sprintf("http://localhost:%s", srv.GetListenPort())
}

func fetch(t *testing.T, url, etag string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestStaticAssets(t *testing.T) {
	base := startServer(t)
	css, _ := static.Lookup("css/app.css")

	t.Run("versioned address is immutable", func(t *testing.T) {
		resp, body := fetch(t, base+static.URL("css/app.css"), "")
		if resp.StatusCode != http.StatusOK || body != string(css.Body) {
			t.Fatalf("expected the stylesheet, got %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Type"); got != "text/css; charset=utf-8" {
			t.Errorf("unexpected content type %q", got)
		}
		if got := resp.Header.Get("Cache-Control"); !strings.Contains(got, "immutable") {
			t.Errorf("expected a long-lived cache, got %q", got)
		}
		if resp.Header.Get("ETag") != css.ETag() {
			t.Errorf("expected ETag %s, got %s", css.ETag(), resp.Header.Get("ETag"))
		}
	})

	t.Run("stale or bare address revalidates", func(t *testing.T) {
		for _, path := range []string{"/static/css/app.css", "/static/css/app.css?v=old"} {
			resp, _ := fetch(t, base+path, "")
			if got := resp.Header.Get("Cache-Control"); got != "public, no-cache" {
				t.Errorf("%s: expected revalidation, got %q", path, got)
			}
		}
	})

	t.Run("matching ETag is not modified", func(t *testing.T) {
		resp, body := fetch(t, base+"/static/css/app.css", css.ETag())
		if resp.StatusCode != http.StatusNotModified || body != "" {
			t.Errorf("expected 304 with no body, got %d %q", resp.StatusCode, body)
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		resp, body := fetch(t, base+"/static/nope.js", "")
		if resp.StatusCode != http.StatusNotFound || body != "Not found" {
			t.Errorf("expected 404 Not found, got %d %q", resp.StatusCode, body)
		}
	})

	t.Run("script charset", func(t *testing.T) {
		resp, _ := fetch(t, base+static.URL("js/app.js"), "")
		if got := resp.Header.Get("Content-Type"); got != "text/javascript; charset=utf-8" {
			t.Errorf("unexpected content type %q", got)
		}
	})
}
