package session_test

import (
	"context"
	"testing"
	"time"

	"konvyshop/models"
	"konvyshop/shopapi"
	"konvyshop/web/session"
)

func newManager(t *testing.T, store models.SessionStore) *session.Manager {
	t.Helper()
	return newManagerWithIdle(t, store, 0)
}

func newManagerWithIdle(t *testing.T, store models.SessionStore, idle time.Duration) *session.Manager {
	t.Helper()
	tokens, err := models.NewSessionTokens("test-secret-key-for-session-tokens-32chars", time.Hour)
	if err != nil {
		t.Fatalf("failed to create tokens: %v", err)
	}
	m, err := session.NewManager(session.ManagerOptions{
		Tokens: tokens,
		Store:  store,
		// Nothing listens here; restored logins fail to reload purchases
		Shop:    shopapi.Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, RequestsPerSec: 100, Burst: 10},
		IdleTTL: idle,
	})
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

func TestNewManagerRequiresTokensAndStore(t *testing.T) {
	if _, err := session.NewManager(session.ManagerOptions{}); err == nil {
		t.Error("expected an error without tokens")
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, models.NewMemorySessionStore(time.Hour))

	s, token, err := m.Resolve(ctx, "")
	if err != nil || token == "" || s == nil {
		t.Fatalf("expected a new session and token, got %v %q %v", s, token, err)
	}

	again, newToken, err := m.Resolve(ctx, token)
	if err != nil || newToken != "" || again != s {
		t.Errorf("expected the live session back without a new token")
	}

	other, newToken, err := m.Resolve(ctx, "not-a-token")
	if err != nil || newToken == "" || other == s {
		t.Errorf("an invalid token must start a fresh session")
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 live sessions, got %d", m.Len())
	}
}

func TestPersistAndRestore(t *testing.T) {
	ctx := context.Background()
	store := models.NewMemorySessionStore(time.Hour)

	first := newManager(t, store)
	s, token, err := first.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	s.Rows.Rows()[0].SetText("Raven")
	if _, err := s.Rows.Fill("Reaper"); err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	s.State.SetLogin("raider")
	if err := first.Persist(ctx, s); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	// A second instance sharing the store picks the session up
	second := newManager(t, store)
	restored, newToken, err := second.Resolve(ctx, token)
	if err != nil || newToken != "" {
		t.Fatalf("expected restore without a new token, got %q %v", newToken, err)
	}
	if restored.ID() != s.ID() {
		t.Errorf("expected session %s, got %s", s.ID(), restored.ID())
	}
	values := restored.Rows.Values()
	if len(values) != 2 || values[0] != "Raven" || values[1] != "Reaper" {
		t.Errorf("unexpected restored rows %v", values)
	}
	if !restored.State.LoggedIn() || restored.State.Username() != "raider" {
		t.Error("expected the login to be restored")
	}
	if !restored.State.MyAccounts.Failed() {
		t.Error("an unreachable back-end marks purchases as failed")
	}
}

func TestPreviewJobs(t *testing.T) {
	m := newManager(t, models.NewMemorySessionStore(time.Hour))
	s, _, err := m.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	first := s.StartPreview(1, models.CategorySkins)
	second := s.StartPreview(1, models.CategoryEmotes)

	if _, ok := s.PreviewJob(first.ID); ok {
		t.Error("a replaced job must not be found")
	}
	if job, ok := s.PreviewJob(second.ID); !ok || job.Category != models.CategoryEmotes {
		t.Error("expected the latest job")
	}

	s.ClosePreview()
	if _, ok := s.PreviewJob(second.ID); ok {
		t.Error("a closed job must not be found")
	}
}

func TestIdleSessionsAreEvicted(t *testing.T) {
	ctx := context.Background()
	store := models.NewMemorySessionStore(time.Hour)
	m := newManagerWithIdle(t, store, 100*time.Millisecond)

	busy, busyToken, err := m.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	busy.Rows.Rows()[0].SetText("Raven")
	if err := m.Persist(ctx, busy); err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	for i := 0; i < 500; i++ {
		if _, _, err := m.Resolve(ctx, ""); err != nil {
			t.Fatalf("cookieless resolve %d failed: %v", i, err)
		}
	}
	if m.Len() != 501 {
		t.Fatalf("expected 501 live sessions, got %d", m.Len())
	}

	time.Sleep(60 * time.Millisecond)
	if again, _, _ := m.Resolve(ctx, busyToken); again != busy {
		t.Fatal("an active session must stay live")
	}
	time.Sleep(60 * time.Millisecond)

	if _, _, err := m.Resolve(ctx, ""); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("expected the idle guests to be evicted, %d sessions live", m.Len())
	}

	// Once evicted, a persisted session comes back from the store
	time.Sleep(120 * time.Millisecond)
	restored, newToken, err := m.Resolve(ctx, busyToken)
	if err != nil || newToken != "" {
		t.Fatalf("expected a restore without a new token, got %q %v", newToken, err)
	}
	if restored == busy || restored.ID() != busy.ID() || restored.Rows.Values()[0] != "Raven" {
		t.Errorf("expected a rebuilt session with the saved rows, got %v", restored.Rows.Values())
	}
	if m.Len() != 1 {
		t.Errorf("expected only the restored session live, got %d", m.Len())
	}
}
