package shopapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"konvyshop/models"
	"konvyshop/shopapi"
)

func newClient(t *testing.T, srv *httptest.Server) *shopapi.Client {
	t.Helper()
	client, err := shopapi.NewClient(shopapi.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestPostJSONErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantDetail string
	}{
		{"error field", http.StatusUnauthorized, `{"error":"not_logged_in"}`, "not_logged_in", ""},
		{"error with message", http.StatusBadRequest,
			`{"error":"not_enough_balance","message":"Not enough balance. Missing $3.20"}`,
			"not_enough_balance", "Not enough balance. Missing $3.20"},
		{"no error field", http.StatusInternalServerError, `{}`, shopapi.GenericErrorMessage, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, shopapi.GenericErrorMessage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := newClient(t, srv).PostJSON(context.Background(), "/api/anything", nil, nil)
			var apiErr *shopapi.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Error() != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, apiErr.Error())
			}
			if apiErr.Detail != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, apiErr.Detail)
			}
		})
	}
}

func TestUserMessagePrefersDetail(t *testing.T) {
	e := &shopapi.APIError{Message: "not_enough_balance", Detail: "Not enough balance. Missing $1.00"}
	if got := e.UserMessage(); got != "Not enough balance. Missing $1.00" {
		t.Errorf("unexpected user message %q", got)
	}
	e = &shopapi.APIError{Message: "fast_buy_failed"}
	if got := e.UserMessage(); got != "fast_buy_failed" {
		t.Errorf("unexpected user message %q", got)
	}
}

func TestSearchSendsJSONBody(t *testing.T) {
	var gotBody map[string]interface{}
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fortnite/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"accounts":[{"item_id":42,"user_price":12.5,"base_price":10,"level":100,"skins":80,"vbucks":0,"last_played":"2024-01-01"}],"not_found":["Renegade Raidr"]}`)
	}))
	defer srv.Close()

	resp, err := newClient(t, srv).Search(context.Background(), models.SearchRequest{
		Item: "Renegade Raider", Days: 7, Skins: 0, Budget: models.BudgetUnbounded,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody["item"] != "Renegade Raider" || gotBody["days"] != float64(7) ||
		gotBody["skins"] != float64(0) || gotBody["budget"] != float64(999999) {
		t.Errorf("unexpected request body %v", gotBody)
	}
	if len(resp.Accounts) != 1 || resp.Accounts[0].ItemID != 42 {
		t.Fatalf("unexpected accounts %+v", resp.Accounts)
	}
	if resp.Accounts[0].PriceLabel() != "$12.50" {
		t.Errorf("unexpected price label %q", resp.Accounts[0].PriceLabel())
	}
	if len(resp.NotFound) != 1 || resp.NotFound[0] != "Renegade Raidr" {
		t.Errorf("unexpected not_found %v", resp.NotFound)
	}
}

func TestTypedEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/favorites/list":
			_, _ = io.WriteString(w, `{"favorites":[3,1]}`)
		case "/api/favorites/add", "/api/favorites/remove":
			_, _ = io.WriteString(w, `{"message":"ok"}`)
		case "/api/balance":
			_, _ = io.WriteString(w, `{"balance":12.34}`)
		case "/api/topup":
			_, _ = io.WriteString(w, `{"checkout_url":"https://shop.example/cart/1:5"}`)
		case "/api/redeem":
			_, _ = io.WriteString(w, `{"message":"Redeemed order #1001: added $5.00. New balance: $17.34"}`)
		case "/api/account/42/cosmetics/pickaxes":
			if r.Method != http.MethodGet {
				t.Errorf("cosmetics must be GET, got %s", r.Method)
			}
			_, _ = io.WriteString(w, `{"item_id":42,"type":"pickaxes","cosmetics":["Reaper","AC/DC"]}`)
		case "/api/skins/icons":
			_, _ = io.WriteString(w, `{"icons":[{"name":"Reaper","icon":"https://img/reaper.png"},{"name":"AC/DC","icon":""}]}`)
		case "/api/fortnite/my-accounts":
			_, _ = io.WriteString(w, `{"accounts":[{"timestamp":1700000000,"purchase_result":{"item":{"item_id":42,"emailLoginData":{"raw":"bob@mail.com:pw"},"loginData":{"raw":"bob:epic"}}}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newClient(t, srv)
	ctx := context.Background()

	favs, err := client.ListFavorites(ctx)
	if err != nil || len(favs) != 2 || favs[0] != 3 {
		t.Errorf("unexpected favorites %v (%v)", favs, err)
	}
	if err := client.AddFavorite(ctx, 3); err != nil {
		t.Errorf("add favorite failed: %v", err)
	}
	if err := client.RemoveFavorite(ctx, 3); err != nil {
		t.Errorf("remove favorite failed: %v", err)
	}

	bal, err := client.Balance(ctx)
	if err != nil || bal != 12.34 {
		t.Errorf("unexpected balance %v (%v)", bal, err)
	}

	link, err := client.TopUp(ctx, 5)
	if err != nil || !strings.HasPrefix(link, "https://shop.example/") {
		t.Errorf("unexpected checkout url %q (%v)", link, err)
	}

	msg, err := client.Redeem(ctx, 1001)
	if err != nil || !strings.Contains(msg, "Redeemed order #1001") {
		t.Errorf("unexpected redeem message %q (%v)", msg, err)
	}

	names, err := client.AccountCosmetics(ctx, 42, models.CategoryPickaxes)
	if err != nil || len(names) != 2 || names[1] != "AC/DC" {
		t.Errorf("unexpected cosmetics %v (%v)", names, err)
	}

	icons, err := client.SkinIcons(ctx, names, models.ItemPickaxe)
	if err != nil || len(icons) != 2 || icons[1].Icon != "" {
		t.Errorf("unexpected icons %v (%v)", icons, err)
	}

	accounts, err := client.MyAccounts(ctx)
	if err != nil || len(accounts) != 1 {
		t.Fatalf("unexpected my accounts %v (%v)", accounts, err)
	}
	if cred := accounts[0].Credentials(); cred.EmailSite != "mail.com" {
		t.Errorf("expected email site mail.com, got %q", cred.EmailSite)
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newClient(t, srv)
	srv.Close()

	_, err := client.Balance(context.Background())
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an APIError: %v", err)
	}
}
