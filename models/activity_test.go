package models_test

import (
	"bytes"
	"testing"
	"time"

	"konvyshop/models"

	"github.com/xuri/excelize/v2"
)

// setupActivityDB opens an in-memory activity log for one test
func setupActivityDB(t *testing.T) func() {
	t.Helper()

	if err := models.InitDB(""); err != nil {
		t.Fatalf("failed to initialize activity database: %v", err)
	}
	return models.CloseDB
}

func TestActivityWithoutDBIsNoop(t *testing.T) {
	models.CloseDB()

	if err := models.RecordSearch("s", []string{"Mako"}, 1, false); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
	terms, err := models.TrendingTerms(5, time.Hour)
	if err != nil || len(terms) != 0 {
		t.Errorf("expected no trending terms, got %v (%v)", terms, err)
	}
}

func TestTrendingTerms(t *testing.T) {
	cleanup := setupActivityDB(t)
	defer cleanup()

	searches := [][]string{
		{"Renegade Raider", "Mako"},
		{"renegade raider"},
		{"Renegade Raider"},
		{"Take The L"},
	}
	for _, terms := range searches {
		if err := models.RecordSearch("sess-1", terms, 3, false); err != nil {
			t.Fatalf("record search failed: %v", err)
		}
	}
	// Failed searches do not count towards trending
	if err := models.RecordSearch("sess-1", []string{"Take The L", "Take The L"}, 0, true); err != nil {
		t.Fatalf("record search failed: %v", err)
	}

	terms, err := models.TrendingTerms(2, time.Hour)
	if err != nil {
		t.Fatalf("trending query failed: %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %v", terms)
	}
	if terms[0].Count != 3 {
		t.Errorf("expected top term counted 3 times, got %+v", terms[0])
	}
	if terms[1].Count != 1 {
		t.Errorf("expected second term counted once, got %+v", terms[1])
	}
}

func TestRecordPurchase(t *testing.T) {
	cleanup := setupActivityDB(t)
	defer cleanup()

	_ = models.RecordPurchase("sess-1", 42, 10, models.PurchaseFailed, "Not enough balance. Missing $1.00")
	_ = models.RecordPurchase("sess-1", 42, 10, models.PurchaseSucceeded, "")

	for outcome, want := range map[string]int{models.PurchaseFailed: 1, models.PurchaseSucceeded: 1} {
		n, err := models.PurchaseCount(42, outcome)
		if err != nil || n != want {
			t.Errorf("outcome %s: expected %d, got %d (%v)", outcome, want, n, err)
		}
	}
}

func TestPurchasesWorkbook(t *testing.T) {
	var acc models.PurchasedAccount
	acc.Timestamp = 1700000000
	acc.PurchaseResult.Item.ItemID = 42
	acc.PurchaseResult.Item.EmailLoginData.Raw = "bob@mail.com:pw"
	acc.PurchaseResult.Item.LoginData.Raw = "bob:epic"

	data, err := models.PurchasesWorkbook([]models.PurchasedAccount{acc})
	if err != nil {
		t.Fatalf("workbook failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Purchased Accounts")
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[0][2] != "Item ID" || rows[1][2] != "42" || rows[1][4] != "mail.com" || rows[1][5] != "bob:epic" {
		t.Errorf("unexpected rows %v", rows)
	}
}
