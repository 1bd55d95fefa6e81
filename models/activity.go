package models

import (
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
)

// Purchase outcomes stored in purchase_log.
const (
	PurchaseSucceeded = "succeeded"
	PurchaseFailed    = "failed"
)

// TermCount is one trending search term.
type TermCount struct {
	Term  string
	Count int
}

// RecordSearch logs each submitted item term of a search.
func RecordSearch(sessionID string, terms []string, resultCount int, failed bool) error {
	if !dbReady() || len(terms) == 0 {
		return nil
	}

	dbMu.Lock()
	defer dbMu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return serr.Wrap(err, "failed to begin search log transaction")
	}

	now := time.Now().UTC()
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		_, err = tx.Exec(
			`INSERT INTO search_log (session_id, term, result_count, failed, created_at) VALUES (?, ?, ?, ?, ?)`,
			sessionID, term, resultCount, failed, now,
		)
		if err != nil {
			tx.Rollback()
			return serr.Wrap(err, "failed to insert search log row")
		}
	}

	if err := tx.Commit(); err != nil {
		return serr.Wrap(err, "failed to commit search log")
	}
	return nil
}

// RecordPurchase logs the outcome of a buy attempt.
func RecordPurchase(sessionID string, itemID int64, basePrice float64, outcome, message string) error {
	if !dbReady() {
		return nil
	}

	dbMu.Lock()
	defer dbMu.Unlock()

	_, err := db.Exec(
		`INSERT INTO purchase_log (session_id, item_id, base_price, outcome, message) VALUES (?, ?, ?, ?, ?)`,
		sessionID, itemID, basePrice, outcome, message,
	)
	if err != nil {
		return serr.Wrap(err, "failed to insert purchase log row")
	}
	return nil
}

// TrendingTerms returns the most searched terms within the window, most
// frequent first. Terms are grouped case-insensitively; the most recent
// spelling is returned.
func TrendingTerms(limit int, window time.Duration) ([]TermCount, error) {
	if !dbReady() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	dbMu.RLock()
	defer dbMu.RUnlock()

	since := time.Now().UTC().Add(-window)
	rows, err := db.Query(`
		SELECT arg_max(term, created_at) AS latest_term, COUNT(*) AS cnt
		FROM search_log
		WHERE created_at >= ? AND NOT failed
		GROUP BY lower(term)
		ORDER BY cnt DESC, latest_term ASC
		LIMIT ?`, since, limit)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query trending terms")
	}
	defer rows.Close()

	var out []TermCount
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, serr.Wrap(err, "failed to scan trending term")
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// PurchaseCount returns how many purchase attempts with outcome were logged for itemID.
func PurchaseCount(itemID int64, outcome string) (int, error) {
	if !dbReady() {
		return 0, nil
	}

	dbMu.RLock()
	defer dbMu.RUnlock()

	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM purchase_log WHERE item_id = ? AND outcome = ?`, itemID, outcome,
	).Scan(&n)
	if err != nil {
		return 0, serr.Wrap(err, "failed to count purchases")
	}
	return n, nil
}
