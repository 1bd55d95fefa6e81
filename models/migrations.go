package models

import (
	"database/sql"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// migrateDB creates the activity tables
func migrateDB(conn *sql.DB) error {
	sequences := []string{
		"CREATE SEQUENCE IF NOT EXISTS search_log_id_seq START 1",
		"CREATE SEQUENCE IF NOT EXISTS purchase_log_id_seq START 1",
	}

	for _, seqSQL := range sequences {
		if _, err := conn.Exec(seqSQL); err != nil {
			logger.LogErr(err, "failed to create sequence", "sql", seqSQL)
		}
	}

	// One row per submitted item term, so trending counts are a plain GROUP BY
	searchLogSQL := `
	CREATE TABLE IF NOT EXISTS search_log (
		id INTEGER PRIMARY KEY DEFAULT nextval('search_log_id_seq'),
		session_id VARCHAR(64) NOT NULL,
		term VARCHAR(255) NOT NULL,
		result_count INTEGER DEFAULT 0,
		failed BOOLEAN DEFAULT false,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := conn.Exec(searchLogSQL); err != nil {
		return serr.Wrap(err, "failed to create search_log table")
	}

	purchaseLogSQL := `
	CREATE TABLE IF NOT EXISTS purchase_log (
		id INTEGER PRIMARY KEY DEFAULT nextval('purchase_log_id_seq'),
		session_id VARCHAR(64) NOT NULL,
		item_id BIGINT NOT NULL,
		base_price DOUBLE,
		outcome VARCHAR(32) NOT NULL,
		message TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := conn.Exec(purchaseLogSQL); err != nil {
		return serr.Wrap(err, "failed to create purchase_log table")
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_search_log_created ON search_log(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_log_item ON purchase_log(item_id)",
	}
	for _, idxSQL := range indexes {
		if _, err := conn.Exec(idxSQL); err != nil {
			logger.LogErr(err, "failed to create index", "sql", idxSQL)
		}
	}

	return nil
}
