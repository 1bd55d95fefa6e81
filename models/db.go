package models

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	db   *sql.DB      // Activity log (search and purchase history)
	dbMu sync.RWMutex // Serialises writes; DuckDB allows one writer per process
)

// InitDB opens the DuckDB activity log at path and runs migrations.
// An empty path opens an in-memory database, which is what the tests use.
func InitDB(path string) error {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return serr.Wrap(err, "failed to create activity db directory")
		}
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return serr.Wrap(err, "failed to open activity database")
	}

	if err := migrateDB(conn); err != nil {
		conn.Close()
		return serr.Wrap(err, "failed to migrate activity database")
	}

	dbMu.Lock()
	db = conn
	dbMu.Unlock()

	if path == "" {
		logger.Info("Activity log running in memory")
	} else {
		logger.Info("Activity log opened", "path", path)
	}
	return nil
}

// CloseDB closes the activity log if it is open.
func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		db.Close()
		db = nil
	}
}

// dbReady reports whether InitDB has been called. Activity recording is
// best-effort, so callers skip silently when the log is not configured.
func dbReady() bool {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db != nil
}
