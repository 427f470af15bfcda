package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB handle shared by the repositories.
type DB struct {
	*sql.DB
}

// BuildDSN embeds the pragmas in the DSN so every pooled connection gets
// them, not only the first one.
func BuildDSN(path string, readOnly bool) string {
	params := url.Values{}
	params.Add("_pragma", "busy_timeout(30000)")
	if readOnly {
		params.Set("mode", "ro")
	} else {
		params.Add("_pragma", "journal_mode(WAL)")
		params.Add("_pragma", "synchronous(NORMAL)")
		params.Add("_pragma", "foreign_keys(ON)")
	}
	return "file:" + path + "?" + params.Encode()
}

// OpenCache opens a feed reader cache read-only. The reader may be running
// at the same time, so nothing here writes to it.
func OpenCache(path string) (*DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("failed to open cache database: %s is not a regular file", path)
	}

	return open(BuildDSN(path, true))
}

// OpenLedger opens (creating if needed) the capture ledger and applies
// pending migrations.
func OpenLedger(path string) (*DB, error) {
	db, err := open(BuildDSN(path, false))
	if err != nil {
		return nil, err
	}

	if _, _, err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}
