// Package dbtest opens throwaway SQLite databases with the leads table for tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Schema mirrors the production leads table in SQLite dialect.
const Schema = `
CREATE TABLE leads (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL CHECK (name <> ''),
	company      TEXT NOT NULL,
	email        TEXT NOT NULL,
	phone        TEXT NOT NULL,
	status       TEXT NOT NULL,
	owner        TEXT NOT NULL,
	owner_avatar TEXT NOT NULL DEFAULT '',
	created_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_date DATETIME
);
CREATE INDEX idx_leads_created_date ON leads (created_date);
CREATE INDEX idx_leads_status ON leads (status);
`

// Open returns an in-memory database with Schema applied. It is closed when
// the test ends.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pooled connection would otherwise get its own empty :memory: db
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		t.Fatalf("apply schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
