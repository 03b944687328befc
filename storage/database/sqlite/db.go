// Package sqlitedb keeps classroom entities in a private in-memory SQLite database.
// The database lives as long as its single connection, so nothing outlives the process.
package sqlitedb

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const driverName = "sqlite"

var (
	// ErrPersistentDSN is returned for DSNs that would write to disk.
	ErrPersistentDSN = errors.New("sqlite dsn must point to an in-memory database")

	schema = []string{
		`CREATE TABLE IF NOT EXISTS assignment (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			id           TEXT    NOT NULL UNIQUE,
			title        TEXT    NOT NULL,
			description  TEXT    NOT NULL,
			subject      TEXT    NOT NULL,
			due_date     TEXT    NOT NULL,
			created_by   TEXT    NOT NULL,
			status       TEXT    NOT NULL,
			points       INTEGER NULL,
			submitted_at TEXT    NULL,
			grade        REAL    NULL
		)`,
		`CREATE TABLE IF NOT EXISTS announcement (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT    NOT NULL UNIQUE,
			title      TEXT    NOT NULL,
			message    TEXT    NOT NULL,
			created_at TEXT    NOT NULL,
			created_by TEXT    NOT NULL,
			pinned     BOOLEAN NOT NULL DEFAULT FALSE
		)`,
	}
)

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

type DB struct {
	*sqlx.DB
}

func isInMemory(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

// Open creates the in-memory database and its tables.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	if !isInMemory(dsn) {
		return nil, errors.Wrap(ErrPersistentDSN, dsn)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// every connection to ":memory:" is a new database: stick to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	if err = migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db}, nil
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "creating tables")
		}
	}
	return nil
}

// formatTime stores t as RFC 3339 text in UTC, good for years 0 to 9999.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing stored time %q", s)
	}
	return t.UTC(), nil
}

var newID = uuid.NewString // mockable

// generateID returns an id that is not present in table yet.
func generateID(ctx context.Context, tx *sqlx.Tx, table string) (string, error) {
	for {
		id := newID()
		exists, err := idExists(ctx, tx, table, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}

func idExists(ctx context.Context, tx *sqlx.Tx, table, id string) (bool, error) {
	var n int
	if err := tx.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id); err != nil {
		return false, errors.Wrapf(err, "checking %s id", table)
	}
	return n > 0, nil
}

// inTx runs fn inside a transaction, committed only when fn succeeds.
// Errors from fn are returned unwrapped.
func (db *DB) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

func deleteByID(ctx context.Context, db *sqlx.DB, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In("DELETE FROM "+table+" WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrapf(err, "building %s delete", table)
	}
	if _, err = db.ExecContext(ctx, db.Rebind(q), args...); err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	return nil
}
