// internal/session/db.go
//
// SQLite helpers for the session ledger.
// Responsibilities:
//   - Opening an in-memory SQLite database pinned to a single connection.
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//
// The database lives only as long as the process; nothing is written to disk.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/battleships/assets"
)

const memoryDSN = ":memory:"

// openDB opens a private in-memory database.
//
// Every connection to ":memory:" gets its own empty database, so the pool is
// capped at one connection that is never recycled.
func openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", memoryDSN+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// migrate applies embedded migrations in lexical order, each inside its own
// transaction, skipping those already recorded.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	ms, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	for _, m := range ms {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Debug().Str("migration", m.Name).Msg("applied")
	}
	return nil
}
