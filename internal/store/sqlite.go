// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Append / List / Clear against the "players" table.
//
// Notes:
//   - One connection is enough: the game issues one statement at a time
//     from its event loop, and it keeps SQLite's locking trivial.
//   - Clear also removes the sqlite_sequence row so ids restart at 1.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// SQLite persists records in a local database file.
type SQLite struct {
	db   *sql.DB
	path string
}

// Open opens (and creates if missing) the results database at path and
// makes sure the schema exists. Failures here are fatal for the caller.
func Open(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}
	db, err := openDB(path)
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := migrate(db, migrationsFS); err != nil {
		_ = db.Close()
		return nil, storageErr("migrate", err)
	}
	log.Debug().Str("path", path).Msg("results database ready")
	return &SQLite{db: db, path: path}, nil
}

// openDB opens a SQLite database file.
//
//   - Ensures the parent directory exists for relative paths (e.g. ./data/game.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Pins the pool to a single connection.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

// migrate applies SQL migrations from the embedded sql directory.
//
//   - Uses a _migrations table to track applied files.
//   - Executes each *.sql file in lexical order, each in its own transaction.
//   - Skips files already recorded.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Append inserts one result row and returns it with its new id.
func (s *SQLite) Append(ctx context.Context, r Record) (Record, error) {
	r, err := validate(r)
	if err != nil {
		return Record{}, err
	}
	if s.db == nil {
		return Record{}, storageErr("append", errClosed)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO players (name, attempts, guessed_number) VALUES (?, ?, ?)`,
		r.PlayerName, r.Attempts, r.GuessedNumber,
	)
	if err != nil {
		return Record{}, storageErr("append", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, storageErr("append", err)
	}
	r.ID = id
	log.Debug().Int64("id", id).Str("player", r.PlayerName).Int("attempts", r.Attempts).Msg("result saved")
	return r, nil
}

// List fetches every row in id order.
func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	if s.db == nil {
		return nil, storageErr("list", errClosed)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, attempts, guessed_number FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.PlayerName, &r.Attempts, &r.GuessedNumber); err != nil {
			return nil, storageErr("list", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return out, nil
}

// Clear deletes every row and resets the AUTOINCREMENT sequence in one
// transaction; either both happen or neither does.
func (s *SQLite) Clear(ctx context.Context) error {
	if s.db == nil {
		return storageErr("clear", errClosed)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("clear", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return storageErr("clear", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name='players'`); err != nil {
		return storageErr("clear", err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr("clear", err)
	}
	log.Info().Str("path", s.path).Msg("results cleared")
	return nil
}

// Close closes the database handle. Later calls are no-ops.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
