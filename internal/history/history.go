package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Discovery is one story log recorded in the journal.
type Discovery struct {
	LogID        uint32
	Source       string
	Session      string
	DiscoveredAt time.Time
}

// Store is a sqlite journal of discovered story logs. Each id is recorded
// once, with the first source that reported it.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS discoveries (
		log_id        INTEGER PRIMARY KEY,
		source        TEXT NOT NULL,
		session       TEXT NOT NULL DEFAULT '',
		discovered_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_discoveries_at ON discoveries(discovered_at);
	`)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordBaseline records ids from a reconciliation run and returns how many
// were not in the journal yet.
func (s *Store) RecordBaseline(ctx context.Context, ids []uint32, source string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO discoveries (log_id, source, session, discovered_at) VALUES (?, ?, '', ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(timeLayout)
	added := 0
	for _, id := range ids {
		res, err := stmt.ExecContext(ctx, int64(id), source, now)
		if err != nil {
			return 0, fmt.Errorf("insert %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

// RecordDiscovery records an id seen live by a watch session and reports
// whether it was new to the journal.
func (s *Store) RecordDiscovery(ctx context.Context, id uint32, session string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO discoveries (log_id, source, session, discovered_at) VALUES (?, 'watch', ?, ?)`,
		int64(id), session, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return false, fmt.Errorf("insert %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// List returns every discovery, oldest first.
func (s *Store) List(ctx context.Context) ([]Discovery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT log_id, source, session, discovered_at FROM discoveries ORDER BY discovered_at, log_id`)
	if err != nil {
		return nil, fmt.Errorf("query discoveries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Discovery
	for rows.Next() {
		var (
			d  Discovery
			id int64
			at string
		)
		if err := rows.Scan(&id, &d.Source, &d.Session, &at); err != nil {
			return nil, fmt.Errorf("scan discovery: %w", err)
		}
		discoveredAt, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse discovery %d time: %w", id, err)
		}
		d.LogID = uint32(id)
		d.DiscoveredAt = discoveredAt
		out = append(out, d)
	}
	return out, rows.Err()
}
