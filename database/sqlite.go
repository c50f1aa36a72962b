// path: database/sqlite.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kevinke3/loket/models"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS collections (
  name       TEXT PRIMARY KEY,
  document   TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS counters (
  name  TEXT PRIMARY KEY,
  value INTEGER NOT NULL
);`

// SQLiteStore keeps each collection as one JSON document row, so a save is
// still a whole-document overwrite.
type SQLiteStore struct {
	sqlDB *sql.DB
	mu    sync.Mutex
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) LoadMissing(ctx context.Context) ([]models.MissingPerson, error) {
	return loadSQLite[models.MissingPerson](ctx, s.sqlDB, MissingPersons)
}

func (s *SQLiteStore) LoadFound(ctx context.Context) ([]models.FoundPerson, error) {
	return loadSQLite[models.FoundPerson](ctx, s.sqlDB, FoundPersons)
}

func (s *SQLiteStore) SaveMissing(ctx context.Context, records []models.MissingPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveSQLite(ctx, s.sqlDB, MissingPersons, records)
}

func (s *SQLiteStore) SaveFound(ctx context.Context, records []models.FoundPerson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveSQLite(ctx, s.sqlDB, FoundPersons, records)
}

func (s *SQLiteStore) AppendMissing(ctx context.Context, p models.MissingPerson) (models.MissingPerson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return models.MissingPerson{}, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	records, err := loadSQLite[models.MissingPerson](ctx, tx, MissingPersons)
	if err != nil {
		return models.MissingPerson{}, err
	}
	var counter int
	err = tx.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, string(MissingPersons)).Scan(&counter)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.MissingPerson{}, fmt.Errorf("read counter: %w", err)
	}

	p.ID = nextID(counter, records)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		string(MissingPersons), p.ID,
	); err != nil {
		return models.MissingPerson{}, fmt.Errorf("write counter: %w", err)
	}
	if err := saveSQLite(ctx, tx, MissingPersons, append(records, p)); err != nil {
		return models.MissingPerson{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.MissingPerson{}, fmt.Errorf("commit append: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, c Collection) (bool, error) {
	var n int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections WHERE name = ?`, string(c)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", c, err)
	}
	return n > 0, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close(context.Context) error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func loadSQLite[T any](ctx context.Context, q queryer, c Collection) ([]T, error) {
	var document string
	err := q.QueryRowContext(ctx, `SELECT document FROM collections WHERE name = ?`, string(c)).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	return decodeDocument[T](c, []byte(document))
}

func saveSQLite[T any](ctx context.Context, q queryer, c Collection, records []T) error {
	data, err := encodeDocument(records)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO collections (name, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		string(c), string(data), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}
