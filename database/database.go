// path: database/database.go

// Package database persists the missing and found person collections. Each
// collection is read and written as a whole document; only the ID counter is
// kept separately so that appends never reuse an identifier.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevinke3/loket/config"
	"github.com/kevinke3/loket/models"

	"go.uber.org/zap"
)

// Collection names one persisted document.
type Collection string

const (
	MissingPersons Collection = "missing_persons"
	FoundPersons   Collection = "found_persons"
)

var (
	// ErrCorrupt wraps a backing document that is not a JSON array of records.
	ErrCorrupt = errors.New("corrupt collection document")
	// ErrNotFound is returned when a record lookup has no match.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownBackend is returned by Open for an unsupported store name.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store is the record store handed to the request handlers.
//
// Load methods return an empty slice when the collection does not exist yet.
// Save methods overwrite the whole collection. AppendMissing is the only
// read-modify-write path and is serialized by every implementation.
type Store interface {
	LoadMissing(ctx context.Context) ([]models.MissingPerson, error)
	SaveMissing(ctx context.Context, records []models.MissingPerson) error
	LoadFound(ctx context.Context) ([]models.FoundPerson, error)
	SaveFound(ctx context.Context, records []models.FoundPerson) error

	// AppendMissing assigns the next ID to p, appends it and persists the
	// collection. The stored record is returned.
	AppendMissing(ctx context.Context, p models.MissingPerson) (models.MissingPerson, error)

	// Exists reports whether the collection has ever been written.
	Exists(ctx context.Context, c Collection) (bool, error)

	Close(ctx context.Context) error
}

// Open builds the store selected by cfg.Store.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Store {
	case config.StoreFile:
		s, err = NewFileStore(cfg.DataDir)
	case config.StoreSQLite:
		s, err = OpenSQLite(ctx, cfg.SQLitePath)
	case config.StoreMongo:
		s, err = ConnectMongo(ctx, cfg.Mongo, logger)
	case config.StoreMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// FindMissing returns the record with the given id.
func FindMissing(ctx context.Context, s Store, id int) (models.MissingPerson, error) {
	records, err := s.LoadMissing(ctx)
	if err != nil {
		return models.MissingPerson{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.MissingPerson{}, ErrNotFound
}

// nextID returns the identifier for a new record. The persisted counter wins
// unless the data already holds a larger id (older documents written without
// a counter).
func nextID(counter int, records []models.MissingPerson) int {
	for _, r := range records {
		if r.ID > counter {
			counter = r.ID
		}
	}
	return counter + 1
}

// decodeDocument parses a whole collection document. Absent or null documents
// decode to an empty slice.
func decodeDocument[T any](c Collection, data []byte) ([]T, error) {
	out := []T{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// encodeDocument renders a collection with 2-space indentation. A nil slice
// is written as an empty array.
func encodeDocument[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return data, nil
}
