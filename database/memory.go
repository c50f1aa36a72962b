// path: database/memory.go
package database

import (
	"context"
	"sync"

	"github.com/kevinke3/loket/models"
)

// MemoryStore keeps encoded documents in a map. Records are copied through
// JSON on every load and save so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[Collection][]byte
	counters map[Collection]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     map[Collection][]byte{},
		counters: map[Collection]int{},
	}
}

func (s *MemoryStore) LoadMissing(ctx context.Context) ([]models.MissingPerson, error) {
	return loadMemory[models.MissingPerson](ctx, s, MissingPersons)
}

func (s *MemoryStore) LoadFound(ctx context.Context) ([]models.FoundPerson, error) {
	return loadMemory[models.FoundPerson](ctx, s, FoundPersons)
}

func (s *MemoryStore) SaveMissing(ctx context.Context, records []models.MissingPerson) error {
	return saveMemory(ctx, s, MissingPersons, records)
}

func (s *MemoryStore) SaveFound(ctx context.Context, records []models.FoundPerson) error {
	return saveMemory(ctx, s, FoundPersons, records)
}

func (s *MemoryStore) AppendMissing(ctx context.Context, p models.MissingPerson) (models.MissingPerson, error) {
	if err := ctx.Err(); err != nil {
		return models.MissingPerson{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := decodeDocument[models.MissingPerson](MissingPersons, s.docs[MissingPersons])
	if err != nil {
		return models.MissingPerson{}, err
	}
	p.ID = nextID(s.counters[MissingPersons], records)

	data, err := encodeDocument(append(records, p))
	if err != nil {
		return models.MissingPerson{}, err
	}
	s.counters[MissingPersons] = p.ID
	s.docs[MissingPersons] = data
	return p, nil
}

func (s *MemoryStore) Exists(ctx context.Context, c Collection) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[c]
	return ok, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func loadMemory[T any](ctx context.Context, s *MemoryStore, c Collection) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data := s.docs[c]
	s.mu.RUnlock()
	return decodeDocument[T](c, data)
}

func saveMemory[T any](ctx context.Context, s *MemoryStore, c Collection, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[c] = data
	s.mu.Unlock()
	return nil
}
