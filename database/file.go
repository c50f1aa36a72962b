// path: database/file.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/kevinke3/loket/models"
)

const countersFile = "counters.json"

// FileStore keeps each collection in <dir>/<collection>.json and the ID
// counters in <dir>/counters.json. Writes go through a temp file and a rename
// so a reader never sees half a document.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: filepath.Clean(dir)}, nil
}

// Path returns the backing file of a collection.
func (s *FileStore) Path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

func (s *FileStore) LoadMissing(ctx context.Context) ([]models.MissingPerson, error) {
	return loadFile[models.MissingPerson](ctx, s.Path(MissingPersons), MissingPersons)
}

func (s *FileStore) LoadFound(ctx context.Context) ([]models.FoundPerson, error) {
	return loadFile[models.FoundPerson](ctx, s.Path(FoundPersons), FoundPersons)
}

func (s *FileStore) SaveMissing(ctx context.Context, records []models.MissingPerson) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveFile(s.Path(MissingPersons), records)
}

func (s *FileStore) SaveFound(ctx context.Context, records []models.FoundPerson) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveFile(s.Path(FoundPersons), records)
}

func (s *FileStore) AppendMissing(ctx context.Context, p models.MissingPerson) (models.MissingPerson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadFile[models.MissingPerson](ctx, s.Path(MissingPersons), MissingPersons)
	if err != nil {
		return models.MissingPerson{}, err
	}
	counters, err := s.loadCounters()
	if err != nil {
		return models.MissingPerson{}, err
	}

	p.ID = nextID(counters[MissingPersons], records)
	counters[MissingPersons] = p.ID

	// counter first: a crash between the two writes skips an id, never reuses one
	if err := s.saveCounters(counters); err != nil {
		return models.MissingPerson{}, err
	}
	if err := saveFile(s.Path(MissingPersons), append(records, p)); err != nil {
		return models.MissingPerson{}, err
	}
	return p, nil
}

func (s *FileStore) Exists(ctx context.Context, c Collection) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(c))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", c, err)
	}
}

func (s *FileStore) Close(context.Context) error { return nil }

func (s *FileStore) loadCounters() (map[Collection]int, error) {
	counters := map[Collection]int{}
	data, err := os.ReadFile(filepath.Join(s.dir, countersFile))
	if errors.Is(err, fs.ErrNotExist) {
		return counters, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read counters: %w", err)
	}
	if err := json.Unmarshal(data, &counters); err != nil {
		return nil, fmt.Errorf("%w: counters: %v", ErrCorrupt, err)
	}
	return counters, nil
}

func (s *FileStore) saveCounters(counters map[Collection]int) error {
	data, err := json.MarshalIndent(counters, "", "  ")
	if err != nil {
		return fmt.Errorf("encode counters: %w", err)
	}
	return writeAtomic(filepath.Join(s.dir, countersFile), data)
}

func loadFile[T any](ctx context.Context, path string, c Collection) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	return decodeDocument[T](c, data)
}

func saveFile[T any](path string, records []T) error {
	data, err := encodeDocument(records)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
