package database

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kevinke3/loket/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestFileStoreDocumentFormat(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, s.SaveMissing(ctx, sampleMissing()))

	data, err := os.ReadFile(s.Path(MissingPersons))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": 1,"), text)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "Sarah Johnson", raw[0]["name"])
	assert.Equal(t, "Northeast", raw[0]["region"])
}

func TestFileStoreAppendPersists(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, s.SaveMissing(ctx, sampleMissing()))

	_, err := s.AppendMissing(ctx, models.MissingPerson{Name: "Jane Doe", Region: "South"})
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path(MissingPersons))
	require.NoError(t, err)
	var raw []models.MissingPerson
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 3)
	assert.Equal(t, 3, raw[2].ID)
	assert.Equal(t, "Jane Doe", raw[2].Name)
	assert.Equal(t, "South", raw[2].Region)

	counters, err := os.ReadFile(filepath.Join(s.dir, countersFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"missing_persons": 3}`, string(counters))
}

func TestFileStoreReadsLegacyDocument(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	// older documents kept the submitted age as a string and may carry
	// fields the record type does not know about
	legacy := `[{"id": 4, "name": "Old Record", "age": "34", "region": "West", "extra": "dropped"}]`
	require.NoError(t, os.WriteFile(s.Path(MissingPersons), []byte(legacy), 0o644))

	got, err := s.LoadMissing(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Old Record", got[0].Name)
	require.NotNil(t, got[0].Age)
	assert.Equal(t, 34, *got[0].Age)

	added, err := s.AppendMissing(ctx, models.MissingPerson{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, 5, added.ID)
}

func TestFileStoreCorruptDocument(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, os.WriteFile(s.Path(FoundPersons), []byte("{not json"), 0o644))

	_, err := s.LoadFound(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStoreNullDocument(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, os.WriteFile(s.Path(FoundPersons), []byte("null"), 0o644))

	got, err := s.LoadFound(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)
	require.NoError(t, s.SaveMissing(ctx, sampleMissing()))
	_, err := s.AppendMissing(ctx, models.MissingPerson{Name: "Jane Doe"})
	require.NoError(t, err)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"missing_persons.json", "counters.json"}, names)
}

func TestNewFileStoreRequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
