package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutorly/internal/styles"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users_data.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func sampleRecord() Record {
	now := time.Date(2026, 3, 1, 14, 30, 5, 0, time.UTC)
	return Record{
		LearningStyle: styles.Practical,
		Points:        3,
		History: []Turn{
			NewTurn(RoleHuman, "what is gravity", now),
			NewTurn(RoleAssistant, "a force of attraction", now),
		},
		StruggledTopics: []string{"gravity"},
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := s.Get("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFileIsEmpty(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, ok, err := s.Get("alice")
	require.NoError(t, err)
	assert.False(t, ok)

	// A Put over the corrupt file must succeed and leave valid JSON.
	require.NoError(t, s.Put("alice", sampleRecord()))
	got, ok, err := s.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleRecord(), got)
}

func TestFileStore_PutThenGetRoundTrips(t *testing.T) {
	s, _ := newTestStore(t)
	rec := sampleRecord()

	require.NoError(t, s.Put("alice", rec))

	got, ok, err := s.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestFileStore_SaveLoadIdempotent(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.Put("alice", sampleRecord()))

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// Writing an unmodified loaded record reproduces equivalent data.
	got, ok, err := s.Get("alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Put("alice", got))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestFileStore_PutPreservesOtherUsers(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Put("alice", sampleRecord()))
	require.NoError(t, s.Put("bob", Record{LearningStyle: styles.Theory}))

	_, ok, err := s.Get("alice")
	require.NoError(t, err)
	assert.True(t, ok, "writing bob must not drop alice")
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.Put("alice", sampleRecord()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestFileStore_EmptyPathRejected(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
