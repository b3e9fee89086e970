package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	type payload struct {
		Name  string         `json:"name"`
		Count int            `json:"count"`
		Tags  map[string]int `json:"tags"`
	}
	in := payload{Name: "morning", Count: 3, Tags: map[string]int{"Monday": 2}}

	require.NoError(t, s.Save(ctx, "draft", in))

	var out payload
	found, err := s.Load(ctx, "draft", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestLoadAbsentKey(t *testing.T) {
	s := newTestStore(t)

	var out map[string]int
	found, err := s.Load(context.Background(), "nothing_here", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadMalformedFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	out := map[string]int{"default": 1}
	found, err := s.Load(context.Background(), "broken", &out)
	require.NoError(t, err, "malformed state must never surface as an error")
	assert.False(t, found)
	assert.Equal(t, map[string]int{"default": 1}, out)
}

func TestLoadWrongShapeFallsBackToDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "typed", "just a string"))

	var out struct{ N int }
	found, err := s.Load(ctx, "typed", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadUnknownVersionFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "future.json"), []byte(`{"version":2,"data":7}`), 0o644))

	var out int
	found, err := s.Load(context.Background(), "future", &out)
	require.NoError(t, err)
	assert.False(t, found, "an unknown schema version reads as absent")
	assert.Zero(t, out)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, KeyCurrentUser, map[string]string{"email": "a@b.com"}))
	require.NoError(t, s.Delete(ctx, KeyCurrentUser))

	var out map[string]string
	found, err := s.Load(ctx, KeyCurrentUser, &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is not an error.
	assert.NoError(t, s.Delete(ctx, KeyCurrentUser))
}

func TestEnvelopeCarriesSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "versioned", 42))

	raw, err := os.ReadFile(filepath.Join(dir, "versioned.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":1`)
}
