package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetrack/duetrack/internal/model"
)

func TestJSONRepoInitializesEmptyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	repo, err := NewJSONRepo(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	records, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONRepoFileLayout(t *testing.T) {
	useCountingClock(t)
	repo, err := NewJSONRepo(t.TempDir())
	require.NoError(t, err)

	created, err := repo.Create(samplePayload())
	require.NoError(t, err)

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)

	entry := raw[0]
	for _, field := range []string{
		"uid", "name", "due_text", "difficulty", "progress",
		"tags", "milestones", "deleted", "created_at", "updated_at",
		"schema_version",
	} {
		assert.Contains(t, entry, field)
	}
	assert.JSONEq(t, `"`+created.UID+`"`, string(entry["uid"]))
	// Milestones persist as [percentage, label] pairs.
	assert.JSONEq(t, `[[50, "outline"]]`, string(entry["milestones"]))
	assert.JSONEq(t, `1`, string(entry["schema_version"]))
}

func TestJSONRepoRoundTripThroughReopen(t *testing.T) {
	useCountingClock(t)
	dir := t.TempDir()

	repo, err := NewJSONRepo(dir)
	require.NoError(t, err)
	created, err := repo.Create(samplePayload())
	require.NoError(t, err)

	reopened, err := NewJSONRepo(dir)
	require.NoError(t, err)
	got, err := reopened.Get(created.UID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestJSONRepoCorruptFileFallsBackToEmpty(t *testing.T) {
	// A file that fails to parse reads as an empty collection. This trades
	// strictness for availability and can mask corruption; the repo logs a
	// warning but does not surface an error.
	repo, err := NewJSONRepo(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0644))

	records, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = repo.Get("anything")
	assert.True(t, IsNotFound(err))
}

func TestJSONRepoCreateOverCorruptFileStartsFresh(t *testing.T) {
	useCountingClock(t)
	repo, err := NewJSONRepo(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0644))

	created, err := repo.Create(samplePayload())
	require.NoError(t, err)

	records, err := repo.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.UID, records[0].UID)
}

func TestJSONRepoFailedPatchLeavesFileBytesUnchanged(t *testing.T) {
	useCountingClock(t)
	repo, err := NewJSONRepo(t.TempDir())
	require.NoError(t, err)
	_, err = repo.Create(samplePayload())
	require.NoError(t, err)

	before, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	progress := 99
	_, err = repo.Patch("no-such-uid", model.Patch{Progress: &progress})
	assert.True(t, IsNotFound(err))

	after, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestJSONRepoMissingDirUnavailable(t *testing.T) {
	repo, err := NewJSONRepo(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Remove(repo.Path()))

	_, err = repo.List()
	assert.True(t, IsUnavailable(err))
}
