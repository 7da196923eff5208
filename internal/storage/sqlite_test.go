package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepoCreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewSQLiteRepo(dir)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat(filepath.Join(dir, sqliteFileName))
	assert.NoError(t, err)
}

func TestSQLiteRepoPersistsAcrossReopen(t *testing.T) {
	useCountingClock(t)
	dir := t.TempDir()

	repo, err := NewSQLiteRepo(dir)
	require.NoError(t, err)
	created, err := repo.Create(samplePayload())
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepo(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(created.UID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestSQLiteRepoSoftDeletedRowSurvivesReopen(t *testing.T) {
	useCountingClock(t)
	dir := t.TempDir()

	repo, err := NewSQLiteRepo(dir)
	require.NoError(t, err)
	created, err := repo.Create(samplePayload())
	require.NoError(t, err)
	require.NoError(t, repo.Delete(created.UID))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepo(dir)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	got, err := reopened.Get(created.UID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestSQLiteRepoSchemaIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		repo, err := NewSQLiteRepo(dir)
		require.NoError(t, err)
		require.NoError(t, repo.Close())
	}
}

func TestSQLiteRepoBlobColumnsHoldJSON(t *testing.T) {
	useCountingClock(t)
	repo, err := NewSQLiteRepo(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()

	created, err := repo.Create(samplePayload())
	require.NoError(t, err)

	var tagsJSON, milestonesJSON string
	row := repo.db.QueryRow(
		"SELECT tags_json, milestones_json FROM homeworks WHERE uid = ?", created.UID)
	require.NoError(t, row.Scan(&tagsJSON, &milestonesJSON))
	assert.JSONEq(t, `["school", "writing"]`, tagsJSON)
	assert.JSONEq(t, `[[50, "outline"]]`, milestonesJSON)
}

func TestSQLiteRepoFailedDeleteRollsBack(t *testing.T) {
	useCountingClock(t)
	repo, err := NewSQLiteRepo(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()

	created, err := repo.Create(samplePayload())
	require.NoError(t, err)

	require.True(t, IsNotFound(repo.Delete("no-such-uid")))

	got, err := repo.Get(created.UID)
	require.NoError(t, err)
	assert.False(t, got.Deleted)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}
