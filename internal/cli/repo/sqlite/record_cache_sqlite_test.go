package sqlite

import (
	"MoodKeeper/internal/journal"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *RecordCacheSQLite {
	t.Helper()
	r, path, err := OpenForUser(t.TempDir(), "alice")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Migrate())
	// миграция идемпотентна
	require.NoError(t, r.Migrate())
	_, err = os.Stat(path)
	require.NoError(t, err)
	return r
}

func TestOpenForUser_RejectsBadInput(t *testing.T) {
	base := t.TempDir()
	_, _, err := OpenForUser(base, "")
	assert.Error(t, err)
	_, _, err = OpenForUser(base, "../evil")
	assert.Error(t, err)
	_, _, err = OpenForUser("", "bob")
	assert.Error(t, err)

	// base - обычный файл
	f := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
	_, _, err = OpenForUser(f, "bob")
	assert.Error(t, err)
}

func TestRecordCache_ReplaceAndList(t *testing.T) {
	r := openTestCache(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	synced, err := r.SyncedAt()
	require.NoError(t, err)
	assert.True(t, synced.IsZero())

	first := []journal.Record{
		{ID: "a", UserID: 1, Category: journal.Health, CategoryValue: "Exercised", PainValue: "Headache", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "b", UserID: 1, Category: journal.Cycle, CategoryValue: "PMS", SeverityValue: "Mild", Content: "meh", CreatedAt: now},
	}
	require.NoError(t, r.Replace(first))

	got, err := r.List()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID) // новые первыми
	assert.Equal(t, first[1], got[0])
	assert.Equal(t, first[0], got[1])

	synced, err = r.SyncedAt()
	require.NoError(t, err)
	assert.False(t, synced.IsZero())

	// повторный Replace полностью заменяет содержимое
	require.NoError(t, r.Replace([]journal.Record{{ID: "c", Category: journal.Sleep, CategoryValue: "Under6h", CreatedAt: now}}))
	got, err = r.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)

	require.NoError(t, r.Replace(nil))
	got, err = r.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordCache_ReplaceDuplicateRollsBack(t *testing.T) {
	r := openTestCache(t)
	now := time.Now().UTC()
	require.NoError(t, r.Replace([]journal.Record{{ID: "keep", Category: journal.Sleep, CreatedAt: now}}))

	err := r.Replace([]journal.Record{
		{ID: "dup", Category: journal.Sleep, CreatedAt: now},
		{ID: "dup", Category: journal.Sleep, CreatedAt: now},
	})
	assert.Error(t, err)

	got, err := r.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}

func TestRecordCache_Purge(t *testing.T) {
	r := openTestCache(t)
	require.NoError(t, r.Replace([]journal.Record{{ID: "a", Category: journal.Sleep, CreatedAt: time.Now().UTC()}}))

	require.NoError(t, r.Purge())

	got, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, got)
	synced, err := r.SyncedAt()
	require.NoError(t, err)
	assert.True(t, synced.IsZero())
}

func TestRecordCache_CloseNil(t *testing.T) {
	var r *RecordCacheSQLite
	assert.NoError(t, r.Close())
}
