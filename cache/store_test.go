package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrate_CreatesAnnotationsTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='annotations'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "annotations", name)

	var version int
	require.NoError(t, db.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, len(All), version)
}

func TestMigrate_SkipsAlreadyAppliedMigrations(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var version int
	require.NoError(t, db.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, len(All), version)
}

func TestStore_RecordLookup(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, ok, err := store.Lookup(ctx, "src/Card.jsx", "data-testid")
	require.NoError(t, err)
	assert.False(t, ok)

	// fingerprints use the full uint64 range
	entry := &Entry{Path: "src/Card.jsx", Attribute: "data-testid", Hash: 1<<63 + 42, Tags: 3}
	require.NoError(t, store.Record(ctx, entry))

	found, ok, err := store.Lookup(ctx, "src/Card.jsx", "data-testid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Hash, found.Hash)
	assert.Equal(t, 3, found.Tags)

	_, ok, err = store.Lookup(ctx, "src/Card.jsx", "data-qa")
	require.NoError(t, err)
	assert.False(t, ok, "entries are keyed by attribute name")

	entry.Hash = 7
	entry.Tags = 1
	require.NoError(t, store.Record(ctx, entry))
	found, ok, err = store.Lookup(ctx, "src/Card.jsx", "data-testid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 7, found.Hash)
	assert.Equal(t, 1, found.Tags)

	require.NoError(t, store.Forget(ctx, "src/Card.jsx"))
	_, ok, err = store.Lookup(ctx, "src/Card.jsx", "data-testid")
	require.NoError(t, err)
	assert.False(t, ok)
}
