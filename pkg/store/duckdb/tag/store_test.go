package tag

import (
	"context"
	"database/sql"
	"testing"

	"github.com/de-tools/cost-lens/pkg/models/store"
	"github.com/de-tools/cost-lens/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func TestTagStore_InsertAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	created, err := f.store.Insert(ctx, store.Tag{
		Name:        "Production",
		Description: "Customer facing workloads",
		Color:       "#3FA2C8",
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	bare, err := f.store.Insert(ctx, store.Tag{Name: "Experimental"})
	require.NoError(t, err)
	assert.Greater(t, bare.ID, created.ID)

	tags, err := f.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Production", tags[0].Name)
	assert.Equal(t, "#3FA2C8", tags[0].Color)
	assert.Equal(t, "Experimental", tags[1].Name)
	assert.Empty(t, tags[1].Description)
}

func TestTagStore_Links(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("assigning twice leaves one link", func(t *testing.T) {
		require.NoError(t, f.store.AssignLink(ctx, 1, 2))
		require.NoError(t, f.store.AssignLink(ctx, 1, 2))

		links, err := f.store.ListLinks(ctx)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, int64(1), links[0].ApplicationID)
		assert.Equal(t, int64(2), links[0].TagID)
	})

	t.Run("removing a missing pair is a no-op", func(t *testing.T) {
		require.NoError(t, f.store.RemoveLink(ctx, 5, 9))

		links, err := f.store.ListLinks(ctx)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("remove deletes the link", func(t *testing.T) {
		require.NoError(t, f.store.RemoveLink(ctx, 1, 2))

		links, err := f.store.ListLinks(ctx)
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
