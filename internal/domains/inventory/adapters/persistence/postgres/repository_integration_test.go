//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logitrack/logitrack/internal/domains/inventory/domain"
	"github.com/logitrack/logitrack/internal/domains/inventory/ports"
	"github.com/logitrack/logitrack/internal/platform/postgres/pgtest"
)

func mustItem(t *testing.T, id int64, name string) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(id, name, 10, "Aisle 1")
	require.NoError(t, err)
	return item
}

func TestRepository_InsertGetAndDuplicate(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()

	saved, err := repo.Insert(ctx, mustItem(t, 1, "Widget"))
	require.NoError(t, err)
	assert.Equal(t, "Widget", saved.Name)

	fetched, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, saved, fetched)

	_, err = repo.Insert(ctx, mustItem(t, 1, "Other"))
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)
}

func TestRepository_ListIsOrderedByID(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	for _, id := range []int64{3, 1, 2} {
		_, err := repo.Insert(ctx, mustItem(t, id, "Item"))
		require.NoError(t, err)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{items[0].ID, items[1].ID, items[2].ID})
}

func TestRepository_DeleteAndExists(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	_, err := repo.Insert(ctx, mustItem(t, 7, "Widget"))
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, 7)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, 7))
	exists, err = repo.Exists(ctx, 7)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repo.Delete(ctx, 7), ports.ErrNotFound)
	_, err = repo.GetByID(ctx, 7)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_MissingIDsAndNames(t *testing.T) {
	repo := NewRepository(pgtest.Start(t))
	ctx := context.Background()
	_, err := repo.Insert(ctx, mustItem(t, 1, "Widget"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, mustItem(t, 2, "Gadget"))
	require.NoError(t, err)

	missing, err := repo.MissingIDs(ctx, []int64{2, 99, 1, 98})
	require.NoError(t, err)
	assert.Equal(t, []int64{99, 98}, missing)

	names, err := repo.Names(ctx, []int64{1, 2, 99})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Widget", 2: "Gadget"}, names)
}
