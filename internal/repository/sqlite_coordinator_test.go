package repository

import (
	"context"
	"testing"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorRepo_SeededDirectory(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCoordinatorRepo(db)
	ctx := context.Background()

	c, err := repo.GetByID(ctx, "ec-meera")
	require.NoError(t, err)
	assert.Equal(t, "Meera Pillai", c.Name)
	assert.Equal(t, domain.RoleEventCoordinator, c.Role)

	_, err = repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoordinatorRepo_ListByRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCoordinatorRepo(db)
	ctx := context.Background()

	eventCoords, err := repo.ListByRole(ctx, domain.RoleEventCoordinator)
	require.NoError(t, err)
	require.Len(t, eventCoords, 2)
	for _, c := range eventCoords {
		assert.Equal(t, domain.RoleEventCoordinator, c.Role)
	}

	prodCoords, err := repo.ListByRole(ctx, domain.RoleProductionCoordinator)
	require.NoError(t, err)
	assert.Len(t, prodCoords, 2)
}
