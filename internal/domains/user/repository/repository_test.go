package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/infrastructure/database/dbtest"
)

func TestPostgresRepository_Upsert(t *testing.T) {
	pool := dbtest.Open(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	image := "https://cdn.example.com/me.png"
	created, err := repo.UpsertByEmail(ctx, model.UpsertUserRequest{
		Email: "author@example.com", Name: "Author", Image: &image, Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, created.Role)

	updated, err := repo.UpsertByEmail(ctx, model.UpsertUserRequest{
		Email: "author@example.com", Name: "Renamed", Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Image)
	assert.Equal(t, image, *updated.Image)

	byEmail, err := repo.GetByEmail(ctx, "AUTHOR@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "author@example.com", byID.Email)
}

func TestPostgresRepository_NotFound(t *testing.T) {
	repo := NewPostgresRepository(dbtest.Open(t))

	_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
