package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipebook/internal/model"
	"github.com/forkful/recipebook/internal/testdb"
)

func TestUserCreateAndLookups(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	user := &model.User{
		Name:       "Ada",
		Email:      "ada@example.com",
		Provider:   "google",
		ProviderID: "g-123",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byProvider, err := repo.FindByProvider(ctx, "google", "g-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byProvider.ID)
}

func TestUserLookupNotFound(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByProvider(ctx, "google", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserSaveBackfillsProviderLinkage(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	user := &model.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	user.Provider = "google"
	user.ProviderID = "g-123"
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.FindByProvider(ctx, "google", "g-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}
