package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipebook/internal/model"
	"github.com/forkful/recipebook/internal/repository"
	"github.com/forkful/recipebook/internal/testdb"
)

func googleProfile() Profile {
	return Profile{
		Provider:   "google",
		ProviderID: "g-123",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
	}
}

func TestResolveUserCreatesOnFirstLogin(t *testing.T) {
	users := repository.NewUserRepository(testdb.Open(t))
	svc := NewAuthService(users)
	ctx := context.Background()

	user, err := svc.ResolveUser(ctx, googleProfile())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "google", user.Provider)
	assert.Equal(t, "g-123", user.ProviderID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestResolveUserDeduplicatesRepeatedLogins(t *testing.T) {
	users := repository.NewUserRepository(testdb.Open(t))
	svc := NewAuthService(users)
	ctx := context.Background()

	first, err := svc.ResolveUser(ctx, googleProfile())
	require.NoError(t, err)

	second, err := svc.ResolveUser(ctx, googleProfile())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestResolveUserMatchesByEmailAndBackfillsLinkage(t *testing.T) {
	users := repository.NewUserRepository(testdb.Open(t))
	svc := NewAuthService(users)
	ctx := context.Background()

	// Account created before provider login existed.
	existing := &model.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, users.Create(ctx, existing))

	user, err := svc.ResolveUser(ctx, googleProfile())
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "google", user.Provider)
	assert.Equal(t, "g-123", user.ProviderID)

	// Linkage is persisted, so the provider lookup now succeeds.
	linked, err := users.FindByProvider(ctx, "google", "g-123")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
}

func TestResolveUserWithoutEmail(t *testing.T) {
	users := repository.NewUserRepository(testdb.Open(t))
	svc := NewAuthService(users)
	ctx := context.Background()

	user, err := svc.ResolveUser(ctx, Profile{Provider: "google", ProviderID: "g-999"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", user.Name)
	assert.Equal(t, "no-email-g-999@google", user.Email)
}
