// Package service holds business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/forkful/recipebook/internal/model"
	"github.com/forkful/recipebook/internal/repository"
)

// Profile is the identity payload the OAuth provider vouches for.
type Profile struct {
	Provider   string
	ProviderID string
	Name       string
	Email      string
}

// AuthService resolves external identities to local users.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// ResolveUser maps a provider profile to a local user.
//
// Lookup order: provider+providerId first, then email so a returning user
// never gets a duplicate account. An email-matched user missing provider
// linkage has it backfilled. Otherwise a new user is created.
func (s *AuthService) ResolveUser(ctx context.Context, profile Profile) (*model.User, error) {
	user, err := s.users.FindByProvider(ctx, profile.Provider, profile.ProviderID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if profile.Email != "" {
		user, err = s.users.FindByEmail(ctx, profile.Email)
		if err == nil {
			if user.Provider == "" || user.ProviderID == "" {
				user.Provider = profile.Provider
				user.ProviderID = profile.ProviderID
				if err := s.users.Save(ctx, user); err != nil {
					return nil, err
				}
			}
			return user, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	user = &model.User{
		Name:       profile.Name,
		Email:      profile.Email,
		Provider:   profile.Provider,
		ProviderID: profile.ProviderID,
	}
	if user.Name == "" {
		user.Name = "Unknown"
	}
	if user.Email == "" {
		// Providers may withhold the email scope; keep the unique index
		// satisfied with a provider-derived placeholder.
		user.Email = fmt.Sprintf("no-email-%s@%s", profile.ProviderID, profile.Provider)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
