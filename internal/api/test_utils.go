package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/internal/model"
	"github.com/forkful/recipebook/internal/repository"
	"github.com/forkful/recipebook/internal/service"
	"github.com/forkful/recipebook/internal/session"
	"github.com/forkful/recipebook/internal/testdb"
)

// testEnv bundles the stores behind a test router so tests can arrange
// fixtures directly.
type testEnv struct {
	db       *gorm.DB
	recipes  repository.RecipeRepository
	users    repository.UserRepository
	sessions session.Store
}

// setupTestRouter builds the full application router over an in-memory
// database and session store.
func setupTestRouter(t *testing.T) (*gin.Engine, *testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	env := &testEnv{
		db:       db,
		recipes:  repository.NewRecipeRepository(db),
		users:    repository.NewUserRepository(db),
		sessions: session.NewMemoryStore(time.Hour),
	}

	logger := zerolog.Nop()
	authService := service.NewAuthService(env.users)
	authHandler := NewAuthHandler(AuthHandlerConfig{
		OAuth: &oauth2.Config{
			ClientID:    "test-client",
			RedirectURL: "http://localhost/auth/google/callback",
		},
		SessionTTL: time.Hour,
	}, authService, env.sessions, logger)

	router := SetupRouter(RouterDeps{
		Recipes:  NewRecipeHandler(env.recipes),
		Auth:     authHandler,
		Health:   NewHealthHandler(db, nil),
		Sessions: env.sessions,
		Users:    env.users,
		Logger:   logger,
	})
	return router, env
}

// createUser stores a user fixture.
func (env *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:       "Test User",
		Email:      email,
		Provider:   "google",
		ProviderID: "g-" + email,
	}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

// login opens a session for user and returns its cookie.
func (env *testEnv) login(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()
	sid, err := env.sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: sid}
}

// createRecipe stores a recipe fixture, optionally owned.
func (env *testEnv) createRecipe(t *testing.T, owner *uuid.UUID) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Title:        "Cake",
		Description:  "a cake",
		Ingredients:  model.JSONStringArray{"flour"},
		Instructions: model.JSONStringArray{"bake"},
		PrepTime:     10,
		CookTime:     20,
		Difficulty:   model.DifficultyEasy,
		CreatedBy:    owner,
	}
	require.NoError(t, env.recipes.Create(context.Background(), recipe))
	return recipe
}
