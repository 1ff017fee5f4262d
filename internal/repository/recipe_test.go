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

func newRecipe(owner *uuid.UUID) *model.Recipe {
	return &model.Recipe{
		Title:        "Cake",
		Description:  "a cake",
		Ingredients:  model.JSONStringArray{"flour", "sugar"},
		Instructions: model.JSONStringArray{"mix", "bake"},
		PrepTime:     10,
		CookTime:     20,
		Difficulty:   model.DifficultyEasy,
		CreatedBy:    owner,
	}
}

func TestRecipeCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := NewRecipeRepository(testdb.Open(t))
	ctx := context.Background()

	recipe := newRecipe(nil)
	require.NoError(t, repo.Create(ctx, recipe))

	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.False(t, recipe.CreatedAt.IsZero())

	got, err := repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)
	assert.Equal(t, "Cake", got.Title)
	assert.Equal(t, model.JSONStringArray{"flour", "sugar"}, got.Ingredients)
	assert.Equal(t, model.DifficultyEasy, got.Difficulty)
}

func TestRecipeFindByIDNotFound(t *testing.T) {
	repo := NewRecipeRepository(testdb.Open(t))
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeFindAll(t *testing.T) {
	repo := NewRecipeRepository(testdb.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRecipe(nil)))
	require.NoError(t, repo.Create(ctx, newRecipe(nil)))

	recipes, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestRecipeSaveReplacesMutableFields(t *testing.T) {
	repo := NewRecipeRepository(testdb.Open(t))
	ctx := context.Background()

	owner := uuid.New()
	recipe := newRecipe(&owner)
	require.NoError(t, repo.Create(ctx, recipe))
	createdAt := recipe.CreatedAt

	recipe.Title = "Better Cake"
	recipe.Ingredients = model.JSONStringArray{"flour", "sugar", "eggs"}
	recipe.Difficulty = model.DifficultyHard
	require.NoError(t, repo.Save(ctx, recipe))

	got, err := repo.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Better Cake", got.Title)
	assert.Equal(t, model.DifficultyHard, got.Difficulty)
	assert.Equal(t, model.JSONStringArray{"flour", "sugar", "eggs"}, got.Ingredients)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, owner, *got.CreatedBy)
	assert.WithinDuration(t, createdAt, got.CreatedAt, 0)
}

func TestRecipeDelete(t *testing.T) {
	repo := NewRecipeRepository(testdb.Open(t))
	ctx := context.Background()

	recipe := newRecipe(nil)
	require.NoError(t, repo.Create(ctx, recipe))
	require.NoError(t, repo.Delete(ctx, recipe.ID))

	_, err := repo.FindByID(ctx, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete of the same id reports not found, not a crash.
	assert.ErrorIs(t, repo.Delete(ctx, recipe.ID), ErrNotFound)
}
