package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/recipebook/internal/apperror"
	"github.com/forkful/recipebook/internal/middleware"
	"github.com/forkful/recipebook/internal/model"
	"github.com/forkful/recipebook/internal/repository"
	"github.com/forkful/recipebook/internal/validation"
)

// RecipeHandler serves the recipe CRUD endpoints.
type RecipeHandler struct {
	recipes repository.RecipeRepository
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(recipes repository.RecipeRepository) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes mounts the recipe routes. Reads are public; create
// requires an identity; update and delete enforce ownership inside the
// handler so a missing recipe 404s before any auth check.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/:id",
			validation.Validate(validation.Schemas{Params: validation.RecipeIDParam}),
			h.Get)
		recipes.POST("",
			validation.Validate(validation.Schemas{Body: validation.RecipeBody}),
			middleware.RequireAuth(),
			h.Create)
		recipes.PUT("/:id",
			validation.Validate(validation.Schemas{Params: validation.RecipeIDParam, Body: validation.RecipeBody}),
			h.Update)
		recipes.DELETE("/:id",
			validation.Validate(validation.Schemas{Params: validation.RecipeIDParam}),
			h.Delete)
	}
}

// fail hands the error to the terminal responder and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// List returns every recipe in persistence order.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.recipes.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

// Get returns one recipe by id.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.recipes.FindByID(c.Request.Context(), validation.RecipeIDFrom(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, apperror.RecipeNotFound())
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Create stores a new recipe owned by the authenticated user and returns
// it with the repository-assigned id and timestamp.
func (h *RecipeHandler) Create(c *gin.Context) {
	input := validation.RecipeInputFrom(c)
	user, ok := middleware.UserFrom(c)
	if !ok {
		fail(c, apperror.AuthRequired())
		return
	}

	recipe := &model.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  model.JSONStringArray(input.Ingredients),
		Instructions: model.JSONStringArray(input.Instructions),
		PrepTime:     *input.PrepTime,
		CookTime:     *input.CookTime,
		Difficulty:   model.Difficulty(input.Difficulty),
		CreatedBy:    &user.ID,
	}
	if err := h.recipes.Create(c.Request.Context(), recipe); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// Update replaces every mutable field of an owned recipe. Responds 204
// with no body; callers re-fetch to observe the new state.
func (h *RecipeHandler) Update(c *gin.Context) {
	recipe, ok := h.authorizeOwner(c)
	if !ok {
		return
	}

	input := validation.RecipeInputFrom(c)
	recipe.Title = input.Title
	recipe.Description = input.Description
	recipe.Ingredients = model.JSONStringArray(input.Ingredients)
	recipe.Instructions = model.JSONStringArray(input.Instructions)
	recipe.PrepTime = *input.PrepTime
	recipe.CookTime = *input.CookTime
	recipe.Difficulty = model.Difficulty(input.Difficulty)

	if err := h.recipes.Save(c.Request.Context(), recipe); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes an owned recipe.
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipe, ok := h.authorizeOwner(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), recipe.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, apperror.RecipeNotFound())
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// authorizeOwner runs the ownership check for mutations. The order is a
// contract: existence (404) before identity (401) before ownership (403).
func (h *RecipeHandler) authorizeOwner(c *gin.Context) (*model.Recipe, bool) {
	recipe, err := h.recipes.FindByID(c.Request.Context(), validation.RecipeIDFrom(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, apperror.RecipeNotFound())
			return nil, false
		}
		fail(c, err)
		return nil, false
	}

	user, ok := middleware.UserFrom(c)
	if !ok {
		fail(c, apperror.AuthRequired())
		return nil, false
	}

	if !recipe.OwnedBy(user.ID) {
		fail(c, apperror.Forbidden())
		return nil, false
	}
	return recipe, true
}
