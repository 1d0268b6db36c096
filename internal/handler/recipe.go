package handler

import (
	"net/http"
	"strconv"

	"pawplan-backend/internal/access"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecipeHandler interface {
	CreateRecipe(c *gin.Context)
	GetRecipes(c *gin.Context)
	GetRecipe(c *gin.Context)
	UpdateRecipe(c *gin.Context)
	DeleteRecipe(c *gin.Context)
}

type recipeHandler struct {
	recipes     repository.RecipeRepository
	dogs        repository.DogRepository
	ingredients repository.IngredientRepository
	logger      *zap.Logger
}

func NewRecipeHandler(recipes repository.RecipeRepository, dogs repository.DogRepository,
	ingredients repository.IngredientRepository, logger *zap.Logger) RecipeHandler {
	return &recipeHandler{recipes: recipes, dogs: dogs, ingredients: ingredients, logger: logger}
}

type RecipeIngredientRequest struct {
	IngredientID int64   `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
}

type CreateRecipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Description  *string                   `json:"description"`
	Instructions string                    `json:"instructions" binding:"required"`
	IsPublic     bool                      `json:"is_public"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" binding:"required"`
	DogIDs       []int64                   `json:"dog_ids" binding:"required"`
}

// checkRecipeInput validates the shared create/update fields and resolves the
// ingredient lines and dog links. Writes the error response and returns false
// when the request cannot proceed.
func (h *recipeHandler) checkRecipeInput(c *gin.Context, caller access.Caller,
	name, instructions string, ingredients []RecipeIngredientRequest, dogIDs []int64) ([]models.RecipeIngredient, bool) {

	if !validation.ValidRecipeName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe name. Recipe name should be 3-100 characters long."})
		return nil, false
	}
	if instructions == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe instructions. Must be a non-empty string."})
		return nil, false
	}
	if len(dogIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one dog must be associated with the recipe."})
		return nil, false
	}
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one ingredient is required."})
		return nil, false
	}

	lines := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.IngredientID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient_id. Must be a positive integer."})
			return nil, false
		}
		if !validation.ValidQuantity(ing.Quantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity. Quantity must be a positive number."})
			return nil, false
		}
		if !validation.ValidUnit(ing.Unit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit. Must be a non-empty string with max length 20."})
			return nil, false
		}
		dbIngredient, err := h.ingredients.GetIngredientByID(ing.IngredientID)
		if err != nil {
			h.logger.Error("Failed to look up ingredient", zap.Int64("ingredient_id", ing.IngredientID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
			return nil, false
		}
		if dbIngredient == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient not found. Please use a valid ingredient ID."})
			return nil, false
		}
		lines = append(lines, models.RecipeIngredient{
			IngredientID: ing.IngredientID,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
		})
	}

	// A recipe may only be assigned to dogs the caller can write.
	for _, dogID := range dogIDs {
		dog, err := h.dogs.GetDogByID(dogID)
		if err != nil {
			h.logger.Error("Failed to look up dog", zap.Int64("dog_id", dogID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
			return nil, false
		}
		if dog == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dog not found."})
			return nil, false
		}
		if !access.Allowed(caller, access.Resource{OwnerID: dog.UserID}, access.OpWrite) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to assign this dog to a recipe."})
			return nil, false
		}
	}

	return lines, true
}

func (h *recipeHandler) CreateRecipe(c *gin.Context) {
	caller := callerFrom(c)

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, instructions, ingredients and dog_ids are required"})
		return
	}

	lines, ok := h.checkRecipeInput(c, caller, req.Name, req.Instructions, req.Ingredients, req.DogIDs)
	if !ok {
		return
	}

	recipe := &models.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		IsPublic:     req.IsPublic,
		UserID:       caller.UserID,
	}

	if err := h.recipes.CreateRecipe(recipe, lines, req.DogIDs); err != nil {
		h.logger.Error("Failed to create recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	h.renderRecipe(c, http.StatusCreated, recipe)
}

func (h *recipeHandler) renderRecipe(c *gin.Context, status int, recipe *models.Recipe) {
	lines, err := h.recipes.GetRecipeIngredients(recipe.ID)
	if err != nil {
		h.logger.Error("Failed to load recipe ingredients", zap.Int64("recipe_id", recipe.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}
	dogIDs, err := h.recipes.DogIDs(recipe.ID)
	if err != nil {
		h.logger.Error("Failed to load recipe dogs", zap.Int64("recipe_id", recipe.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}
	c.JSON(status, recipe.View(lines, dogIDs))
}

// GetRecipes returns everything for admins, otherwise the caller's own plus
// public recipes.
func (h *recipeHandler) GetRecipes(c *gin.Context) {
	caller := callerFrom(c)

	var recipes []*models.Recipe
	var err error
	if caller.IsAdmin {
		recipes, err = h.recipes.GetAllRecipes()
	} else {
		recipes, err = h.recipes.GetAccessibleRecipes(caller.UserID)
	}
	if err != nil {
		h.logger.Error("Failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}

	out := make([]models.RecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		lines, err := h.recipes.GetRecipeIngredients(recipe.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
			return
		}
		dogIDs, err := h.recipes.DogIDs(recipe.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
			return
		}
		out = append(out, recipe.View(lines, dogIDs))
	}
	c.JSON(http.StatusOK, out)
}

// loadGuardedRecipe fetches the recipe and runs the ownership check; public
// recipes widen read access only.
func (h *recipeHandler) loadGuardedRecipe(c *gin.Context, op access.Operation) *models.Recipe {
	caller := callerFrom(c)
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id. Must be a positive integer."})
		return nil
	}

	recipe, err := h.recipes.GetRecipeByID(recipeID)
	if err != nil {
		h.logger.Error("Failed to get recipe", zap.Int64("recipe_id", recipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recipe"})
		return nil
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return nil
	}

	if !access.Allowed(caller, access.Resource{OwnerID: recipe.UserID, Public: recipe.IsPublic}, op) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this recipe. You can only access your own recipes or public recipes."})
		return nil
	}
	return recipe
}

func (h *recipeHandler) GetRecipe(c *gin.Context) {
	recipe := h.loadGuardedRecipe(c, access.OpRead)
	if recipe == nil {
		return
	}
	h.renderRecipe(c, http.StatusOK, recipe)
}

func (h *recipeHandler) UpdateRecipe(c *gin.Context) {
	caller := callerFrom(c)
	recipe := h.loadGuardedRecipe(c, access.OpWrite)
	if recipe == nil {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, instructions, ingredients and dog_ids are required"})
		return
	}

	lines, ok := h.checkRecipeInput(c, caller, req.Name, req.Instructions, req.Ingredients, req.DogIDs)
	if !ok {
		return
	}

	recipe.Name = req.Name
	recipe.Description = req.Description
	recipe.Instructions = req.Instructions
	recipe.IsPublic = req.IsPublic

	if err := h.recipes.UpdateRecipe(recipe, lines, req.DogIDs); err != nil {
		h.logger.Error("Failed to update recipe", zap.Int64("recipe_id", recipe.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	h.renderRecipe(c, http.StatusOK, recipe)
}

func (h *recipeHandler) DeleteRecipe(c *gin.Context) {
	recipe := h.loadGuardedRecipe(c, access.OpDelete)
	if recipe == nil {
		return
	}

	if err := h.recipes.DeleteRecipe(recipe.ID); err != nil {
		h.logger.Error("Failed to delete recipe", zap.Int64("recipe_id", recipe.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Recipe deleted"})
}
