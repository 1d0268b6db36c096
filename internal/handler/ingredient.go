package handler

import (
	"net/http"
	"strconv"

	"pawplan-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IngredientHandler interface {
	GetIngredients(c *gin.Context)
	GetIngredient(c *gin.Context)
}

type ingredientHandler struct {
	ingredients repository.IngredientRepository
	logger      *zap.Logger
}

func NewIngredientHandler(ingredients repository.IngredientRepository, logger *zap.Logger) IngredientHandler {
	return &ingredientHandler{ingredients: ingredients, logger: logger}
}

// The ingredient catalogue is shared reference data, readable without auth.
func (h *ingredientHandler) GetIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.GetAllIngredients()
	if err != nil {
		h.logger.Error("Failed to list ingredients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ingredients"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *ingredientHandler) GetIngredient(c *gin.Context) {
	ingredientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || ingredientID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient id. Must be a positive integer."})
		return
	}

	ingredient, err := h.ingredients.GetIngredientByID(ingredientID)
	if err != nil {
		h.logger.Error("Failed to get ingredient", zap.Int64("ingredient_id", ingredientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ingredient"})
		return
	}
	if ingredient == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}
