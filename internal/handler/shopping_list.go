package handler

import (
	"errors"
	"net/http"

	"pawplan-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShoppingListHandler interface {
	GenerateShoppingList(c *gin.Context)
}

type shoppingListHandler struct {
	shoppingLists service.ShoppingListService
	logger        *zap.Logger
}

func NewShoppingListHandler(shoppingLists service.ShoppingListService, logger *zap.Logger) ShoppingListHandler {
	return &shoppingListHandler{shoppingLists: shoppingLists, logger: logger}
}

type ShoppingListRequest struct {
	RecipeIDs []int64 `json:"recipe_ids"`
}

func (h *shoppingListHandler) GenerateShoppingList(c *gin.Context) {
	caller := callerFrom(c)

	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The 'recipe_ids' field must be a list of integers."})
		return
	}
	if len(req.RecipeIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No recipes provided. Please include at least one recipe ID in the 'recipe_ids' field."})
		return
	}

	items, err := h.shoppingLists.Generate(caller, req.RecipeIDs)
	if err != nil {
		var inaccessible *service.ErrRecipesInaccessible
		if errors.As(err, &inaccessible) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "One or more recipes not found or not accessible.",
				"details": inaccessible.RecipeIDs,
			})
			return
		}
		h.logger.Error("Failed to generate shopping list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shopping list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shopping_list": items})
}
