package service

import (
	"errors"
	"fmt"
	"sort"

	"pawplan-backend/internal/access"
	"pawplan-backend/internal/repository"

	"go.uber.org/zap"
)

// ErrRecipesInaccessible is returned when any requested recipe is missing or
// not readable by the caller. The message never reveals which of the two it
// was for resources the caller cannot see.
type ErrRecipesInaccessible struct {
	RecipeIDs []int64
}

func (e *ErrRecipesInaccessible) Error() string {
	return fmt.Sprintf("recipes not found or not accessible: %v", e.RecipeIDs)
}

// ShoppingListItem is one aggregated ingredient across the selected recipes.
type ShoppingListItem struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

type ShoppingListService interface {
	Generate(caller access.Caller, recipeIDs []int64) ([]ShoppingListItem, error)
}

type shoppingListService struct {
	recipes repository.RecipeRepository
	logger  *zap.Logger
}

func NewShoppingListService(recipes repository.RecipeRepository, logger *zap.Logger) ShoppingListService {
	return &shoppingListService{recipes: recipes, logger: logger}
}

// Generate sums ingredient quantities across the requested recipes. Every
// recipe must be readable by the caller; otherwise the whole request is
// rejected with the inaccessible ids.
func (s *shoppingListService) Generate(caller access.Caller, recipeIDs []int64) ([]ShoppingListItem, error) {
	if len(recipeIDs) == 0 {
		return nil, errors.New("no recipe ids provided")
	}

	recipes, err := s.recipes.GetRecipesByIDs(recipeIDs)
	if err != nil {
		s.logger.Error("Failed to fetch recipes", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	readable := make(map[int64]bool, len(recipes))
	for _, recipe := range recipes {
		res := access.Resource{OwnerID: recipe.UserID, Public: recipe.IsPublic}
		if access.Allowed(caller, res, access.OpRead) {
			readable[recipe.ID] = true
		}
	}

	var inaccessible []int64
	for _, id := range recipeIDs {
		if !readable[id] {
			inaccessible = append(inaccessible, id)
		}
	}
	if len(inaccessible) > 0 {
		return nil, &ErrRecipesInaccessible{RecipeIDs: inaccessible}
	}

	totals := make(map[int64]*ShoppingListItem)
	for _, recipe := range recipes {
		lines, err := s.recipes.GetRecipeIngredients(recipe.ID)
		if err != nil {
			s.logger.Error("Failed to fetch recipe ingredients", zap.Int64("recipe_id", recipe.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to fetch recipe ingredients: %w", err)
		}
		for _, line := range lines {
			if item, ok := totals[line.IngredientID]; ok {
				item.Quantity += line.Quantity
				continue
			}
			totals[line.IngredientID] = &ShoppingListItem{
				IngredientID: line.IngredientID,
				Name:         line.IngredientName,
				Quantity:     line.Quantity,
				Unit:         line.Unit,
			}
		}
	}

	items := make([]ShoppingListItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].IngredientID < items[j].IngredientID })
	return items, nil
}
