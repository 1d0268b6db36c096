package service

import (
	"testing"

	"pawplan-backend/internal/access"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRecipeRepo struct {
	repository.RecipeRepository
	recipes map[int64]*models.Recipe
	lines   map[int64][]models.RecipeIngredient
}

func (f *fakeRecipeRepo) GetRecipesByIDs(ids []int64) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, id := range ids {
		if r, ok := f.recipes[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) GetRecipeIngredients(recipeID int64) ([]models.RecipeIngredient, error) {
	return f.lines[recipeID], nil
}

func newShoppingListFixture() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes: map[int64]*models.Recipe{
			1: {ID: 1, UserID: 10},
			2: {ID: 2, UserID: 10},
			3: {ID: 3, UserID: 20, IsPublic: true},
			4: {ID: 4, UserID: 20},
		},
		lines: map[int64][]models.RecipeIngredient{
			1: {
				{IngredientID: 100, IngredientName: "Chicken Breast", Quantity: 500, Unit: "grams"},
				{IngredientID: 101, IngredientName: "Brown Rice", Quantity: 200, Unit: "grams"},
			},
			2: {
				{IngredientID: 100, IngredientName: "Chicken Breast", Quantity: 300, Unit: "grams"},
			},
			3: {
				{IngredientID: 102, IngredientName: "Salmon", Quantity: 250, Unit: "grams"},
			},
		},
	}
}

func TestGenerate_AggregatesAcrossRecipes(t *testing.T) {
	t.Parallel()

	svc := NewShoppingListService(newShoppingListFixture(), zap.NewNop())
	caller := access.Caller{UserID: 10}

	items, err := svc.Generate(caller, []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Chicken appears in both owned recipes; quantities sum.
	assert.Equal(t, ShoppingListItem{IngredientID: 100, Name: "Chicken Breast", Quantity: 800, Unit: "grams"}, items[0])
	assert.Equal(t, ShoppingListItem{IngredientID: 101, Name: "Brown Rice", Quantity: 200, Unit: "grams"}, items[1])
	assert.Equal(t, ShoppingListItem{IngredientID: 102, Name: "Salmon", Quantity: 250, Unit: "grams"}, items[2])
}

func TestGenerate_RejectsInaccessibleRecipes(t *testing.T) {
	t.Parallel()

	svc := NewShoppingListService(newShoppingListFixture(), zap.NewNop())
	caller := access.Caller{UserID: 10}

	// Recipe 4 is private to another user, recipe 99 doesn't exist; both are
	// reported the same way.
	_, err := svc.Generate(caller, []int64{1, 4, 99})
	var inaccessible *ErrRecipesInaccessible
	require.ErrorAs(t, err, &inaccessible)
	assert.Equal(t, []int64{4, 99}, inaccessible.RecipeIDs)
}

func TestGenerate_AdminBypassesOwnership(t *testing.T) {
	t.Parallel()

	svc := NewShoppingListService(newShoppingListFixture(), zap.NewNop())
	admin := access.Caller{UserID: 1, IsAdmin: true}

	items, err := svc.Generate(admin, []int64{1, 4})
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}
