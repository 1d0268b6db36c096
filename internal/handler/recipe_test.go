package handler

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"pawplan-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const selectRecipeByIDQuery = `SELECT id, name, description, instructions, is_public, created_at, updated_at, user_id FROM recipes WHERE id = $1`

func recipeRow(ownerID int64, isPublic bool) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "name", "description", "instructions", "is_public", "created_at", "updated_at", "user_id"}).
		AddRow(3, "Chicken and Rice", nil, "Boil, mix, serve.", isPublic, now, now, ownerID)
}

func newRecipeRouter(t *testing.T, userID int64, isAdmin bool, mockDB func(sqlmock.Sqlmock)) *gin.Engine {
	t.Helper()
	db, mock := newMockDB(t)
	if mockDB != nil {
		mockDB(mock)
	}

	logger := zap.NewNop()
	recipes := repository.NewRecipeRepository(db, logger)
	dogs := repository.NewDogRepository(db, logger)
	ingredients := repository.NewIngredientRepository(db, logger)
	recipeHandler := NewRecipeHandler(recipes, dogs, ingredients, logger)

	router := gin.New()
	group := router.Group("/api", withCaller(userID, isAdmin))
	group.GET("/recipes/:id", recipeHandler.GetRecipe)
	group.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)
	return router
}

func expectRecipeRender(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT ri.id, ri.recipe_id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipe_id", "ingredient_id", "quantity", "unit", "ingredient_name", "calories", "protein", "fat"}).
			AddRow(1, 3, 100, 2.0, "cups", "Brown Rice", 216.0, 5.0, 1.8))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT dog_id FROM dog_recipe WHERE recipe_id = $1 ORDER BY dog_id`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"dog_id"}).AddRow(5))
}

func TestGetRecipe_PublicReadableByNonOwner(t *testing.T) {
	router := newRecipeRouter(t, 8, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectRecipeByIDQuery)).
			WithArgs(int64(3)).
			WillReturnRows(recipeRow(7, true))
		expectRecipeRender(mock)
	})

	resp := doJSON(t, router, http.MethodGet, "/api/recipes/3", nil)
	mustStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	// Totals are quantity-weighted sums over the ingredient lines.
	if body["total_calories"] != 432.0 {
		t.Fatalf("expected total_calories 432, got %v", body["total_calories"])
	}
}

func TestGetRecipe_PrivateDeniedToNonOwner(t *testing.T) {
	router := newRecipeRouter(t, 8, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectRecipeByIDQuery)).
			WithArgs(int64(3)).
			WillReturnRows(recipeRow(7, false))
	})

	resp := doJSON(t, router, http.MethodGet, "/api/recipes/3", nil)
	mustStatus(t, resp, http.StatusForbidden)
}

func TestDeleteRecipe_PublicStillNotDeletableByNonOwner(t *testing.T) {
	// is_public widens read access only; write and delete stay owner/admin.
	router := newRecipeRouter(t, 8, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectRecipeByIDQuery)).
			WithArgs(int64(3)).
			WillReturnRows(recipeRow(7, true))
	})

	resp := doJSON(t, router, http.MethodDelete, "/api/recipes/3", nil)
	mustStatus(t, resp, http.StatusForbidden)
}

func TestDeleteRecipe_OwnerAllowed(t *testing.T) {
	router := newRecipeRouter(t, 7, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectRecipeByIDQuery)).
			WithArgs(int64(3)).
			WillReturnRows(recipeRow(7, false))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipes WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	})

	resp := doJSON(t, router, http.MethodDelete, "/api/recipes/3", nil)
	mustStatus(t, resp, http.StatusOK)
}
