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

const selectDogByIDQuery = `SELECT id, name, breed, date_of_birth, weight, profile_image, user_id FROM dogs WHERE id = $1`

func dogRow(ownerID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "breed", "date_of_birth", "weight", "profile_image", "user_id"}).
		AddRow(5, "Rex", "Labrador", time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC), 28.5, nil, ownerID)
}

func newDogRouter(t *testing.T, userID int64, isAdmin bool, mockDB func(sqlmock.Sqlmock)) *gin.Engine {
	t.Helper()
	db, mock := newMockDB(t)
	if mockDB != nil {
		mockDB(mock)
	}

	logger := zap.NewNop()
	dogHandler := NewDogHandler(repository.NewDogRepository(db, logger), logger)

	router := gin.New()
	group := router.Group("/api", withCaller(userID, isAdmin))
	group.GET("/dogs/:id", dogHandler.GetDog)
	group.DELETE("/dogs/:id", dogHandler.DeleteDog)
	group.PUT("/dogs/:id", dogHandler.UpdateDog)
	return router
}

func TestGetDog_OwnerAllowed(t *testing.T) {
	router := newDogRouter(t, 7, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectDogByIDQuery)).
			WithArgs(int64(5)).
			WillReturnRows(dogRow(7))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT recipe_id FROM dog_recipe WHERE dog_id = $1 ORDER BY recipe_id`)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"recipe_id"}).AddRow(3))
	})

	resp := doJSON(t, router, http.MethodGet, "/api/dogs/5", nil)
	mustStatus(t, resp, http.StatusOK)

	body := decodeBody(t, resp)
	if body["name"] != "Rex" {
		t.Fatalf("expected dog Rex, got %v", body["name"])
	}
}

func TestGetDog_NonOwnerDenied(t *testing.T) {
	router := newDogRouter(t, 8, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectDogByIDQuery)).
			WithArgs(int64(5)).
			WillReturnRows(dogRow(7))
	})

	// Dogs are never public; a non-owner cannot even read one.
	resp := doJSON(t, router, http.MethodGet, "/api/dogs/5", nil)
	mustStatus(t, resp, http.StatusForbidden)
}

func TestDeleteDog_NonOwnerDenied(t *testing.T) {
	router := newDogRouter(t, 8, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectDogByIDQuery)).
			WithArgs(int64(5)).
			WillReturnRows(dogRow(7))
	})

	resp := doJSON(t, router, http.MethodDelete, "/api/dogs/5", nil)
	mustStatus(t, resp, http.StatusForbidden)
}

func TestDeleteDog_AdminBypass(t *testing.T) {
	router := newDogRouter(t, 1, true, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectDogByIDQuery)).
			WithArgs(int64(5)).
			WillReturnRows(dogRow(7))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM dogs WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	})

	resp := doJSON(t, router, http.MethodDelete, "/api/dogs/5", nil)
	mustStatus(t, resp, http.StatusOK)
}

func TestGetDog_NotFound(t *testing.T) {
	router := newDogRouter(t, 7, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectDogByIDQuery)).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "breed", "date_of_birth", "weight", "profile_image", "user_id"}))
	})

	resp := doJSON(t, router, http.MethodGet, "/api/dogs/99", nil)
	mustStatus(t, resp, http.StatusNotFound)
}

func TestUpdateDog_InvalidWeight(t *testing.T) {
	router := newDogRouter(t, 7, false, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(regexp.QuoteMeta(selectDogByIDQuery)).
			WithArgs(int64(5)).
			WillReturnRows(dogRow(7))
	})

	resp := doJSON(t, router, http.MethodPut, "/api/dogs/5", map[string]any{"weight": 500})
	mustStatus(t, resp, http.StatusBadRequest)
}
