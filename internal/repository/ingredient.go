package repository

import (
	"database/sql"
	"errors"

	"pawplan-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type IngredientRepository interface {
	GetIngredientByID(id int64) (*models.Ingredient, error)
	GetAllIngredients() ([]*models.Ingredient, error)
	SeedIngredients(ingredients []models.Ingredient) (int64, error)
}

type ingredientRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewIngredientRepository(db *sqlx.DB, logger *zap.Logger) IngredientRepository {
	return &ingredientRepository{db: db, logger: logger}
}

func (r *ingredientRepository) GetIngredientByID(id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	query := `SELECT id, name, category, calories, protein, fat, carbohydrates, fiber FROM ingredients WHERE id = $1`
	err := r.db.Get(&ingredient, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetAllIngredients() ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	query := `SELECT id, name, category, calories, protein, fat, carbohydrates, fiber FROM ingredients ORDER BY id`
	err := r.db.Select(&ingredients, query)
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// SeedIngredients inserts catalogue rows, skipping names already present, and
// returns the number of rows actually inserted.
func (r *ingredientRepository) SeedIngredients(ingredients []models.Ingredient) (int64, error) {
	query := `INSERT INTO ingredients (name, category, calories, protein, fat, carbohydrates, fiber)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (name) DO NOTHING`
	var inserted int64
	for _, ing := range ingredients {
		res, err := r.db.Exec(query, ing.Name, ing.Category, ing.Calories, ing.Protein,
			ing.Fat, ing.Carbohydrates, ing.Fiber)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}
