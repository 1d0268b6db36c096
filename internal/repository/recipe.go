package repository

import (
	"database/sql"
	"errors"

	"pawplan-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type RecipeRepository interface {
	CreateRecipe(recipe *models.Recipe, lines []models.RecipeIngredient, dogIDs []int64) error
	GetRecipeByID(id int64) (*models.Recipe, error)
	GetAllRecipes() ([]*models.Recipe, error)
	GetAccessibleRecipes(userID int64) ([]*models.Recipe, error)
	GetRecipesByIDs(ids []int64) ([]*models.Recipe, error)
	UpdateRecipe(recipe *models.Recipe, lines []models.RecipeIngredient, dogIDs []int64) error
	DeleteRecipe(id int64) error
	GetRecipeIngredients(recipeID int64) ([]models.RecipeIngredient, error)
	DogIDs(recipeID int64) ([]int64, error)
}

type recipeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRecipeRepository(db *sqlx.DB, logger *zap.Logger) RecipeRepository {
	return &recipeRepository{db: db, logger: logger}
}

// CreateRecipe inserts the recipe, its ingredient lines and its dog links in a
// single transaction.
func (r *recipeRepository) CreateRecipe(recipe *models.Recipe, lines []models.RecipeIngredient, dogIDs []int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO recipes (name, description, instructions, is_public, user_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err = tx.QueryRowx(query, recipe.Name, recipe.Description, recipe.Instructions,
		recipe.IsPublic, recipe.UserID).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertRecipeLinks(tx, recipe.ID, lines, dogIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func insertRecipeLinks(tx *sqlx.Tx, recipeID int64, lines []models.RecipeIngredient, dogIDs []int64) error {
	lineQuery := `INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit) VALUES ($1, $2, $3, $4)`
	for _, line := range lines {
		if _, err := tx.Exec(lineQuery, recipeID, line.IngredientID, line.Quantity, line.Unit); err != nil {
			return err
		}
	}

	linkQuery := `INSERT INTO dog_recipe (dog_id, recipe_id) VALUES ($1, $2)`
	for _, dogID := range dogIDs {
		if _, err := tx.Exec(linkQuery, dogID, recipeID); err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) GetRecipeByID(id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	query := `SELECT id, name, description, instructions, is_public, created_at, updated_at, user_id FROM recipes WHERE id = $1`
	err := r.db.Get(&recipe, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Recipe not found
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetAllRecipes() ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	query := `SELECT id, name, description, instructions, is_public, created_at, updated_at, user_id FROM recipes ORDER BY id`
	err := r.db.Select(&recipes, query)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetAccessibleRecipes returns recipes the user owns plus public ones.
func (r *recipeRepository) GetAccessibleRecipes(userID int64) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	query := `SELECT id, name, description, instructions, is_public, created_at, updated_at, user_id
	          FROM recipes WHERE user_id = $1 OR is_public = TRUE ORDER BY id`
	err := r.db.Select(&recipes, query, userID)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipesByIDs(ids []int64) ([]*models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, name, description, instructions, is_public, created_at, updated_at, user_id
	          FROM recipes WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var recipes []*models.Recipe
	if err := r.db.Select(&recipes, query, args...); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe rewrites the recipe row and replaces its ingredient lines and
// dog links atomically.
func (r *recipeRepository) UpdateRecipe(recipe *models.Recipe, lines []models.RecipeIngredient, dogIDs []int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE recipes SET name = $1, description = $2, instructions = $3, is_public = $4, updated_at = NOW()
	          WHERE id = $5 RETURNING updated_at`
	err = tx.QueryRowx(query, recipe.Name, recipe.Description, recipe.Instructions,
		recipe.IsPublic, recipe.ID).Scan(&recipe.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM dog_recipe WHERE recipe_id = $1`, recipe.ID); err != nil {
		return err
	}

	if err := insertRecipeLinks(tx, recipe.ID, lines, dogIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *recipeRepository) DeleteRecipe(id int64) error {
	query := `DELETE FROM recipes WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

// GetRecipeIngredients returns the recipe's lines joined with the nutrient
// data needed for totals and shopping lists.
func (r *recipeRepository) GetRecipeIngredients(recipeID int64) ([]models.RecipeIngredient, error) {
	var lines []models.RecipeIngredient
	query := `SELECT ri.id, ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit,
	                 i.name AS ingredient_name, i.calories, i.protein, i.fat
	          FROM recipe_ingredients ri
	          JOIN ingredients i ON i.id = ri.ingredient_id
	          WHERE ri.recipe_id = $1
	          ORDER BY ri.id`
	err := r.db.Select(&lines, query, recipeID)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *recipeRepository) DogIDs(recipeID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT dog_id FROM dog_recipe WHERE recipe_id = $1 ORDER BY dog_id`
	err := r.db.Select(&ids, query, recipeID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
