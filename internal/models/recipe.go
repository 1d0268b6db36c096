package models

import "time"

type Recipe struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	Instructions string    `db:"instructions"`
	IsPublic     bool      `db:"is_public"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	UserID       int64     `db:"user_id"`
}

// RecipeIngredient is one line of a recipe: an ingredient with quantity and unit.
type RecipeIngredient struct {
	ID           int64   `db:"id" json:"id"`
	RecipeID     int64   `db:"recipe_id" json:"recipe_id"`
	IngredientID int64   `db:"ingredient_id" json:"ingredient_id"`
	Quantity     float64 `db:"quantity" json:"quantity"`
	Unit         string  `db:"unit" json:"unit"`

	// Joined nutrient data, populated by the repository.
	IngredientName string  `db:"ingredient_name" json:"ingredient_name"`
	Calories       float64 `db:"calories" json:"-"`
	Protein        float64 `db:"protein" json:"-"`
	Fat            float64 `db:"fat" json:"-"`
}

type RecipeView struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Description   *string            `json:"description,omitempty"`
	Instructions  string             `json:"instructions"`
	IsPublic      bool               `json:"is_public"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	UserID        int64              `json:"user_id"`
	Ingredients   []RecipeIngredient `json:"ingredients"`
	DogIDs        []int64            `json:"dog_ids"`
	TotalCalories float64            `json:"total_calories"`
	TotalProtein  float64            `json:"total_protein"`
	TotalFat      float64            `json:"total_fat"`
}

// View assembles the serializable recipe with nutrient totals summed over its
// ingredient lines.
func (r *Recipe) View(ingredients []RecipeIngredient, dogIDs []int64) RecipeView {
	if ingredients == nil {
		ingredients = []RecipeIngredient{}
	}
	if dogIDs == nil {
		dogIDs = []int64{}
	}
	v := RecipeView{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Instructions: r.Instructions,
		IsPublic:     r.IsPublic,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		UserID:       r.UserID,
		Ingredients:  ingredients,
		DogIDs:       dogIDs,
	}
	for _, ri := range ingredients {
		v.TotalCalories += ri.Calories * ri.Quantity
		v.TotalProtein += ri.Protein * ri.Quantity
		v.TotalFat += ri.Fat * ri.Quantity
	}
	return v
}
