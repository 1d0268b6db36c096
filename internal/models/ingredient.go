package models

type Ingredient struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	Calories      float64 `db:"calories" json:"calories"`
	Protein       float64 `db:"protein" json:"protein"`
	Fat           float64 `db:"fat" json:"fat"`
	Carbohydrates float64 `db:"carbohydrates" json:"carbohydrates"`
	Fiber         float64 `db:"fiber" json:"fiber"`
}
