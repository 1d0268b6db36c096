package models

import "time"

type Dog struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Breed        string    `db:"breed"`
	DateOfBirth  time.Time `db:"date_of_birth"`
	Weight       float64   `db:"weight"`
	ProfileImage *string   `db:"profile_image"`
	UserID       int64     `db:"user_id"`
}

// Age returns the dog's age in whole years as of now.
func (d *Dog) Age() int {
	return d.AgeAt(time.Now())
}

func (d *Dog) AgeAt(t time.Time) int {
	years := t.Year() - d.DateOfBirth.Year()
	anniversary := d.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(t) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

type DogView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Breed        string  `json:"breed"`
	DateOfBirth  string  `json:"date_of_birth"`
	Weight       float64 `json:"weight"`
	ProfileImage *string `json:"profile_image,omitempty"`
	UserID       int64   `json:"user_id"`
	Age          int     `json:"age"`
	RecipeIDs    []int64 `json:"recipes"`
}

func (d *Dog) View(recipeIDs []int64) DogView {
	if recipeIDs == nil {
		recipeIDs = []int64{}
	}
	return DogView{
		ID:           d.ID,
		Name:         d.Name,
		Breed:        d.Breed,
		DateOfBirth:  d.DateOfBirth.Format("2006-01-02"),
		Weight:       d.Weight,
		ProfileImage: d.ProfileImage,
		UserID:       d.UserID,
		Age:          d.Age(),
		RecipeIDs:    recipeIDs,
	}
}
