// Command seed populates the ingredient catalogue. Safe to run repeatedly:
// ingredients already present by name are skipped.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"pawplan-backend/internal/config"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"
)

var baseIngredients = []models.Ingredient{
	{Name: "Chicken Breast", Category: "Meat", Calories: 165, Protein: 31, Fat: 3.6, Carbohydrates: 0},
	{Name: "Brown Rice", Category: "Grain", Calories: 216, Protein: 5, Fat: 1.8, Carbohydrates: 45},
	{Name: "Broccoli", Category: "Vegetable", Calories: 55, Protein: 3.7, Fat: 0.6, Carbohydrates: 11.2},
	{Name: "Salmon", Category: "Fish", Calories: 208, Protein: 20, Fat: 13, Carbohydrates: 0},
	{Name: "Sweet Potato", Category: "Vegetable", Calories: 86, Protein: 1.6, Fat: 0.1, Carbohydrates: 20},
}

func main() {
	log := logrus.New()

	cfgPath := flag.String("config", "configs/config.yml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ingredientRepo := repository.NewIngredientRepository(db, zap.NewNop())
	inserted, err := ingredientRepo.SeedIngredients(baseIngredients)
	if err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}

	log.Infof("Ingredients seeded: %d inserted, %d already present", inserted, int64(len(baseIngredients))-inserted)
}
