package repository

import (
	"database/sql"
	"errors"

	"pawplan-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type DogRepository interface {
	CreateDog(dog *models.Dog) error
	GetDogByID(id int64) (*models.Dog, error)
	GetAllDogs() ([]*models.Dog, error)
	GetDogsByUserID(userID int64) ([]*models.Dog, error)
	UpdateDog(dog *models.Dog) error
	DeleteDog(id int64) error
	RecipeIDs(dogID int64) ([]int64, error)
}

type dogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewDogRepository(db *sqlx.DB, logger *zap.Logger) DogRepository {
	return &dogRepository{db: db, logger: logger}
}

func (r *dogRepository) CreateDog(dog *models.Dog) error {
	query := `INSERT INTO dogs (name, breed, date_of_birth, weight, profile_image, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowx(query, dog.Name, dog.Breed, dog.DateOfBirth, dog.Weight,
		dog.ProfileImage, dog.UserID).Scan(&dog.ID)
}

func (r *dogRepository) GetDogByID(id int64) (*models.Dog, error) {
	var dog models.Dog
	query := `SELECT id, name, breed, date_of_birth, weight, profile_image, user_id FROM dogs WHERE id = $1`
	err := r.db.Get(&dog, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Dog not found
		}
		return nil, err
	}
	return &dog, nil
}

func (r *dogRepository) GetAllDogs() ([]*models.Dog, error) {
	var dogs []*models.Dog
	query := `SELECT id, name, breed, date_of_birth, weight, profile_image, user_id FROM dogs ORDER BY id`
	err := r.db.Select(&dogs, query)
	if err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *dogRepository) GetDogsByUserID(userID int64) ([]*models.Dog, error) {
	var dogs []*models.Dog
	query := `SELECT id, name, breed, date_of_birth, weight, profile_image, user_id FROM dogs WHERE user_id = $1 ORDER BY id`
	err := r.db.Select(&dogs, query, userID)
	if err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *dogRepository) UpdateDog(dog *models.Dog) error {
	query := `UPDATE dogs SET name = $1, breed = $2, date_of_birth = $3, weight = $4, profile_image = $5 WHERE id = $6`
	_, err := r.db.Exec(query, dog.Name, dog.Breed, dog.DateOfBirth, dog.Weight, dog.ProfileImage, dog.ID)
	return err
}

func (r *dogRepository) DeleteDog(id int64) error {
	query := `DELETE FROM dogs WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *dogRepository) RecipeIDs(dogID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT recipe_id FROM dog_recipe WHERE dog_id = $1 ORDER BY recipe_id`
	err := r.db.Select(&ids, query, dogID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
