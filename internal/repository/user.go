package repository

import (
	"database/sql"
	"errors"

	"pawplan-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateUsername and ErrDuplicateEmail report which unique index
	// rejected an insert or update. Uniqueness is enforced by the database, not
	// by a check-then-insert sequence, so concurrent registrations cannot race
	// past each other.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

const pqUniqueViolation = "23505"

// uniqueViolation translates a Postgres unique-violation into the per-field
// sentinel, based on the violated constraint's name.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case "users_username_key":
		return ErrDuplicateUsername
	case "users_email_key":
		return ErrDuplicateEmail
	}
	return nil
}

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetAllUsers() ([]*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id int64) error
	DogIDs(userID int64) ([]int64, error)
	RecipeIDs(userID int64) ([]int64, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (username, email, password_hash, is_admin) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowx(query, user.Username, user.Email, user.PasswordHash, user.IsAdmin).Scan(&user.ID)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return err
	}
	return nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, is_admin FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, is_admin FROM users WHERE username = $1`
	err := r.db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	query := `SELECT id, username, email, password_hash, is_admin FROM users ORDER BY id`
	err := r.db.Select(&users, query)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUser(user *models.User) error {
	query := `UPDATE users SET username = $1, email = $2, password_hash = $3, is_admin = $4 WHERE id = $5`
	_, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.ID)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return dup
		}
		return err
	}
	return nil
}

// DeleteUser removes the user; owned dogs and recipes go with it via ON DELETE
// CASCADE.
func (r *userRepository) DeleteUser(id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *userRepository) DogIDs(userID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT id FROM dogs WHERE user_id = $1 ORDER BY id`
	err := r.db.Select(&ids, query, userID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) RecipeIDs(userID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT id FROM recipes WHERE user_id = $1 ORDER BY id`
	err := r.db.Select(&ids, query, userID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
