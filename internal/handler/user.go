package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pawplan-backend/internal/access"
	"pawplan-backend/internal/crypto"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler interface {
	GetUsers(c *gin.Context)
	GetUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type userHandler struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users repository.UserRepository, logger *zap.Logger) UserHandler {
	return &userHandler{users: users, logger: logger}
}

type userWithRelations struct {
	models.UserView
	DogIDs    []int64 `json:"dog_ids,omitempty"`
	RecipeIDs []int64 `json:"recipe_ids,omitempty"`
}

func (h *userHandler) userView(c *gin.Context, user *models.User) (userWithRelations, error) {
	out := userWithRelations{UserView: user.View()}
	if c.Query("include_dogs") == "true" {
		ids, err := h.users.DogIDs(user.ID)
		if err != nil {
			return out, err
		}
		out.DogIDs = ids
	}
	if c.Query("include_recipes") == "true" {
		ids, err := h.users.RecipeIDs(user.ID)
		if err != nil {
			return out, err
		}
		out.RecipeIDs = ids
	}
	return out, nil
}

// GetUsers lists all users for admins; everyone else gets their own record.
func (h *userHandler) GetUsers(c *gin.Context) {
	caller := callerFrom(c)

	if !caller.IsAdmin {
		user, err := h.users.GetUserByID(caller.UserID)
		if err != nil || user == nil {
			h.logger.Error("Failed to load current user", zap.Int64("user_id", caller.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		out, err := h.userView(c, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}

	users, err := h.users.GetAllUsers()
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	out := make([]userWithRelations, 0, len(users))
	for _, user := range users {
		view, err := h.userView(c, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
			return
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, out)
}

func (h *userHandler) GetUser(c *gin.Context) {
	caller := callerFrom(c)
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id. Must be a positive integer."})
		return
	}

	if !access.CanTouchUser(caller, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own profile"})
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	out, err := h.userView(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}
	c.JSON(http.StatusOK, out)
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (h *userHandler) UpdateUser(c *gin.Context) {
	caller := callerFrom(c)
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id. Must be a positive integer."})
		return
	}

	if !access.CanTouchUser(caller, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Username != nil {
		if !validation.ValidUsername(*req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username. Username must be 3-20 characters long and contain only letters, numbers, and underscores."})
			return
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		if !validation.ValidEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address."})
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if !validation.ValidPassword(*req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password. Password must be at least 8 characters with an uppercase letter, a lowercase letter, a digit and a symbol."})
			return
		}
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		user.PasswordHash = hash
	}
	if req.IsAdmin != nil {
		// Only admins may grant or revoke the role flag.
		if !caller.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can change the admin flag"})
			return
		}
		user.IsAdmin = *req.IsAdmin
	}

	if err := h.users.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		case errors.Is(err, repository.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		default:
			h.logger.Error("Failed to update user", zap.Int64("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, user.View())
}

// DeleteUser removes the account; owned dogs and recipes cascade away.
func (h *userHandler) DeleteUser(c *gin.Context) {
	caller := callerFrom(c)
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id. Must be a positive integer."})
		return
	}

	if !access.CanTouchUser(caller, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own profile"})
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.users.DeleteUser(userID); err != nil {
		h.logger.Error("Failed to delete user", zap.Int64("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
