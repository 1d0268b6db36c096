package handler

import (
	"net/http"
	"strconv"

	"pawplan-backend/internal/access"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DogHandler interface {
	CreateDog(c *gin.Context)
	GetDogs(c *gin.Context)
	GetDog(c *gin.Context)
	UpdateDog(c *gin.Context)
	DeleteDog(c *gin.Context)
}

type dogHandler struct {
	dogs   repository.DogRepository
	logger *zap.Logger
}

func NewDogHandler(dogs repository.DogRepository, logger *zap.Logger) DogHandler {
	return &dogHandler{dogs: dogs, logger: logger}
}

type CreateDogRequest struct {
	Name         string  `json:"name" binding:"required"`
	Breed        string  `json:"breed" binding:"required"`
	DateOfBirth  string  `json:"date_of_birth" binding:"required"`
	Weight       float64 `json:"weight" binding:"required"`
	ProfileImage *string `json:"profile_image"`
}

func (h *dogHandler) CreateDog(c *gin.Context) {
	caller := callerFrom(c)

	var req CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, breed, date_of_birth and weight are required"})
		return
	}

	if !validation.ValidDogNameOrBreed(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dog name. Name must be 1-50 characters long."})
		return
	}
	if !validation.ValidDogNameOrBreed(req.Breed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dog breed. Breed must be 1-50 characters long."})
		return
	}
	dob, ok := validation.ValidDate(req.DateOfBirth)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
		return
	}
	if !validation.ValidWeight(req.Weight) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight. Weight must be a positive number less than 200 (assuming kg)."})
		return
	}

	dog := &models.Dog{
		Name:         req.Name,
		Breed:        req.Breed,
		DateOfBirth:  dob,
		Weight:       req.Weight,
		ProfileImage: req.ProfileImage,
		UserID:       caller.UserID,
	}

	if err := h.dogs.CreateDog(dog); err != nil {
		h.logger.Error("Failed to create dog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dog"})
		return
	}

	c.JSON(http.StatusCreated, dog.View(nil))
}

// GetDogs returns every dog for admins, otherwise only the caller's own.
func (h *dogHandler) GetDogs(c *gin.Context) {
	caller := callerFrom(c)

	var dogs []*models.Dog
	var err error
	if caller.IsAdmin {
		dogs, err = h.dogs.GetAllDogs()
	} else {
		dogs, err = h.dogs.GetDogsByUserID(caller.UserID)
	}
	if err != nil {
		h.logger.Error("Failed to list dogs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list dogs"})
		return
	}

	out := make([]models.DogView, 0, len(dogs))
	for _, dog := range dogs {
		recipeIDs, err := h.dogs.RecipeIDs(dog.ID)
		if err != nil {
			h.logger.Error("Failed to load dog recipes", zap.Int64("dog_id", dog.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list dogs"})
			return
		}
		out = append(out, dog.View(recipeIDs))
	}
	c.JSON(http.StatusOK, out)
}

// loadGuardedDog fetches the dog and runs the ownership check, writing the
// error response itself when the request cannot proceed.
func (h *dogHandler) loadGuardedDog(c *gin.Context, op access.Operation) *models.Dog {
	caller := callerFrom(c)
	dogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || dogID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dog id. Must be a positive integer."})
		return nil
	}

	dog, err := h.dogs.GetDogByID(dogID)
	if err != nil {
		h.logger.Error("Failed to get dog", zap.Int64("dog_id", dogID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dog"})
		return nil
	}
	if dog == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dog not found"})
		return nil
	}

	if !access.Allowed(caller, access.Resource{OwnerID: dog.UserID}, op) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this dog. You can only access dogs that you own."})
		return nil
	}
	return dog
}

func (h *dogHandler) GetDog(c *gin.Context) {
	dog := h.loadGuardedDog(c, access.OpRead)
	if dog == nil {
		return
	}
	recipeIDs, err := h.dogs.RecipeIDs(dog.ID)
	if err != nil {
		h.logger.Error("Failed to load dog recipes", zap.Int64("dog_id", dog.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dog"})
		return
	}
	c.JSON(http.StatusOK, dog.View(recipeIDs))
}

type UpdateDogRequest struct {
	Name         *string  `json:"name"`
	Breed        *string  `json:"breed"`
	DateOfBirth  *string  `json:"date_of_birth"`
	Weight       *float64 `json:"weight"`
	ProfileImage *string  `json:"profile_image"`
}

func (h *dogHandler) UpdateDog(c *gin.Context) {
	dog := h.loadGuardedDog(c, access.OpWrite)
	if dog == nil {
		return
	}

	var req UpdateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name != nil {
		if !validation.ValidDogNameOrBreed(*req.Name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dog name. Name must be 1-50 characters long."})
			return
		}
		dog.Name = *req.Name
	}
	if req.Breed != nil {
		if !validation.ValidDogNameOrBreed(*req.Breed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dog breed. Breed must be 1-50 characters long."})
			return
		}
		dog.Breed = *req.Breed
	}
	if req.DateOfBirth != nil {
		dob, ok := validation.ValidDate(*req.DateOfBirth)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
			return
		}
		dog.DateOfBirth = dob
	}
	if req.Weight != nil {
		if !validation.ValidWeight(*req.Weight) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight. Weight must be a positive number less than 200 (assuming kg)."})
			return
		}
		dog.Weight = *req.Weight
	}
	if req.ProfileImage != nil {
		dog.ProfileImage = req.ProfileImage
	}

	if err := h.dogs.UpdateDog(dog); err != nil {
		h.logger.Error("Failed to update dog", zap.Int64("dog_id", dog.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dog"})
		return
	}

	recipeIDs, err := h.dogs.RecipeIDs(dog.ID)
	if err != nil {
		recipeIDs = nil
	}
	c.JSON(http.StatusOK, dog.View(recipeIDs))
}

func (h *dogHandler) DeleteDog(c *gin.Context) {
	dog := h.loadGuardedDog(c, access.OpDelete)
	if dog == nil {
		return
	}

	if err := h.dogs.DeleteDog(dog.ID); err != nil {
		h.logger.Error("Failed to delete dog", zap.Int64("dog_id", dog.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Dog deleted"})
}
