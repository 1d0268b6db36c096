package server

import (
	"net/http"

	"pawplan-backend/internal/config"
	"pawplan-backend/internal/handler"
	"pawplan-backend/internal/middleware"
	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/service"
	"pawplan-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	tokens := token.NewService(s.cfg.Auth.JWTSecret, s.cfg.TokenTTL())

	userRepo := repository.NewUserRepository(s.db, s.logger)
	dogRepo := repository.NewDogRepository(s.db, s.logger)
	ingredientRepo := repository.NewIngredientRepository(s.db, s.logger)
	recipeRepo := repository.NewRecipeRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, tokens, s.logger)
	shoppingListService := service.NewShoppingListService(recipeRepo, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userRepo, s.logger)
	dogHandler := handler.NewDogHandler(dogRepo, s.logger)
	ingredientHandler := handler.NewIngredientHandler(ingredientRepo, s.logger)
	recipeHandler := handler.NewRecipeHandler(recipeRepo, dogRepo, ingredientRepo, s.logger)
	shoppingListHandler := handler.NewShoppingListHandler(shoppingListService, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Public routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Ingredient catalogue is shared reference data, no auth required
	s.router.GET("/api/ingredients", ingredientHandler.GetIngredients)
	s.router.GET("/api/ingredients/:id", ingredientHandler.GetIngredient)

	// Everything else runs through token validation and identity resolution
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.Auth(tokens, userRepo, s.logger))
	{
		authRequired.GET("/users", userHandler.GetUsers)
		authRequired.GET("/users/:id", userHandler.GetUser)
		authRequired.PUT("/users/:id", userHandler.UpdateUser)
		authRequired.PATCH("/users/:id", userHandler.UpdateUser)
		authRequired.DELETE("/users/:id", userHandler.DeleteUser)

		authRequired.POST("/dogs", dogHandler.CreateDog)
		authRequired.GET("/dogs", dogHandler.GetDogs)
		authRequired.GET("/dogs/:id", dogHandler.GetDog)
		authRequired.PUT("/dogs/:id", dogHandler.UpdateDog)
		authRequired.PATCH("/dogs/:id", dogHandler.UpdateDog)
		authRequired.DELETE("/dogs/:id", dogHandler.DeleteDog)

		authRequired.POST("/recipes", recipeHandler.CreateRecipe)
		authRequired.GET("/recipes", recipeHandler.GetRecipes)
		authRequired.GET("/recipes/:id", recipeHandler.GetRecipe)
		authRequired.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
		authRequired.PATCH("/recipes/:id", recipeHandler.UpdateRecipe)
		authRequired.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)

		authRequired.POST("/shopping-list", shoppingListHandler.GenerateShoppingList)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("port", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
