package api

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/api/handlers"
	jwtMiddleware "stockroom/internal/api/middleware"
	"stockroom/internal/config"
)

func SetupRoutes(e *echo.Echo, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	e.GET("/health", healthCheck)

	wsHandler := handlers.NewWebSocketHandler(cfg)
	e.GET("/api/ws", wsHandler.HandleConnection)

	e.Validator = NewValidator()

	authHandler := handlers.NewAuthHandler(db, cfg.JWTKey)
	authGroup := e.Group("/api/auth")
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/signin", authHandler.SignIn)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTKey),
		ContextKey: "user",
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		},
	}

	apiGroup := e.Group("/api")
	apiGroup.Use(echojwt.WithConfig(jwtConfig))
	apiGroup.Use(jwtMiddleware.ExtractUserIDFromJWT())

	userHandler := handlers.NewUserHandler(db, rdb)
	apiGroup.GET("/user/me", userHandler.GetCurrentUser)
	apiGroup.PUT("/users/:id/role", userHandler.SetRole)

	inventoryHandler := handlers.NewInventoryHandler(db)
	fieldHandler := handlers.NewFieldHandler(db, rdb)
	itemHandler := handlers.NewItemHandler(db, rdb)
	extractionHandler := handlers.NewExtractionHandler(db, rdb, cfg)

	apiGroup.GET("/inventories", inventoryHandler.List)
	apiGroup.GET("/inventories/:id", inventoryHandler.Get)
	apiGroup.GET("/inventories/:id/stats", inventoryHandler.Stats)
	apiGroup.GET("/inventories/:id/fields", fieldHandler.List)
	apiGroup.GET("/inventories/:id/items", itemHandler.List)
	apiGroup.GET("/items/:itemId", itemHandler.Get)

	// mutations require manager or admin
	manageGroup := apiGroup.Group("", jwtMiddleware.RequireManager())
	manageGroup.POST("/inventories", inventoryHandler.Create)
	manageGroup.PUT("/inventories/:id", inventoryHandler.Update)
	manageGroup.DELETE("/inventories/:id", inventoryHandler.Delete)

	manageGroup.POST("/inventories/:id/fields", fieldHandler.Create)
	manageGroup.PUT("/fields/:fieldId", fieldHandler.Update)
	manageGroup.DELETE("/fields/:fieldId", fieldHandler.Delete)

	manageGroup.POST("/inventories/:id/items", itemHandler.Create)
	manageGroup.PUT("/items/:itemId", itemHandler.Update)
	manageGroup.DELETE("/items/:itemId", itemHandler.Delete)
	manageGroup.POST("/items/:itemId/quantity", itemHandler.ChangeQuantity)

	manageGroup.POST("/inventories/:id/populate", extractionHandler.Populate)
}

func healthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
