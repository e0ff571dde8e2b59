package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vince489/Auth/internal/api/handler"
	"github.com/Vince489/Auth/internal/api/middleware"
	"github.com/Vince489/Auth/internal/core/service"
	"github.com/Vince489/Auth/internal/infrastructure/config"
	mongostore "github.com/Vince489/Auth/internal/infrastructure/db/mongo"
	redisstore "github.com/Vince489/Auth/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	userCache := redisstore.NewUserCache(rdb, log)
	accountService := service.NewAccountService(userRepo, userCache, nil, cfg.JWTSecret, cfg.TokenTTL)
	userHandler := handler.NewUserHandler(accountService, handler.CookieProfile{
		Secure: cfg.Cookie.Secure,
	})

	// --- User routes ---
	v1 := e.Group("/api/v1")
	v1.GET("/", userHandler.List)
	v1.POST("/register", userHandler.Register)
	v1.POST("/login", userHandler.Login)
	v1.GET("/getUser", userHandler.GetUser, middleware.Session(accountService))
	v1.GET("/logout", userHandler.Logout)
	v1.GET("/:id", userHandler.GetByID)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
