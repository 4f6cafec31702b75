package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/corpfin/reimbursement-system/docs"
	"github.com/corpfin/reimbursement-system/internal/api/handler"
	"github.com/corpfin/reimbursement-system/internal/api/middleware"
	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/service"
	mongorepo "github.com/corpfin/reimbursement-system/internal/infrastructure/db/mongo"
	redisdedup "github.com/corpfin/reimbursement-system/internal/infrastructure/db/redis"
	"github.com/corpfin/reimbursement-system/internal/infrastructure/http/handlers"
	"github.com/corpfin/reimbursement-system/internal/pkg/config"
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
	e.Use(echoprometheus.NewMiddleware("ers"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db, log)
	reimbRepo := mongorepo.NewReimbRepository(db, log)
	dedup := redisdedup.NewSubmissionDedup(rdb)

	userService := service.NewUserService(userRepo, log)
	reimbService := service.NewReimbService(reimbRepo, dedup, log)
	authService := service.NewAuthService(userService, cfg.JWTSecret, cfg.TokenTTL, log)

	userHandler := handler.NewUserHandler(userService)
	reimbHandler := handler.NewReimbHandler(reimbService)
	authHandler := handler.NewAuthHandler(authService)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	financeOrAdmin := middleware.RBAC(domain.RoleFinance, domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleFinance, domain.RoleEmployee)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User management (admin) ---
	users := e.Group("/v1/users", auth, adminOnly)
	users.GET("", userHandler.GetAll)
	users.GET("/:id", userHandler.GetByID)
	users.GET("/role/:role", userHandler.GetByRole)
	users.POST("", userHandler.Create)
	users.PUT("", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Reimbursements ---
	reimbs := e.Group("/v1/reimbursements", auth)
	reimbs.GET("", reimbHandler.GetAll, financeOrAdmin)
	reimbs.GET("/:id", reimbHandler.GetByID, financeOrAdmin)
	reimbs.GET("/author/:id", reimbHandler.GetByAuthor, anyRole)
	reimbs.GET("/status/:status", reimbHandler.GetByStatus, financeOrAdmin)
	reimbs.GET("/type/:type", reimbHandler.GetByType, financeOrAdmin)
	reimbs.POST("", reimbHandler.Create, middleware.RBAC(domain.RoleEmployee))
	reimbs.PUT("/:id/status", reimbHandler.Resolve, middleware.RBAC(domain.RoleFinance))
	reimbs.PUT("", reimbHandler.Update, anyRole)
	reimbs.DELETE("/:id", reimbHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
