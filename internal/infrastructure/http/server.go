package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/Nicksok2413/Kronon/internal/adapter/handler/http"
	"github.com/Nicksok2413/Kronon/internal/config"
	"github.com/Nicksok2413/Kronon/internal/infrastructure/database"
	"github.com/Nicksok2413/Kronon/internal/middleware/auth"
	"github.com/Nicksok2413/Kronon/internal/usecase"
	"github.com/Nicksok2413/Kronon/internal/validation"
	"github.com/Nicksok2413/Kronon/pkg/logger"
)

// echoValidator adapts the shared validator to echo's Validator interface.
type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &echoValidator{validate: validation.MustNew()}

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	s.echo.Server.ReadTimeout = s.config.Server.HTTP.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.HTTP.WriteTimeout

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize usecases
	clientUsecase := usecase.NewClientUsecase(s.repos.Client, s.repos.User, s.repos.AuditEvent, s.logger)
	userUsecase := usecase.NewUserUsecase(s.repos.User, s.logger)
	departmentUsecase := usecase.NewDepartmentUsecase(s.repos.Department, s.logger)
	auditUsecase := usecase.NewAuditUsecase(s.repos.AuditEvent, s.logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s.logger, userUsecase, s.config.JWT.Secret, s.config.JWT.TokenTTL)
	clientHandler := handlers.NewClientHandler(s.logger, clientUsecase)
	userHandler := handlers.NewUserHandler(s.logger, userUsecase)
	departmentHandler := handlers.NewDepartmentHandler(s.logger, departmentUsecase)
	adminHandler := handlers.NewAdminHandler(s.logger, clientUsecase, auditUsecase)

	// Public routes
	s.echo.POST("/auth/login", authHandler.Login)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
	}
	requireStaff := auth.RequireStaff(s.logger)

	// API v1 routes: JWT first, then audit context so every write carries
	// actor and request metadata.
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig), auth.AuditContext())

	// Clients
	clients := v1.Group("/clients")
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PATCH("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)
	clients.GET("/:id/history", clientHandler.History, requireStaff)

	// Departments
	departments := v1.Group("/departments")
	departments.GET("", departmentHandler.List)
	departments.GET("/:id", departmentHandler.Get)
	departments.POST("", departmentHandler.Create, requireStaff)
	departments.PATCH("/:id", departmentHandler.Update, requireStaff)
	departments.DELETE("/:id", departmentHandler.Delete, requireStaff)

	// Users
	users := v1.Group("/users")
	users.GET("", userHandler.List)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, requireStaff)
	users.PATCH("/:id", userHandler.Update, requireStaff)
	users.DELETE("/:id", userHandler.Delete, requireStaff)

	// Admin surface: soft-delete visibility, restore, purge, change log
	admin := v1.Group("/admin", requireStaff)
	admin.GET("/clients", adminHandler.ListClients)
	admin.POST("/clients/:id/restore", adminHandler.RestoreClient)
	admin.DELETE("/clients/:id/purge", adminHandler.PurgeClient)
	admin.GET("/audit", adminHandler.ListAuditEvents)
}
