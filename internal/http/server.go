package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/afga-dev/attendify-api/internal/auth/http"
	authUseCase "github.com/afga-dev/attendify-api/internal/auth/usecase"
	"github.com/afga-dev/attendify-api/internal/authz"
	categoryHTTP "github.com/afga-dev/attendify-api/internal/category/http"
	"github.com/afga-dev/attendify-api/internal/config"
	eventHTTP "github.com/afga-dev/attendify-api/internal/event/http"
	registrationHTTP "github.com/afga-dev/attendify-api/internal/registration/http"
	userHTTP "github.com/afga-dev/attendify-api/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is assembled later through
// SetupRouter once all handlers exist.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries everything route registration needs.
type RouterConfig struct {
	Config *config.Config

	AuthUseCase authUseCase.AuthUseCase

	AuthHandler         *authHTTP.AuthHandler
	UserHandler         *userHTTP.UserHandler
	CategoryHandler     *categoryHTTP.CategoryHandler
	EventHandler        *eventHTTP.EventHandler
	RegistrationHandler *registrationHTTP.RegistrationHandler

	// MetricsMiddleware is optional; nil disables HTTP metrics recording.
	MetricsMiddleware gin.HandlerFunc
}

// SetupRouter builds the gin router and registers every route.
func (s *Server) SetupRouter(cfg RouterConfig) {
	gin.SetMode(cfg.Config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(cfg.Config.CORSEnabled, cfg.Config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	s.registerRoutes(router, cfg)
	s.router = router
}

// registerRoutes wires every versioned API route.
//
// Three exposure levels: public (no token), session (login/register/refresh,
// IP rate limited since no principal exists yet), and authenticated (bearer
// token, per-user rate limited, permission-gated where needed).
func (s *Server) registerRoutes(router *gin.Engine, cfg RouterConfig) {
	authenticate := authHTTP.AuthenticationMiddleware(cfg.AuthUseCase, s.logger)

	v1 := router.Group("/v1")

	// Session endpoints carry no principal, so limiting is per client IP.
	session := v1.Group("/auth")
	if cfg.Config.RateLimitAuthEnabled {
		session.Use(authHTTP.SessionRateLimitMiddleware(
			cfg.Config.RateLimitAuthRequestsPerSec,
			cfg.Config.RateLimitAuthBurst,
			s.logger,
		))
	}
	session.POST("/register", cfg.AuthHandler.RegisterHandler)
	session.POST("/login", cfg.AuthHandler.LoginHandler)
	session.POST("/refresh", cfg.AuthHandler.RefreshHandler)
	session.POST("/logout", cfg.AuthHandler.LogoutHandler)

	// Public reads.
	v1.GET("/categories", cfg.CategoryHandler.ListHandler)
	v1.GET("/categories/:id", cfg.CategoryHandler.GetHandler)
	v1.GET("/events", cfg.EventHandler.ListHandler)
	v1.GET("/events/:id", cfg.EventHandler.GetHandler)

	// Everything below requires a verified access token.
	authed := v1.Group("")
	authed.Use(authenticate)
	if cfg.Config.RateLimitEnabled {
		authed.Use(authHTTP.RateLimitMiddleware(
			cfg.Config.RateLimitRequestsPerSec,
			cfg.Config.RateLimitBurst,
			s.logger,
		))
	}

	require := func(permission authz.Permission) gin.HandlerFunc {
		return authHTTP.RequirePermission(permission, s.logger)
	}

	// Account management.
	authed.POST("/auth/register-with-roles", require(authz.UserForceCreate), cfg.AuthHandler.RegisterWithRolesHandler)
	authed.PUT("/auth/password", cfg.AuthHandler.ChangePasswordHandler)
	authed.PUT("/auth/email", cfg.AuthHandler.ChangeEmailHandler)

	// Users.
	authed.GET("/users/me", cfg.UserHandler.MeHandler)
	authed.GET("/users", require(authz.UserReadAll), cfg.UserHandler.ListHandler)
	authed.GET("/users/deleted", require(authz.UserReadDeleted), cfg.UserHandler.ListDeletedHandler)
	authed.GET("/users/with-deleted", require(authz.UserReadWithDeleted), cfg.UserHandler.ListWithDeletedHandler)
	authed.GET("/users/:id", require(authz.UserForceRead), cfg.UserHandler.GetHandler)
	authed.PUT("/users/:id/roles", require(authz.UserForceUpdate), cfg.UserHandler.AssignRolesHandler)
	authed.DELETE("/users/:id", require(authz.UserForceDelete), cfg.UserHandler.DeleteHandler)
	authed.POST("/users/:id/restore", require(authz.UserRestore), cfg.UserHandler.RestoreHandler)

	// Categories.
	authed.POST("/categories", require(authz.CategoryCreate), cfg.CategoryHandler.CreateHandler)
	authed.GET("/categories/deleted", require(authz.CategoryReadDeleted), cfg.CategoryHandler.ListDeletedHandler)
	authed.GET("/categories/with-deleted", require(authz.CategoryReadWithDeleted), cfg.CategoryHandler.ListWithDeletedHandler)
	authed.PUT("/categories/:id", require(authz.CategoryUpdate), cfg.CategoryHandler.UpdateHandler)
	authed.DELETE("/categories/:id", require(authz.CategoryDelete), cfg.CategoryHandler.DeleteHandler)
	authed.POST("/categories/:id/restore", require(authz.CategoryRestore), cfg.CategoryHandler.RestoreHandler)

	// Events. Update and delete also apply the ownership rule in the use case.
	authed.POST("/events", require(authz.EventCreate), cfg.EventHandler.CreateHandler)
	authed.GET("/events/deleted", require(authz.EventReadDeleted), cfg.EventHandler.ListDeletedHandler)
	authed.GET("/events/with-deleted", require(authz.EventReadWithDeleted), cfg.EventHandler.ListWithDeletedHandler)
	authed.PUT("/events/:id", cfg.EventHandler.UpdateHandler)
	authed.DELETE("/events/:id", cfg.EventHandler.DeleteHandler)
	authed.POST("/events/:id/restore", require(authz.EventRestore), cfg.EventHandler.RestoreHandler)

	// Registrations.
	authed.POST("/events/:id/registrations", require(authz.RegistrationCreate), cfg.RegistrationHandler.RegisterHandler)
	authed.GET("/events/:id/registrations", require(authz.RegistrationReadByEvent), cfg.RegistrationHandler.ListByEventHandler)
	authed.GET("/registrations/me", cfg.RegistrationHandler.ListMineHandler)
	authed.GET("/registrations/deleted", require(authz.RegistrationReadDeleted), cfg.RegistrationHandler.ListDeletedHandler)
	authed.GET("/registrations/with-deleted", require(authz.RegistrationReadWithDeleted), cfg.RegistrationHandler.ListWithDeletedHandler)
	authed.GET("/registrations/:id", cfg.RegistrationHandler.GetHandler)
	authed.POST("/registrations/:id/checkin", require(authz.RegistrationCheckIn), cfg.RegistrationHandler.CheckInHandler)
	authed.DELETE("/registrations/:id", cfg.RegistrationHandler.CancelHandler)
	authed.POST("/registrations/:id/restore", require(authz.RegistrationRestore), cfg.RegistrationHandler.RestoreHandler)
}

// GetRouter returns the router for testing purposes.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
