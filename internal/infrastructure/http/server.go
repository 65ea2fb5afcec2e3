package http

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/v5hhrxpsqg-tech/Scribeer/internal/adapter/handler/http"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/config"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/middleware/auth"
	"github.com/v5hhrxpsqg-tech/Scribeer/pkg/logger"
	"go.uber.org/zap"
)

// Handlers are the route targets the server mounts
type Handlers struct {
	Health  *handlers.HealthHandler
	Webhook *handlers.WebhookHandler
	Credit  *handlers.CreditHandler
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	handlers Handlers
}

func NewServer(cfg *config.Config, log *zap.Logger, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	logger.WithEchoLogger(e, log)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())

	s := &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		handlers: h,
	}
	s.setupRoutes()
	return s
}

// Echo exposes the router for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", s.handlers.Health.Health)

	// Webhook route (outside API versioning, authenticated by signature)
	s.echo.POST(s.config.Webhook.Path, s.handlers.Webhook.HandleWebhook)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Supabase.JWTSecret,
		Logger: s.logger,
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))
	v1.GET("/credits", s.handlers.Credit.GetCredits)
}
