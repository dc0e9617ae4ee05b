package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grachmannico95/momo-ledger/internal/config"
	"github.com/grachmannico95/momo-ledger/internal/handler"
	"github.com/grachmannico95/momo-ledger/internal/middleware"
	"github.com/grachmannico95/momo-ledger/pkg/logger"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Import      *handler.ImportHandler
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

type Server struct {
	echo          *echo.Echo
	cfg           *config.Config
	logger        *logger.Logger
	authenticator middleware.Authenticator
	handlers      Handlers
}

func New(
	cfg *config.Config,
	log *logger.Logger,
	authenticator middleware.Authenticator,
	handlers Handlers,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	s := &Server{
		echo:          e,
		cfg:           cfg,
		logger:        log,
		authenticator: authenticator,
		handlers:      handlers,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info(context.Background(), "Starting HTTP server",
		"address", addr,
	)

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.echo.Pre(echoMiddleware.RemoveTrailingSlash())
	s.echo.Use(echoMiddleware.Recover())
	s.echo.Use(echoMiddleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Logging(s.logger))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.echo.GET("/health", h.Health.Check)
	if h.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	s.echo.POST("/auth/register", h.Auth.Register)
	s.echo.POST("/auth/login", h.Auth.Login)

	auth := middleware.Auth(s.authenticator, s.logger)

	s.echo.POST("/auth/logout", h.Auth.Logout, auth)

	s.echo.POST("/transactions", h.Transaction.Create, auth)
	s.echo.GET("/transactions", h.Transaction.List, auth)
	s.echo.GET("/transactions/me", h.Transaction.ListMine, auth)
	s.echo.GET("/transactions/:id", h.Transaction.Get, auth)
	s.echo.PUT("/transactions/:id", h.Transaction.Update, auth)
	s.echo.DELETE("/transactions/:id", h.Transaction.Delete, auth)
	s.echo.GET("/indexed_transactions/:id", h.Transaction.GetIndexed, auth)

	s.echo.POST("/imports", h.Import.Upload, auth)
	s.echo.GET("/imports/:id", h.Import.Get, auth)
}

func (s *Server) Handler() *echo.Echo {
	return s.echo
}
