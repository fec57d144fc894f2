package server

import (
	"time"

	"rfphub/internal/ai"
	"rfphub/internal/cache"
	"rfphub/internal/config"
	"rfphub/internal/database"
	"rfphub/internal/email"
	"rfphub/internal/handlers"
	"rfphub/internal/mailbox"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo        *echo.Echo
	db          *sqlx.DB
	config      *config.Config
	logger      zerolog.Logger
	comparisons *cache.ComparisonCache
}

// New creates a new server instance
func New(cfg *config.Config, db *sqlx.DB, logger zerolog.Logger) *Server {
	return &Server{
		config:      cfg,
		db:          db,
		logger:      logger,
		comparisons: cache.New(),
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() error {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	return s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() error {
	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoints (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/db", handlers.DBHealthHandler(s.db))

	// API group with /api prefix
	api := s.echo.Group("/api")
	api.GET("/", handlers.RootHandler(s.config.Version))

	if s.db == nil {
		s.logger.Warn().Msg("No database connection, serving health endpoints only")
		return nil
	}

	rfps, err := database.NewRFPService(s.db)
	if err != nil {
		return err
	}
	vendors, err := database.NewVendorService(s.db)
	if err != nil {
		return err
	}
	proposals, err := database.NewProposalService(s.db)
	if err != nil {
		return err
	}

	// The extractor degrades to its deterministic fallback when no OpenAI
	// key is configured
	var gen ai.Generator
	if client, err := ai.NewClient(s.config.OpenAIKey, s.config.OpenAITimeout); err == nil {
		gen = client
	} else {
		s.logger.Warn().Err(err).Msg("Generative extraction disabled, deterministic fallback only")
		gen = ai.Unavailable{}
	}
	extractor := ai.NewExtractor(gen, s.logger)

	sender := email.NewService(s.config.SendGridAPIKey, s.config.FromEmail)

	dialer := mailbox.NewIMAPDialer(mailbox.IMAPConfig{
		Host:     s.config.IMAPHost,
		Port:     s.config.IMAPPort,
		User:     s.config.IMAPUser,
		Password: s.config.IMAPPassword,
		Timeout:  time.Duration(s.config.IMAPTimeout) * time.Second,
	})
	correlator := mailbox.NewCorrelator(vendors, extractor)
	poller := mailbox.NewPoller(dialer, correlator, proposals, s.logger)

	api.POST("/rfps/generate", handlers.GenerateRFPHandler(extractor))
	api.POST("/rfps/check-emails", handlers.CheckEmailsHandler(poller, s.logger))
	api.POST("/rfps", handlers.CreateRFPHandler(rfps))
	api.GET("/rfps", handlers.ListRFPsHandler(rfps))
	api.GET("/rfps/:id", handlers.GetRFPHandler(rfps, proposals))
	api.POST("/rfps/:id/send", handlers.SendRFPHandler(rfps, vendors, sender, s.logger))
	api.GET("/rfps/:id/compare", handlers.CompareProposalsHandler(proposals, extractor, s.comparisons, s.config.ComparisonCacheTTL))

	api.GET("/vendors", handlers.ListVendorsHandler(vendors))
	api.POST("/vendors", handlers.CreateVendorHandler(vendors))

	return nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
