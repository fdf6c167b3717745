package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	httpapi "github.com/GriffinCanCode/numclass/internal/api/http"
	"github.com/GriffinCanCode/numclass/internal/api/middleware"
	"github.com/GriffinCanCode/numclass/internal/domain/classify"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/config"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/numclass/internal/providers/funfact"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	classifier *classify.Classifier
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// Option customizes server construction.
type Option func(*options)

type options struct {
	logger   *logging.Logger
	enricher classify.Enricher
}

// WithLogger replaces the logger built from configuration.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEnricher replaces the fun fact source built from configuration.
func WithEnricher(enricher classify.Enricher) Option {
	return func(o *options) { o.enricher = enricher }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing number classifier",
		zap.String("addr", cfg.Addr()),
		zap.Bool("funfact_enabled", cfg.FunFact.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("numclass", logger.Logger)

	enricher, breaker := buildEnricher(cfg, o.enricher, logger, metrics, tracer)
	classifier := classify.New(enricher, metrics, logger.Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Handler panicked",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		httpapi.InternalError(c)
	}))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(rateLimiter(cfg.RateLimit, logger))
	}
	router.Use(middleware.AccessLog(logger.Logger))

	handlers := httpapi.NewHandlers(classifier, breaker, logger.Logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/api/classify-number", handlers.ClassifyNumber)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	var handler http.Handler = router
	if cfg.Server.Compression {
		handler = gzhttp.GzipHandler(router)
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		classifier: classifier,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}, nil
}

// rateLimiter picks the per-IP or the shared limiter for the configured scope.
func rateLimiter(cfg config.RateLimitConfig, logger *logging.Logger) gin.HandlerFunc {
	logger.Info("Rate limiting enabled",
		zap.String("scope", cfg.Scope),
		zap.Int("rps", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
	)
	limits := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	}
	if cfg.Scope == config.ScopeGlobal {
		return middleware.GlobalRateLimit(limits)
	}
	return middleware.RateLimit(limits)
}

// buildEnricher returns the configured fun fact source and, for the HTTP
// client, its breaker.
func buildEnricher(
	cfg *config.Config,
	override classify.Enricher,
	logger *logging.Logger,
	metrics *monitoring.Metrics,
	tracer *tracing.Tracer,
) (classify.Enricher, *resilience.Breaker) {
	if override != nil {
		return override, nil
	}
	if !cfg.FunFact.Enabled {
		logger.Info("Fun fact lookup disabled, serving fallback text")
		return funfact.Fallback{}, nil
	}

	client := funfact.New(funfact.Config{
		URL:             cfg.FunFact.URL,
		Timeout:         cfg.FunFact.Timeout,
		Retries:         cfg.FunFact.Retries,
		AllowNegative:   cfg.FunFact.AllowNegative,
		BreakerFailures: cfg.FunFact.BreakerFailures,
		BreakerCooldown: cfg.FunFact.BreakerCooldown,
		PropagateTrace:  cfg.FunFact.PropagateTrace,
	},
		funfact.WithLogger(logger.Logger),
		funfact.WithMetrics(metrics),
		funfact.WithTracer(tracer),
	)
	logger.Info("Fun fact lookup enabled",
		zap.String("url", cfg.FunFact.URL),
		zap.Duration("timeout", cfg.FunFact.Timeout),
	)
	return client, client.Breaker()
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Classifier returns the classifier serving the API.
func (s *Server) Classifier() *classify.Classifier {
	return s.classifier
}

// Metrics returns the server's metrics registry.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run starts the HTTP server and blocks until it stops. A clean Shutdown
// returns nil.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	_ = s.logger.Sync()
	return nil
}
