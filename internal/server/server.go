package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/renderguard/renderguard/internal/api/http"
	"github.com/renderguard/renderguard/internal/api/middleware"
	"github.com/renderguard/renderguard/internal/app"
	"github.com/renderguard/renderguard/internal/blueprint"
	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/infrastructure/logging"
	"github.com/renderguard/renderguard/internal/infrastructure/monitoring"
	"github.com/renderguard/renderguard/internal/telemetry"
	"github.com/renderguard/renderguard/internal/view"
	"github.com/renderguard/renderguard/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg        *config.Config
	logger     *logging.Logger
	router     *gin.Engine
	httpServer *http.Server
	appManager *app.Manager
	metrics    *monitoring.Metrics
}

// New creates a new server instance
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg.Mode.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.NewMetrics()

	// Telemetry sink: real collector only when an endpoint is configured
	// and reporting is enabled; the boundary itself decides that only
	// production-mode faults go here.
	var sink telemetry.Sink = telemetry.Nop{}
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint != "" {
		sink = telemetry.NewHTTPSink(cfg.Telemetry.Endpoint, logger)
	}

	engine := view.NewEngine()
	appManager := app.NewManager(engine, cfg.Mode, sink, logger).WithMetrics(metrics)

	// Seed blueprints shipped with the deployment.
	if cfg.Blueprint.Dir != "" {
		seeded, errs := blueprint.LoadDir(cfg.Blueprint.Dir)
		for _, err := range errs {
			logger.Warn("skipping blueprint", zap.Error(err))
		}
		for _, bp := range seeded {
			if _, err := appManager.Spawn(bp); err != nil {
				logger.Warn("failed to spawn blueprint",
					zap.String("blueprint", bp.ID),
					zap.Error(err))
				continue
			}
			logger.Info("spawned blueprint", zap.String("blueprint", bp.ID))
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(appManager, cfg.Mode)
	wsHandler := ws.NewHandler(appManager, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// App lifecycle
	router.GET("/apps", handlers.ListApps)
	router.POST("/apps", handlers.SpawnApp)
	router.GET("/apps/:id", handlers.GetApp)
	router.GET("/apps/:id/render", handlers.RenderApp)
	router.POST("/apps/:id/reset", handlers.ResetApp)
	router.POST("/apps/:id/reload", handlers.ReloadApp)
	router.DELETE("/apps/:id", handlers.CloseApp)

	// Boundary event stream
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		router:     router,
		appManager: appManager,
		metrics:    metrics,
	}, nil
}

// Manager exposes the app manager, mainly for tests.
func (s *Server) Manager() *app.Manager {
	return s.appManager
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.logger.Info("starting renderguard",
		zap.String("addr", addr),
		zap.String("mode", string(s.cfg.Mode)))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
