package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/config"
	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/metrics"
	"github.com/Reblayzer/BachelorCode-sub000/internal/middleware"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionName = "linker_session"

// HealthChecker is the database dependency of the health endpoint
type HealthChecker interface {
	Health(ctx context.Context) error
}

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db HealthChecker,
	h handlerSet,
	prometheusMetrics core.Recorder,
	logger *slog.Logger,
) *gin.Engine {
	setupGinMode(cfg, logger)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	if cfg.AuthMode == config.AuthModeSession {
		setupSessionMiddleware(r, cfg)
	}

	r.GET("/health", createHealthCheckHandler(db))
	setupMetricsEndpoint(r, cfg, logger)

	auth := middleware.NewAuthenticator(cfg.AuthMode, cfg.AuthHeader)
	setupAPIRoutes(r, auth, h)

	logServerStartup(cfg, h, logger)
	return r
}

// setupSessionMiddleware configures the cookie session that carries the principal
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SessionSecure || cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessionStore))
}

// setupAPIRoutes registers the linking and file routes. The callback is
// reached by the provider redirect, so it only picks up a principal when
// one is present.
func setupAPIRoutes(r *gin.Engine, auth *middleware.Authenticator, h handlerSet) {
	api := r.Group("/api")
	api.GET("/providers/:provider/callback", auth.OptionalUser(), h.link.Callback)

	user := api.Group("", auth.RequireUser())
	{
		user.GET("/providers", h.link.ListLinked)
		user.POST("/providers/:provider/link", h.link.StartLink)
		user.DELETE("/providers/:provider", h.link.Disconnect)

		user.GET("/files", h.files.ListAll)
		user.GET("/files/:provider", h.files.ListProvider)
		user.GET("/files/:provider/:fileId", h.files.Metadata)
		user.GET("/files/:provider/:fileId/view", h.files.View)
	}
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		logger.Info("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.Info("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.Warn("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		switch err := db.Health(ctx); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config, logger *slog.Logger) {
	mode := ginModeMap[cfg.IsProduction()]
	gin.SetMode(mode)
	logger.Info("Gin mode: " + ginModeLogMessage[cfg.IsProduction()])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config, h handlerSet, logger *slog.Logger) {
	logger.Info("provider linking server starting",
		"addr", cfg.ServerAddr,
		"auth_mode", cfg.AuthMode,
		"state_store", cfg.StateStore,
	)
	for _, p := range models.KnownProviders {
		logger.Info("callback URL", "provider", p.String(), "redirect_uri", h.link.CallbackURL(p))
	}
}
