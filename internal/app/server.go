package app

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/config"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/auth"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/middleware"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/validate"
)

const Version = "0.1.0"

// NewServer builds the echo instance with global middleware, health
// endpoints and the /api group. pool backs /health/db and may be nil.
func NewServer(cfg *config.Config, logger zerolog.Logger, svcs *Services, pool *pgxpool.Pool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Validator = validate.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Recovery(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
		ExposeHeaders: []string{crud.HeaderRecordSource, middleware.RequestIDHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"version": Version,
			"store":   cfg.StoreDriver,
			"remote":  cfg.RemoteEnabled(),
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	api := e.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           middleware.DefaultRateLimitConfig().IdleTTL,
	}))
	api.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	if cfg.AuthEnabled() {
		api.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.AuthSecret),
			Skipper:    auth.AuthSkipper,
		}))
	} else {
		logger.Warn().Msg("AUTH_SECRET is not set; /api is unauthenticated")
	}
	svcs.RegisterRoutes(api)
	return e
}
