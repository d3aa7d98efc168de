package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/config"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/cache"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/fhir"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/memstore"
)

const memoryCacheEntries = 1024

// Runtime holds the opened collaborators and closes them in Close.
type Runtime struct {
	Deps   Deps
	Pool   *pgxpool.Pool
	closer []func()
}

func (r *Runtime) Close() {
	for i := len(r.closer) - 1; i >= 0; i-- {
		r.closer[i]()
	}
}

// Open connects the store, the remote cache and the FHIR client described
// by cfg.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Runtime, error) {
	rt := &Runtime{Deps: Deps{Logger: logger, CacheTTL: cfg.RemoteCacheTTL}}

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, db.WithSearchPath(cfg.DBSchema))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		rt.Pool, rt.Deps.Pool = pool, pool
		rt.closer = append(rt.closer, pool.Close)
		logger.Info().Str("schema", cfg.DBSchema).Msg("connected to database")
	default:
		rt.Deps.Store = memstore.New()
		logger.Info().Msg("using in-memory store")
	}

	if cfg.RemoteEnabled() {
		rt.Deps.FHIR = fhir.NewClient(cfg.FHIRBaseURL, cfg.FHIRTimeout,
			fhir.WithRetries(cfg.FHIRMaxRetries),
			fhir.WithLogger(logger))
		logger.Info().Str("base_url", cfg.FHIRBaseURL).Msg("clinical API enabled")
	}

	if cfg.RemoteCacheTTL > 0 {
		if cfg.RedisURL != "" {
			client, err := cache.Connect(ctx, cfg.RedisURL)
			if err != nil {
				rt.Close()
				return nil, err
			}
			rt.closer = append(rt.closer, func() { client.Close() })
			rt.Deps.Cache = cache.NewRedis(client, "ehr:")
			logger.Info().Msg("remote cache: redis")
		} else {
			rt.Deps.Cache = cache.NewMemory(memoryCacheEntries)
			logger.Info().Msg("remote cache: in-process")
		}
	}
	return rt, nil
}
