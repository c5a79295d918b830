// @title         Posbridge API
// @version       0.1.0
// @description   Sync triggers and report endpoints over the vendor POS data

package main

import (
	"context"

	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/config"
	"posbridge/internal/platform/logger"
	phttp "posbridge/internal/platform/net/http"
	"posbridge/internal/platform/store"

	"posbridge/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:        true,
				URL:            pgCfg.MustString("DBURL"),
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", true),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to start against a database that does not answer
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	cleanup, err := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
			CacheTTL:       apiCfg.MayDuration("CACHE_TTL", 0),
		},
	)
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}
	defer cleanup(context.Background())

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
