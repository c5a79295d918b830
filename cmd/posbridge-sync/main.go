package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"

	"posbridge/internal/modkit"
	"posbridge/internal/modkit/module"
	"posbridge/internal/modkit/repokit"
	"posbridge/internal/platform/cache"
	"posbridge/internal/platform/config"
	"posbridge/internal/platform/logger"
	"posbridge/internal/platform/store"

	"posbridge/internal/core/windowplan"
	syncdomain "posbridge/internal/services/sync/domain"
	syncmod "posbridge/internal/services/sync/module"
)

const dateLayout = "2006-01-02"

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", true),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to run against a database that does not answer
	repokit.MustGuard(context.Background(), st)

	var (
		fEntity = flag.String("entity", "", "entity to sync: organizations | products | sales | transactions")
		fAll    = flag.Bool("all", false, "sync every entity in order (ignores -entity)")
		fFrom   = flag.String("from", "", "UTC start day YYYY-MM-DD")
		fTo     = flag.String("to", "", "UTC end day YYYY-MM-DD exclusive")
	)
	flag.Parse()

	if !*fAll && *fEntity == "" {
		l.Panic().Msg("must provide -entity or -all")
	}

	from, to := windowplan.DefaultRange(time.Now())
	if *fFrom != "" {
		t, err := time.ParseInLocation(dateLayout, *fFrom, time.UTC)
		if err != nil {
			l.Panic().Err(err).Msg("bad -from")
		}
		from = t
	}
	if *fTo != "" {
		t, err := time.ParseInLocation(dateLayout, *fTo, time.UTC)
		if err != nil {
			l.Panic().Err(err).Msg("bad -to")
		}
		to = t
	}

	// Shared deps for modules
	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// The tag cache only matters for a co-resident API; a CLI run still
	// wires one so invalidation stays a no-op instead of a nil check.
	sm, err := syncmod.New(deps, cache.NewTags(0))
	if err != nil {
		l.Panic().Err(err).Msg("sync module wiring failed")
	}
	module.Register(sm.Name(), sm.Ports())

	// one run id for every window in this invocation
	ctx := logger.WithRun(context.Background(), uuid.NewString())
	defer sm.Client().Logout(ctx)

	runner := sm.Ports().(syncmod.Ports).Runner

	var res syncdomain.Result
	if *fAll {
		res, err = runner.RunAll(ctx, from, to)
	} else {
		entity, ok := syncdomain.Parse(*fEntity)
		if !ok {
			l.Panic().Str("entity", *fEntity).Msg("unknown entity")
		}
		res, err = runner.Run(ctx, entity, from, to)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("sync failed")
	}

	l.Info().
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("deleted", res.Deleted).
		Int("errors", res.Errors).
		Msg("sync finished")
}
