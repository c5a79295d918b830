// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"posbridge/internal/platform/cache"
	"posbridge/internal/platform/config"
	"posbridge/internal/platform/logger"
	phttp "posbridge/internal/platform/net/http"
	"posbridge/internal/platform/store"

	"posbridge/internal/modkit"
	"posbridge/internal/modkit/httpkit"
	"posbridge/internal/modkit/module"
	"posbridge/internal/modkit/swaggerkit"

	metamod "posbridge/internal/services/api/meta/module"
	reportsmod "posbridge/internal/services/api/reports/module"
	syncapimod "posbridge/internal/services/api/syncapi/module"

	// Worker sync module (owns the Runner port and the vendor session)
	worksync "posbridge/internal/services/sync/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CacheTTL       time.Duration
}

// Cleanup releases resources held by mounted modules, the vendor session
// in particular
type Cleanup func(context.Context)

// Mount mounts the API service onto the given router. The error is fatal:
// a sync worker that cannot be wired leaves nothing worth serving.
func Mount(r phttp.Router, opt Options) (Cleanup, error) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// one tag cache shared by reports reads and sync invalidation
	tags := cache.NewTags(opt.CacheTTL)

	// Construct the WORKER sync module first and extract its Runner port
	workerSync, err := worksync.New(deps, tags)
	if err != nil {
		return nil, err
	}
	runner := workerSync.Ports().(worksync.Ports).Runner

	mods := []module.Module{
		metamod.New(deps),
		syncapimod.New(deps, runner),
		reportsmod.New(deps, tags),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// register the worker ports too so cross-module lookups resolve
		module.Register(workerSync.Name(), workerSync.Ports())

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	cleanup := func(ctx context.Context) {
		workerSync.Client().Logout(ctx)
	}
	return cleanup, nil
}
