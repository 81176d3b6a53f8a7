package cacheimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/internal/migrations"
	"github.com/orgball2608/social-post-fetcher/internal/pgx"
	"github.com/orgball2608/social-post-fetcher/internal/repositories/cacheentry"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// New builds the configured backend wrapped in Resilient.
func New(opts Opts) (cache.Client, error) {
	var backend cache.Client

	switch opts.Config.Cache.Driver {
	case config.CacheDriverPostgres:
		pg, err := newPostgresBackend(opts)
		if err != nil {
			return nil, err
		}
		backend = pg
	case config.CacheDriverRedis:
		backend = NewRedis(NewRedisClient(opts.LC, opts.Config, opts.Logger), opts.Logger)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", opts.Config.Cache.Driver)
	}

	opts.Logger.Info("Cache backend selected", "driver", opts.Config.Cache.Driver, "ttl", opts.Config.Cache.TTL.String())
	return NewResilient(backend, opts.Logger), nil
}

func newPostgresBackend(opts Opts) (*Postgres, error) {
	pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
	if err != nil {
		return nil, err
	}

	repo := cacheentry.NewPgxRepository(pool, opts.Logger)
	cleaner := NewCleaner(repo, opts.Logger)

	// Appended after the pool hook, so the pool is pinged before migrating.
	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrations.Up(ctx, opts.Config.GetDSN()); err != nil {
				return err
			}
			return cleaner.Schedule(context.Background(), opts.Config.Cache.CleanupCron)
		},
		OnStop: func(ctx context.Context) error {
			return cleaner.Stop()
		},
	})

	return NewPostgres(repo, opts.Logger), nil
}
