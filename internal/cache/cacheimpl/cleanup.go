package cacheimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/social-post-fetcher/internal/repositories/cacheentry"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

const cleanupTimeout = 2 * time.Minute

// Cleaner periodically purges expired rows of the postgres cache.
type Cleaner struct {
	repo      cacheentry.Repository
	logger    logger.Logger
	scheduler gocron.Scheduler
	now       func() time.Time
}

func NewCleaner(repo cacheentry.Repository, log logger.Logger) *Cleaner {
	return &Cleaner{
		repo:   repo,
		logger: log.WithComponent("CacheCleaner"),
		now:    time.Now,
	}
}

// Schedule registers the purge job on the given cron expression and starts the scheduler.
func (c *Cleaner) Schedule(ctx context.Context, cronExpr string) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create cache cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				c.logger.Info("Context cancelled, skipping cache cleanup")
				return
			}
			if _, err := c.Purge(ctx); err != nil {
				c.logger.Error("Failed to purge expired cache entries", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule cache cleanup: %w", err)
	}

	c.scheduler = scheduler
	scheduler.Start()
	c.logger.Info("Cache cleanup scheduled", "cron", cronExpr)
	return nil
}

// Purge deletes every expired entry once.
func (c *Cleaner) Purge(ctx context.Context) (int64, error) {
	purgeCtx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()

	rows, err := c.repo.DeleteExpired(purgeCtx, c.now())
	if err != nil {
		return 0, err
	}
	c.logger.Info("Expired cache entries purged", "rows_deleted", rows)
	return rows, nil
}

func (c *Cleaner) Stop() error {
	if c.scheduler == nil {
		return nil
	}
	return c.scheduler.Shutdown()
}
