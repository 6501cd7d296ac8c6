// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"trip-feed-service/internal/app/service"
	"trip-feed-service/pkg/locker"
)

// RankingRefresher periodically rewarms the cached leaderboards. A
// distributed lock ensures only one instance refreshes per interval.
type RankingRefresher struct {
	ranking  *service.RankingService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresher configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRankingRefresher creates a new RankingRefresher.
func NewRankingRefresher(
	ranking *service.RankingService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RankingRefresher {
	return &RankingRefresher{
		ranking:  ranking,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   locker,
	}
}

// Start begins the background refresh loop.
func (r *RankingRefresher) Start(runOnStartup bool) {
	r.ctx, r.cancel = context.WithCancel(context.Background())

	r.logger.Info("starting ranking refresher",
		zap.Duration("interval", r.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	r.wg.Add(1)
	go r.run(runOnStartup)
}

// Stop gracefully stops the refresher.
func (r *RankingRefresher) Stop() {
	r.logger.Info("stopping ranking refresher")
	r.cancel()
	r.wg.Wait()
	r.logger.Info("ranking refresher stopped")
}

func (r *RankingRefresher) run(runOnStartup bool) {
	defer r.wg.Done()

	if runOnStartup {
		r.refresh()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

// refresh recomputes the leaderboards under the distributed lock.
// The lock TTL equals the interval: a successful run keeps it for the
// whole cooldown, a failed run releases it so another instance can
// retry immediately.
func (r *RankingRefresher) refresh() {
	const lockKey = "rankings:refresh:lock"

	acquired, err := r.locker.Acquire(r.ctx, lockKey, r.interval)
	if err != nil {
		r.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		r.logger.Debug("another instance is refreshing rankings, skipping")

		return
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	start := time.Now()
	if err := r.ranking.Refresh(ctx); err != nil {
		if relErr := r.locker.Release(r.ctx, lockKey); relErr != nil {
			r.logger.Error("failed to release lock after refresh error", zap.Error(relErr))
		}
		r.logger.Warn("ranking refresh failed, lock released for retry", zap.Error(err))

		return
	}

	r.logger.Info("rankings refreshed, lock held for cooldown",
		zap.Duration("took", time.Since(start)),
		zap.Duration("cooldown", r.interval),
	)
}
