package worker

import (
	"context"
	"time"

	enrollsvc "gymdesk-service/internal/service/enrollment"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// sweepLockKey guards the periodic sweep so only one instance runs it
// when several share a redis.
const sweepLockKey = "enrollments:sweep:lock"

// ExpiryWorker periodically flips past-due enrollments to expired.
type ExpiryWorker struct {
	enrollments *enrollsvc.Service
	rdb         *redis.Client
	interval    time.Duration
	logger      *zap.Logger
}

func NewExpiryWorker(enrollments *enrollsvc.Service, rdb *redis.Client, interval time.Duration, logger *zap.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		enrollments: enrollments,
		rdb:         rdb,
		interval:    interval,
		logger:      logger,
	}
}

// Start blocks until ctx is cancelled, sweeping once immediately and then
// on every tick.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.logger.Info("expiry worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	if !w.acquireLock(ctx) {
		return
	}

	expired, err := w.enrollments.SweepExpirations(ctx)
	if err != nil {
		w.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		w.logger.Info("expiry worker sweep", zap.Int("expired", expired))
	}
}

// acquireLock takes the sweep lease. Without redis there is nothing to
// coordinate with, so the sweep runs unconditionally.
func (w *ExpiryWorker) acquireLock(ctx context.Context) bool {
	if w.rdb == nil {
		return true
	}

	ok, err := w.rdb.SetNX(ctx, sweepLockKey, "1", w.interval).Result()
	if err != nil {
		w.logger.Warn("sweep lock unavailable, proceeding", zap.Error(err))
		return true
	}
	return ok
}
