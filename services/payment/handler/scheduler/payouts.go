package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	nrpkg "github.com/piresc/toolshare/internal/pkg/newrelic"
	"github.com/piresc/toolshare/services/payment"
	"github.com/robfig/cron/v3"
)

const defaultLockTTL = 10 * time.Minute

// PayoutScheduler sweeps due owner payouts on a cron schedule. A Redis lease
// keeps replicas from sweeping at the same time.
type PayoutScheduler struct {
	paymentUC payment.PaymentUC
	redis     *database.RedisClient
	cfg       models.SchedulerConfig
	nrApp     *newrelic.Application
	cron      *cron.Cron
}

// NewPayoutScheduler creates a new payout scheduler
func NewPayoutScheduler(paymentUC payment.PaymentUC, redis *database.RedisClient, cfg models.SchedulerConfig, nrApp *newrelic.Application) *PayoutScheduler {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	return &PayoutScheduler{
		paymentUC: paymentUC,
		redis:     redis,
		cfg:       cfg,
		nrApp:     nrApp,
		cron:      cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start registers the sweep and starts the cron runner
func (s *PayoutScheduler) Start() error {
	if !s.cfg.Enabled {
		logger.Info("Payout scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.PayoutCron, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			logger.Error("Scheduled payout run failed", logger.Err(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid payout cron %q: %w", s.cfg.PayoutCron, err)
	}

	s.cron.Start()
	logger.Info("Payout scheduler started", logger.String("cron", s.cfg.PayoutCron))
	return nil
}

// RunOnce sweeps due payouts if no other replica holds the lease. A nil
// summary with a nil error means the sweep was skipped.
func (s *PayoutScheduler) RunOnce(ctx context.Context) (*models.PayoutRunSummary, error) {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, s.nrApp, "Payouts.ScheduledRun")
	defer end()

	token := uuid.NewString()
	acquired, err := s.redis.AcquireLock(ctx, constants.KeyPayoutLock, token, s.cfg.LockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		logger.Debug("Payout run skipped, lease held elsewhere")
		return nil, nil
	}
	defer func() {
		if err := s.redis.ReleaseLock(context.Background(), constants.KeyPayoutLock, token); err != nil {
			logger.Warn("Failed to release payout lease", logger.Err(err))
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.LockTTL)
	defer cancel()

	start := time.Now()
	summary, err := s.paymentUC.ProcessScheduledPayouts(runCtx)
	if err != nil {
		if txn := newrelic.FromContext(ctx); txn != nil {
			txn.NoticeError(err)
		}
		return nil, fmt.Errorf("failed to process scheduled payouts: %w", err)
	}

	logger.Info("Scheduled payout run finished",
		logger.Int("eligible", summary.Eligible),
		logger.Int("succeeded", summary.Succeeded),
		logger.Int("rejected", summary.Rejected),
		logger.Int("pending", summary.Pending),
		logger.Int("errored", summary.Errored),
		logger.Duration("duration", time.Since(start)))
	return summary, nil
}

// Stop waits for a running sweep to finish
func (s *PayoutScheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		logger.Warn("Payout scheduler stop timed out")
	}
}
