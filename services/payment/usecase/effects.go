package usecase

import (
	"context"

	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/metrics"
	"github.com/piresc/toolshare/internal/pkg/models"
)

// sideEffects collects what a settlement step announces. It is filled inside
// the database transaction and flushed only after commit.
type sideEffects struct {
	notifications []models.Notification
	events        []models.SettlementEvent
}

func (fx *sideEffects) notify(n models.Notification) {
	fx.notifications = append(fx.notifications, n)
}

func (fx *sideEffects) publish(e models.SettlementEvent) {
	fx.events = append(fx.events, e)
}

func (uc *paymentUC) flush(ctx context.Context, fx *sideEffects) {
	if uc.events != nil {
		for _, e := range fx.events {
			if err := uc.events.PublishSettlementEvent(ctx, e); err != nil {
				logger.WarnCtx(ctx, "Failed to publish settlement event",
					logger.String("event_type", string(e.Type)),
					logger.UUID("transaction_id", e.TransactionID),
					logger.Err(err))
			}
		}
	}
	if uc.notifier != nil {
		for _, n := range fx.notifications {
			uc.notifier.Notify(ctx, n)
		}
	}
}

func recordOutcome(operation string, code models.ResultCode) {
	metrics.SettlementOutcomes.WithLabelValues(operation, string(code)).Inc()
}
