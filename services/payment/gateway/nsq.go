package gateway

import (
	"context"

	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/metrics"
	"github.com/piresc/toolshare/internal/pkg/models"
)

type queuePublisher interface {
	Publish(topic string, message interface{}) error
}

// NotificationGW queues emails on NSQ for the mail worker
type NotificationGW struct {
	producer queuePublisher
}

func NewNotificationGW(producer queuePublisher) *NotificationGW {
	return &NotificationGW{producer: producer}
}

// Notify never fails the caller; a notification that cannot be queued is
// logged and dropped
func (g *NotificationGW) Notify(ctx context.Context, n models.Notification) {
	if err := g.producer.Publish(constants.TopicNotificationEmail, n); err != nil {
		metrics.NotificationsQueued.WithLabelValues(string(n.Type), "error").Inc()
		logger.WarnCtx(ctx, "Failed to queue notification",
			logger.String("type", string(n.Type)),
			logger.UUID("recipient_id", n.RecipientID),
			logger.UUID("rental_id", n.RentalID),
			logger.Err(err))
		return
	}
	metrics.NotificationsQueued.WithLabelValues(string(n.Type), "queued").Inc()
}
