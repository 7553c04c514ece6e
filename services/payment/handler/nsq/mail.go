package nsq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	nrpkg "github.com/piresc/toolshare/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/toolshare/internal/pkg/nsq"
	"github.com/piresc/toolshare/services/payment"
)

const maxDeliveryAttempts = 8

// MailWorker delivers queued settlement notifications by email
type MailWorker struct {
	paymentUC payment.PaymentUC
	cfg       models.NSQConfig
	nrApp     *newrelic.Application
	consumer  *nsqpkg.Consumer
}

// NewMailWorker creates a new notification mail worker
func NewMailWorker(paymentUC payment.PaymentUC, cfg models.NSQConfig, nrApp *newrelic.Application) *MailWorker {
	return &MailWorker{
		paymentUC: paymentUC,
		cfg:       cfg,
		nrApp:     nrApp,
	}
}

// Start subscribes to the notification topic
func (w *MailWorker) Start() error {
	consumer, err := nsqpkg.NewConsumer(nsqpkg.ConsumerConfig{
		Topic:          constants.TopicNotificationEmail,
		Channel:        w.cfg.MailChannelName,
		NSQDAddress:    w.cfg.NSQDAddress,
		LookupdAddress: w.cfg.LookupdAddress,
		MaxInFlight:    w.cfg.MaxInFlight,
		MaxAttempts:    maxDeliveryAttempts,
	}, w.HandleMessage)
	if err != nil {
		return fmt.Errorf("failed to start mail worker: %w", err)
	}
	w.consumer = consumer

	logger.Info("Mail worker started",
		logger.String("topic", constants.TopicNotificationEmail),
		logger.String("channel", w.cfg.MailChannelName))
	return nil
}

// HandleMessage decodes one notification and mails it
func (w *MailWorker) HandleMessage(body []byte) error {
	var n models.Notification
	if err := nsqpkg.UnmarshalMessage(body, &n); err != nil {
		return err
	}
	if n.RecipientID == uuid.Nil {
		return fmt.Errorf("notification %s has no recipient: %w", n.ID, nsqpkg.ErrDrop)
	}

	ctx, end := nrpkg.StartBackgroundTransaction(context.Background(), w.nrApp, "Notifications."+string(n.Type))
	defer end()

	return w.paymentUC.DeliverNotification(ctx, n)
}

// Stop waits for in-flight deliveries
func (w *MailWorker) Stop() {
	if w.consumer != nil {
		w.consumer.Stop()
	}
}
