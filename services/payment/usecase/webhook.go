package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/metrics"
	"github.com/piresc/toolshare/internal/pkg/models"
)

// HandleWebhook verifies and applies a provider callback. Each event id is
// handled once; a failed attempt releases the id so the provider's
// redelivery is processed again.
func (uc *paymentUC) HandleWebhook(ctx context.Context, req *models.WebhookRequest) error {
	valid, err := uc.validateWebhook(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to validate webhook: %w", err)
	}
	if !valid.Success {
		metrics.WebhookEvents.WithLabelValues("unknown", "invalid").Inc()
		logger.WarnCtx(ctx, "Rejected webhook", logger.String("reason", valid.ErrorMessage))
		return fmt.Errorf("%w: %s", models.ErrInvalidWebhook, valid.ErrorMessage)
	}

	parsed, err := uc.processWebhook(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to process webhook: %w", err)
	}
	if !parsed.Success || parsed.Event == nil {
		metrics.WebhookEvents.WithLabelValues("unknown", "invalid").Inc()
		return fmt.Errorf("%w: %s", models.ErrInvalidWebhook, parsed.ErrorMessage)
	}
	event := parsed.Event

	first, err := uc.repo.MarkWebhookProcessed(ctx, event.ID, constants.WebhookEventTTL)
	if err != nil {
		return fmt.Errorf("failed to record webhook event: %w", err)
	}
	if !first {
		metrics.WebhookEvents.WithLabelValues(event.EventType, "duplicate").Inc()
		logger.InfoCtx(ctx, "Ignoring duplicate webhook", logger.String("event_id", event.ID))
		return nil
	}

	if err := uc.applyWebhook(ctx, event); err != nil {
		if releaseErr := uc.repo.ReleaseWebhook(ctx, event.ID); releaseErr != nil {
			logger.WarnCtx(ctx, "Failed to release webhook event",
				logger.String("event_id", event.ID),
				logger.Err(releaseErr))
		}
		metrics.WebhookEvents.WithLabelValues(event.EventType, "error").Inc()
		return err
	}

	metrics.WebhookEvents.WithLabelValues(event.EventType, "processed").Inc()
	return nil
}

func (uc *paymentUC) applyWebhook(ctx context.Context, event *models.WebhookEvent) error {
	switch event.EventType {
	case models.WebhookOrderApproved:
		res, err := uc.CompleteRentalPayment(ctx, event.ResourceID, event.PayerID)
		if err != nil {
			return err
		}
		logger.InfoCtx(ctx, "Order approval handled",
			logger.String("order_id", event.ResourceID),
			logger.String("code", string(res.Code)))

	case models.WebhookCaptureCompleted, models.WebhookCaptureRefunded:
		// captures and refunds are settled synchronously; the callback is
		// only confirmation
		logger.InfoCtx(ctx, "Provider confirmed money movement",
			logger.String("event_type", event.EventType),
			logger.String("resource_id", event.ResourceID),
			logger.Amount("amount", event.Amount))

	case models.WebhookPayoutItemSucceeded, models.WebhookPayoutItemFailed,
		models.WebhookPayoutsBatchSuccess, models.WebhookPayoutsBatchDenied:
		return uc.reconcilePayout(ctx, event)

	default:
		logger.DebugCtx(ctx, "Unhandled webhook event", logger.String("event_type", event.EventType))
	}
	return nil
}

func (uc *paymentUC) validateWebhook(ctx context.Context, req *models.WebhookRequest) (*models.WebhookValidationResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.ValidateWebhook(pctx, req)
	observeProvider("webhook_validate", start, res != nil && res.Success, err)
	return res, err
}

func (uc *paymentUC) processWebhook(ctx context.Context, req *models.WebhookRequest) (*models.WebhookProcessResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.ProcessWebhook(pctx, req)
	observeProvider("webhook_process", start, res != nil && res.Success, err)
	return res, err
}
