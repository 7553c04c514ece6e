package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	natspkg "github.com/piresc/toolshare/internal/pkg/nats"
	"github.com/piresc/toolshare/services/payment"
)

// DepositHandler releases security deposits when the rental service reports
// a tool was returned in good order
type DepositHandler struct {
	paymentUC  payment.PaymentUC
	natsClient *natspkg.Client
	consumers  []jetstream.ConsumeContext
}

// NewDepositHandler creates a new deposit release NATS handler
func NewDepositHandler(paymentUC payment.PaymentUC, client *natspkg.Client) *DepositHandler {
	return &DepositHandler{
		paymentUC:  paymentUC,
		natsClient: client,
		consumers:  make([]jetstream.ConsumeContext, 0),
	}
}

// InitNATSConsumers attaches the durable deposit release consumer
func (h *DepositHandler) InitNATSConsumers(ctx context.Context) error {
	cc, err := h.natsClient.Consume(ctx, natspkg.ConsumerConfig{
		Stream:        constants.StreamRental,
		Durable:       constants.ConsumerDepositReleaser,
		FilterSubject: constants.SubjectRentalDepositRelease,
		AckWait:       time.Minute,
		MaxDeliver:    10,
		RetryDelay:    30 * time.Second,
	}, h.HandleDepositRelease)
	if err != nil {
		return fmt.Errorf("failed to consume deposit release events: %w", err)
	}
	h.consumers = append(h.consumers, cc)
	return nil
}

// HandleDepositRelease refunds the deposit of the rental named in data.
// Business failures are logged and acknowledged; only infrastructure errors
// ask for a redelivery.
func (h *DepositHandler) HandleDepositRelease(ctx context.Context, data []byte) error {
	var event models.DepositReleaseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: %v", natspkg.ErrMalformed, err)
	}
	if event.RentalID == uuid.Nil {
		return fmt.Errorf("%w: rental_id is required", natspkg.ErrMalformed)
	}

	result, err := h.paymentUC.RefundSecurityDeposit(ctx, event.RentalID)
	if err != nil {
		return fmt.Errorf("failed to refund deposit for rental %s: %w", event.RentalID, err)
	}

	if !result.Success {
		logger.Warn("Deposit release not applied",
			logger.UUID("rental_id", event.RentalID),
			logger.String("code", string(result.Code)),
			logger.String("message", result.Message))
		return nil
	}

	logger.Info("Security deposit released",
		logger.UUID("rental_id", event.RentalID),
		logger.Amount("amount", result.RefundedAmount))
	return nil
}

// Close detaches every consumer
func (h *DepositHandler) Close() {
	for _, cc := range h.consumers {
		cc.Stop()
	}
	h.consumers = nil
}
