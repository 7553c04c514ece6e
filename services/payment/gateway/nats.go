package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	natspkg "github.com/piresc/toolshare/internal/pkg/nats"
)

var eventSubjects = map[models.SettlementEventType]string{
	models.EventPaymentInitiated:   constants.SubjectPaymentInitiated,
	models.EventPaymentCompleted:   constants.SubjectPaymentCompleted,
	models.EventPaymentFailed:      constants.SubjectPaymentFailed,
	models.EventPaymentUnderReview: constants.SubjectPaymentUnderReview,
	models.EventRefundCompleted:    constants.SubjectRefundCompleted,
	models.EventDepositRefunded:    constants.SubjectDepositRefunded,
	models.EventPayoutCompleted:    constants.SubjectPayoutCompleted,
	models.EventPayoutFailed:       constants.SubjectPayoutFailed,
}

// EventGW publishes settlement events to the SETTLEMENT stream
type EventGW struct {
	natsClient *natspkg.Client
}

func NewEventGW(client *natspkg.Client) *EventGW {
	return &EventGW{natsClient: client}
}

// PublishSettlementEvent publishes event with its id as the JetStream
// message id, so a repeated publish is stored once
func (g *EventGW) PublishSettlementEvent(ctx context.Context, event models.SettlementEvent) error {
	subject, ok := eventSubjects[event.Type]
	if !ok {
		return fmt.Errorf("no subject for settlement event %q", event.Type)
	}

	if err := g.natsClient.PublishJSON(ctx, subject, event.ID.String(), event); err != nil {
		return err
	}

	logger.DebugCtx(ctx, "Published settlement event",
		logger.String("subject", subject),
		logger.UUID("transaction_id", event.TransactionID))
	return nil
}
