package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementEventType names a committed settlement step
type SettlementEventType string

const (
	EventPaymentInitiated   SettlementEventType = "payment.initiated"
	EventPaymentCompleted   SettlementEventType = "payment.completed"
	EventPaymentFailed      SettlementEventType = "payment.failed"
	EventPaymentUnderReview SettlementEventType = "payment.under_review"
	EventRefundCompleted    SettlementEventType = "refund.completed"
	EventDepositRefunded    SettlementEventType = "deposit.refunded"
	EventPayoutCompleted    SettlementEventType = "payout.completed"
	EventPayoutFailed       SettlementEventType = "payout.failed"
)

// SettlementEvent is published after a settlement step commits
type SettlementEvent struct {
	ID            uuid.UUID           `json:"id"`
	Type          SettlementEventType `json:"type"`
	RentalID      uuid.UUID           `json:"rental_id"`
	TransactionID uuid.UUID           `json:"transaction_id"`
	PaymentID     *uuid.UUID          `json:"payment_id,omitempty"`
	PayoutID      *uuid.UUID          `json:"payout_id,omitempty"`
	Status        string              `json:"status"`
	Amount        decimal.Decimal     `json:"amount"`
	Currency      string              `json:"currency"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// NewSettlementEvent builds an event for a transaction
func NewSettlementEvent(t SettlementEventType, txn *Transaction, amount decimal.Decimal) SettlementEvent {
	return SettlementEvent{
		ID:            uuid.New(),
		Type:          t,
		RentalID:      txn.RentalID,
		TransactionID: txn.ID,
		Status:        string(txn.Status),
		Amount:        amount,
		Currency:      txn.Currency,
		OccurredAt:    Now(),
	}
}

// DepositReleaseEvent is published by the rental domain when a returned
// rental's dispute window closes without a claim
type DepositReleaseEvent struct {
	RentalID   uuid.UUID `json:"rental_id"`
	ReleasedAt time.Time `json:"released_at"`
}
