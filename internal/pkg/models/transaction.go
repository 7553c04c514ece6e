package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the financial ledger entry of a rental. At most one
// non-cancelled transaction exists per rental.
type Transaction struct {
	ID                 uuid.UUID         `json:"id" db:"id"`
	RentalID           uuid.UUID         `json:"rental_id" db:"rental_id"`
	RenterID           uuid.UUID         `json:"renter_id" db:"renter_id"`
	OwnerID            uuid.UUID         `json:"owner_id" db:"owner_id"`
	RentalAmount       decimal.Decimal   `json:"rental_amount" db:"rental_amount"`
	SecurityDeposit    decimal.Decimal   `json:"security_deposit" db:"security_deposit"`
	CommissionRate     decimal.Decimal   `json:"commission_rate" db:"commission_rate"`
	CommissionAmount   decimal.Decimal   `json:"commission_amount" db:"commission_amount"`
	TotalPayerAmount   decimal.Decimal   `json:"total_payer_amount" db:"total_payer_amount"`
	OwnerPayoutAmount  decimal.Decimal   `json:"owner_payout_amount" db:"owner_payout_amount"`
	Currency           string            `json:"currency" db:"currency"`
	Status             TransactionStatus `json:"status" db:"status"`
	HasDispute         bool              `json:"has_dispute" db:"has_dispute"`
	PaymentCompletedAt *time.Time        `json:"payment_completed_at,omitempty" db:"payment_completed_at"`
	PayoutScheduledAt  *time.Time        `json:"payout_scheduled_at,omitempty" db:"payout_scheduled_at"`
	PayoutCompletedAt  *time.Time        `json:"payout_completed_at,omitempty" db:"payout_completed_at"`
	PayoutAttempts     int               `json:"payout_attempts" db:"payout_attempts"`
	DepositRefundedAt  *time.Time        `json:"deposit_refunded_at,omitempty" db:"deposit_refunded_at"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" db:"updated_at"`
}

// TransitionTo moves the transaction to next, rejecting illegal moves
func (t *Transaction) TransitionTo(next TransactionStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "transaction", From: string(t.Status), To: string(next)}
	}
	t.Status = next
	return nil
}

// IsPaidOut reports whether the owner has already been paid for this transaction
func (t *Transaction) IsPaidOut() bool {
	return t.PayoutCompletedAt != nil || t.Status == TransactionStatusPayoutCompleted
}

// RentalFinancials is the commission/payout split of a rental
type RentalFinancials struct {
	RentalAmount      decimal.Decimal `json:"rental_amount"`
	SecurityDeposit   decimal.Decimal `json:"security_deposit"`
	CommissionRate    decimal.Decimal `json:"commission_rate"`
	CommissionAmount  decimal.Decimal `json:"commission_amount"`
	TotalPayerAmount  decimal.Decimal `json:"total_payer_amount"`
	OwnerPayoutAmount decimal.Decimal `json:"owner_payout_amount"`
}
