package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutMethod is how an owner receives funds
type PayoutMethod string

const (
	PayoutMethodPayPal PayoutMethod = "PayPal"
)

// Payout is a disbursement to a tool owner. A payout may settle several
// transactions, linked through payout_transactions.
type Payout struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	RecipientID       uuid.UUID       `json:"recipient_id" db:"recipient_id"`
	Status            PayoutStatus    `json:"status" db:"status"`
	Provider          PaymentProvider `json:"provider" db:"provider"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	Currency          string          `json:"currency" db:"currency"`
	PlatformFee       decimal.Decimal `json:"platform_fee" db:"platform_fee"`
	NetAmount         decimal.Decimal `json:"net_amount" db:"net_amount"`
	PayoutMethod      PayoutMethod    `json:"payout_method" db:"payout_method"`
	PayoutDestination string          `json:"-" db:"payout_destination"`
	ExternalPayoutID  string          `json:"external_payout_id,omitempty" db:"external_payout_id"`
	ExternalBatchID   string          `json:"external_batch_id,omitempty" db:"external_batch_id"`
	FailureReason     string          `json:"failure_reason,omitempty" db:"failure_reason"`
	ScheduledAt       *time.Time      `json:"scheduled_at,omitempty" db:"scheduled_at"`
	ProcessedAt       *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty" db:"completed_at"`
	FailedAt          *time.Time      `json:"failed_at,omitempty" db:"failed_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// TransitionTo moves the payout to next, rejecting illegal moves
func (p *Payout) TransitionTo(next PayoutStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "payout", From: string(p.Status), To: string(next)}
	}
	p.Status = next
	return nil
}

// PayoutRunSummary reports one sweep of scheduled payouts
type PayoutRunSummary struct {
	Eligible  int `json:"eligible"`
	Succeeded int `json:"succeeded"`
	Rejected  int `json:"rejected"`
	Pending   int `json:"pending"`
	Errored   int `json:"errored"`
}
