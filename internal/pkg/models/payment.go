package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformAccountID stands in for the marketplace itself as payer or payee
var PlatformAccountID = uuid.Nil

// PaymentType classifies a money movement. It never changes after creation.
type PaymentType string

const (
	PaymentTypeRentalPayment      PaymentType = "RentalPayment"
	PaymentTypePlatformCommission PaymentType = "PlatformCommission"
	PaymentTypeRefund             PaymentType = "Refund"
	PaymentTypeDepositRefund      PaymentType = "DepositRefund"
	PaymentTypeOwnerPayout        PaymentType = "OwnerPayout"
)

// PaymentProvider names the gateway that moved the money
type PaymentProvider string

const (
	PaymentProviderPayPal PaymentProvider = "PayPal"
	PaymentProviderFake   PaymentProvider = "Fake"
)

// Payment is an individual money movement tied to a rental
type Payment struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	TransactionID     uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	RentalID          uuid.UUID       `json:"rental_id" db:"rental_id"`
	PayerID           uuid.UUID       `json:"payer_id" db:"payer_id"`
	PayeeID           *uuid.UUID      `json:"payee_id,omitempty" db:"payee_id"`
	Type              PaymentType     `json:"type" db:"type"`
	Status            PaymentStatus   `json:"status" db:"status"`
	Provider          PaymentProvider `json:"provider" db:"provider"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	Currency          string          `json:"currency" db:"currency"`
	ExternalPaymentID string          `json:"external_payment_id,omitempty" db:"external_payment_id"`
	ExternalOrderID   string          `json:"external_order_id,omitempty" db:"external_order_id"`
	ExternalPayerID   string          `json:"external_payer_id,omitempty" db:"external_payer_id"`
	FailureReason     string          `json:"failure_reason,omitempty" db:"failure_reason"`
	RefundedAmount    decimal.Decimal `json:"refunded_amount" db:"refunded_amount"`
	RefundReason      string          `json:"refund_reason,omitempty" db:"refund_reason"`
	IdempotencyKey    string          `json:"-" db:"idempotency_key"`
	ProcessedAt       *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
	FailedAt          *time.Time      `json:"failed_at,omitempty" db:"failed_at"`
	RefundedAt        *time.Time      `json:"refunded_at,omitempty" db:"refunded_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// TransitionTo moves the payment to next, rejecting illegal moves
func (p *Payment) TransitionTo(next PaymentStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "payment", From: string(p.Status), To: string(next)}
	}
	p.Status = next
	return nil
}

// RefundableAmount is what can still be returned to the payer
func (p *Payment) RefundableAmount() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

// ApplyRefund accumulates a refund and settles the refunded status.
// The caller guarantees amount does not exceed RefundableAmount.
func (p *Payment) ApplyRefund(amount decimal.Decimal, reason string, at time.Time) error {
	refunded := RoundAmount(p.RefundedAmount.Add(amount))
	next := PaymentStatusPartiallyRefunded
	if refunded.GreaterThanOrEqual(p.Amount) {
		next = PaymentStatusRefunded
		refunded = p.Amount
	}
	if err := p.TransitionTo(next); err != nil {
		return err
	}
	p.RefundedAmount = refunded
	p.RefundReason = reason
	p.RefundedAt = &at
	return nil
}
