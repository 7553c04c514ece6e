package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider-reported statuses the settlement flow reacts to
const (
	ProviderStatusCreated   = "CREATED"
	ProviderStatusApproved  = "APPROVED"
	ProviderStatusCompleted = "COMPLETED"
	ProviderStatusPending   = "PENDING"
	ProviderStatusSuccess   = "SUCCESS"
	ProviderStatusFailed    = "FAILED"
	ProviderStatusDenied    = "DENIED"
)

// CreatePaymentRequest asks the provider for a marketplace order: the renter
// pays the full amount, the owner is payee and the commission is the platform fee.
type CreatePaymentRequest struct {
	ReferenceID    string
	Amount         decimal.Decimal
	Currency       string
	PlatformFee    decimal.Decimal
	PayeeEmail     string
	Description    string
	ReturnURL      string
	CancelURL      string
	IdempotencyKey string
}

// ProviderPaymentResult is the outcome of creating a provider payment
type ProviderPaymentResult struct {
	Success      bool
	ErrorMessage string
	PaymentID    string
	OrderID      string
	ApprovalURL  string
	Status       string
}

// CaptureRequest captures an approved provider payment
type CaptureRequest struct {
	PaymentID      string
	IdempotencyKey string
}

// CaptureResult is the outcome of a capture
type CaptureResult struct {
	Success      bool
	ErrorMessage string
	CaptureID    string
	Status       string
	Amount       decimal.Decimal
	Currency     string
	PayerID      string
}

// PaymentStatusResult is the provider's own view of a payment
type PaymentStatusResult struct {
	Success      bool
	ErrorMessage string
	Status       string
	Amount       decimal.Decimal
	Currency     string
	PayerID      string
}

// RefundRequest refunds part or all of a captured payment
type RefundRequest struct {
	CaptureID      string
	Amount         decimal.Decimal
	Currency       string
	Reason         string
	IdempotencyKey string
}

// ProviderRefundResult is the outcome of a refund
type ProviderRefundResult struct {
	Success      bool
	ErrorMessage string
	RefundID     string
	Status       string
}

// CreatePayoutRequest disburses funds to an owner. SenderBatchID doubles as
// the idempotency key, so resending the same request replays the first answer.
type CreatePayoutRequest struct {
	SenderBatchID  string
	RecipientEmail string
	Amount         decimal.Decimal
	Currency       string
	Note           string
}

// ProviderPayoutResult is the outcome of a payout. Duplicate means the
// provider already holds a batch with this sender batch id and its outcome
// arrives by webhook.
type ProviderPayoutResult struct {
	Success      bool
	Duplicate    bool
	ErrorMessage string
	PayoutID     string
	BatchID      string
	Status       string
}

// PayoutStatusResult is the provider's view of a payout batch
type PayoutStatusResult struct {
	Success      bool
	ErrorMessage string
	BatchID      string
	Status       string
	Amount       decimal.Decimal
	Currency     string
}

// Webhook event types the service acts on
const (
	WebhookOrderApproved       = "CHECKOUT.ORDER.APPROVED"
	WebhookCaptureCompleted    = "PAYMENT.CAPTURE.COMPLETED"
	WebhookCaptureRefunded     = "PAYMENT.CAPTURE.REFUNDED"
	WebhookPayoutItemSucceeded = "PAYMENT.PAYOUTS-ITEM.SUCCEEDED"
	WebhookPayoutItemFailed    = "PAYMENT.PAYOUTS-ITEM.FAILED"
	WebhookPayoutsBatchSuccess = "PAYMENT.PAYOUTSBATCH.SUCCESS"
	WebhookPayoutsBatchDenied  = "PAYMENT.PAYOUTSBATCH.DENIED"
)

// WebhookRequest carries a provider callback as received
type WebhookRequest struct {
	Headers map[string]string
	Body    []byte
}

// WebhookEvent is a provider callback normalised for the settlement flow.
// SenderBatchID is our own payout id echoed back on payout events.
type WebhookEvent struct {
	ID            string          `json:"id"`
	EventType     string          `json:"event_type"`
	ResourceType  string          `json:"resource_type"`
	ResourceID    string          `json:"resource_id"`
	OrderID       string          `json:"order_id,omitempty"`
	BatchID       string          `json:"batch_id,omitempty"`
	SenderBatchID string          `json:"sender_batch_id,omitempty"`
	PayerID       string          `json:"payer_id,omitempty"`
	Status        string          `json:"status,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// WebhookValidationResult is the outcome of signature verification
type WebhookValidationResult struct {
	Success      bool
	ErrorMessage string
}

// WebhookProcessResult is the outcome of parsing a webhook body
type WebhookProcessResult struct {
	Success      bool
	ErrorMessage string
	Event        *WebhookEvent
}
