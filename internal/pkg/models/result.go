package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResultCode is the machine-readable reason attached to a failed result
type ResultCode string

const (
	ResultCodeOK                   ResultCode = "ok"
	ResultCodeNotFound             ResultCode = "not_found"
	ResultCodeForbidden            ResultCode = "forbidden"
	ResultCodeAlreadyInitiated     ResultCode = "already_initiated"
	ResultCodeInvalidState         ResultCode = "invalid_state"
	ResultCodeAmountMismatch       ResultCode = "amount_mismatch"
	ResultCodeVerificationFailed   ResultCode = "verification_failed"
	ResultCodeFraudBlocked         ResultCode = "fraud_blocked"
	ResultCodeUnderReview          ResultCode = "under_review"
	ResultCodeProviderError        ResultCode = "provider_error"
	ResultCodeAlreadyRefunded      ResultCode = "already_refunded"
	ResultCodeNoDeposit            ResultCode = "no_deposit"
	ResultCodeNoPayoutEmail        ResultCode = "no_payout_email"
	ResultCodeBelowMinimum         ResultCode = "below_minimum"
	ResultCodeRefundExceedsBalance ResultCode = "refund_exceeds_balance"
	ResultCodeInvalidAmount        ResultCode = "invalid_amount"
	ResultCodeAlreadyPaidOut       ResultCode = "already_paid_out"
	ResultCodePayoutProcessing     ResultCode = "payout_processing"
	ResultCodeRefundPending        ResultCode = "refund_pending"
)

// Messages shown to end users. Fraud details never leave the service.
const (
	MessageFraudBlocked  = "Payment was blocked due to security concerns. Please contact support."
	MessageUnderReview   = "Payment is pending review. You will be notified once it is processed."
	MessageAlreadyActive = "Payment has already been initiated for this rental"
)

// PaymentResult is returned by initiation, completion and review operations
type PaymentResult struct {
	Success           bool          `json:"success"`
	Code              ResultCode    `json:"code"`
	Message           string        `json:"message,omitempty"`
	TransactionID     uuid.UUID     `json:"transaction_id"`
	PaymentID         uuid.UUID     `json:"payment_id"`
	ExternalPaymentID string        `json:"external_payment_id,omitempty"`
	ApprovalURL       string        `json:"approval_url,omitempty"`
	Status            PaymentStatus `json:"status,omitempty"`
}

// RefundResult is returned by rental and deposit refunds
type RefundResult struct {
	Success          bool            `json:"success"`
	Code             ResultCode      `json:"code"`
	Message          string          `json:"message,omitempty"`
	RefundPaymentID  uuid.UUID       `json:"refund_payment_id"`
	ExternalRefundID string          `json:"external_refund_id,omitempty"`
	RefundedAmount   decimal.Decimal `json:"refunded_amount"`
	PaymentStatus    PaymentStatus   `json:"payment_status,omitempty"`
}

// PayoutResult is returned by owner payouts
type PayoutResult struct {
	Success          bool            `json:"success"`
	Code             ResultCode      `json:"code"`
	Message          string          `json:"message,omitempty"`
	PayoutID         uuid.UUID       `json:"payout_id"`
	ExternalPayoutID string          `json:"external_payout_id,omitempty"`
	NetAmount        decimal.Decimal `json:"net_amount"`
	Status           PayoutStatus    `json:"status,omitempty"`
}

// RentalSettlement is the read view of a rental's ledger
type RentalSettlement struct {
	Transaction *Transaction `json:"transaction"`
	Payments    []*Payment   `json:"payments"`
}

// PaymentFailure builds a failed PaymentResult
func PaymentFailure(code ResultCode, message string) *PaymentResult {
	return &PaymentResult{Success: false, Code: code, Message: message}
}

// RefundFailure builds a failed RefundResult
func RefundFailure(code ResultCode, message string) *RefundResult {
	return &RefundResult{Success: false, Code: code, Message: message}
}

// PayoutFailure builds a failed PayoutResult
func PayoutFailure(code ResultCode, message string) *PayoutResult {
	return &PayoutResult{Success: false, Code: code, Message: message}
}
