package models

import "fmt"

// TransactionStatus is the lifecycle state of a rental's ledger entry
type TransactionStatus string

const (
	TransactionStatusPaymentProcessing TransactionStatus = "PaymentProcessing"
	TransactionStatusPaymentCompleted  TransactionStatus = "PaymentCompleted"
	TransactionStatusPayoutCompleted   TransactionStatus = "PayoutCompleted"
	TransactionStatusUnderReview       TransactionStatus = "UnderReview"
	TransactionStatusCancelled         TransactionStatus = "Cancelled"
	TransactionStatusRefunded          TransactionStatus = "Refunded"
)

// PaymentStatus is the state of a single money movement
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "Pending"
	PaymentStatusCompleted         PaymentStatus = "Completed"
	PaymentStatusFailed            PaymentStatus = "Failed"
	PaymentStatusUnderReview       PaymentStatus = "UnderReview"
	PaymentStatusRefunded          PaymentStatus = "Refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "PartiallyRefunded"
)

// PayoutStatus is the state of a disbursement to an owner
type PayoutStatus string

const (
	PayoutStatusProcessing PayoutStatus = "Processing"
	PayoutStatusCompleted  PayoutStatus = "Completed"
	PayoutStatusFailed     PayoutStatus = "Failed"
)

var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPaymentProcessing: {
		TransactionStatusPaymentCompleted,
		TransactionStatusUnderReview,
		TransactionStatusCancelled,
	},
	TransactionStatusUnderReview: {
		TransactionStatusPaymentCompleted,
		TransactionStatusCancelled,
	},
	TransactionStatusPaymentCompleted: {
		TransactionStatusPayoutCompleted,
		TransactionStatusRefunded,
	},
	// further partial refunds keep the transaction refunded
	TransactionStatusRefunded: {
		TransactionStatusRefunded,
	},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusUnderReview,
	},
	PaymentStatusUnderReview: {
		PaymentStatusCompleted,
		PaymentStatusFailed,
	},
	PaymentStatusCompleted: {
		PaymentStatusPartiallyRefunded,
		PaymentStatusRefunded,
	},
	PaymentStatusPartiallyRefunded: {
		PaymentStatusPartiallyRefunded,
		PaymentStatusRefunded,
	},
}

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutStatusProcessing: {
		PayoutStatusCompleted,
		PayoutStatusFailed,
	},
}

// CanTransitionTo reports whether the transaction may move to next
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s TransactionStatus) IsTerminal() bool {
	return len(transactionTransitions[s]) == 0 || s == TransactionStatusRefunded
}

// IsCaptured reports whether money has been taken from the renter
func (s TransactionStatus) IsCaptured() bool {
	switch s {
	case TransactionStatusPaymentCompleted, TransactionStatusPayoutCompleted, TransactionStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the payment may move to next
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsRefundable reports whether a refund can still be issued against the payment
func (s PaymentStatus) IsRefundable() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusPartiallyRefunded
}

// CanTransitionTo reports whether the payout may move to next
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionError describes a rejected status change
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidTransition)
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
