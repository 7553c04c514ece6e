package constants

// NATS Subjects
const (
	// Settlement events published after commit
	SubjectPaymentInitiated   = "payment.initiated"
	SubjectPaymentCompleted   = "payment.completed"
	SubjectPaymentFailed      = "payment.failed"
	SubjectPaymentUnderReview = "payment.under_review"
	SubjectRefundCompleted    = "refund.completed"
	SubjectDepositRefunded    = "deposit.refunded"
	SubjectPayoutCompleted    = "payout.completed"
	SubjectPayoutFailed       = "payout.failed"

	// Rental Service
	SubjectRentalDepositRelease = "rental.deposit.release"
)

// JetStream streams
const (
	StreamSettlement        = "SETTLEMENT"
	StreamRental            = "RENTAL"
	ConsumerDepositReleaser = "payments-deposit-releaser"
)
