package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/toolshare/services/payment PaymentUC

// PaymentUC drives the settlement of a rental from payment to payout.
// Expected business failures are returned as results, not errors.
type PaymentUC interface {
	PreviewRentalFinancials(ctx context.Context, rentalID, userID uuid.UUID) (*models.RentalFinancials, error)
	GetRentalSettlement(ctx context.Context, rentalID, userID uuid.UUID) (*models.RentalSettlement, error)

	InitiateRentalPayment(ctx context.Context, rentalID, userID uuid.UUID) (*models.PaymentResult, error)
	CompleteRentalPayment(ctx context.Context, externalPaymentID, payerID string) (*models.PaymentResult, error)
	ResolveManualReview(ctx context.Context, paymentID uuid.UUID, approve bool, note string) (*models.PaymentResult, error)

	RefundRental(ctx context.Context, rentalID uuid.UUID, amount decimal.Decimal, reason string) (*models.RefundResult, error)
	RefundSecurityDeposit(ctx context.Context, rentalID uuid.UUID) (*models.RefundResult, error)

	CreateOwnerPayout(ctx context.Context, transactionID uuid.UUID) (*models.PayoutResult, error)
	ProcessScheduledPayouts(ctx context.Context) (*models.PayoutRunSummary, error)
	GetPayoutStatus(ctx context.Context, payoutID uuid.UUID) (*models.PayoutStatusResult, error)

	HandleWebhook(ctx context.Context, req *models.WebhookRequest) error
	DeliverNotification(ctx context.Context, n models.Notification) error
}
