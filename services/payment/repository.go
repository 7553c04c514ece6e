package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/toolshare/services/payment PaymentRepo,PaymentTxRepo

// PaymentRepo is the settlement ledger. Mutations go through RunInTx so a
// settlement step commits or rolls back as one unit.
type PaymentRepo interface {
	RunInTx(ctx context.Context, fn func(tx PaymentTxRepo) error) error

	GetRental(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error)
	GetPaymentSettings(ctx context.Context, userID uuid.UUID) (*models.PaymentSettings, error)
	GetRentalSettlement(ctx context.Context, rentalID uuid.UUID) (*models.RentalSettlement, error)
	GetPayoutByID(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ListDuePayoutTransactionIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)

	// MarkWebhookProcessed records a provider event id, returning false when
	// it was already seen
	MarkWebhookProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	// ReleaseWebhook forgets an event id so a redelivery is handled again
	ReleaseWebhook(ctx context.Context, eventID string) error
}

// PaymentTxRepo is the ledger as seen inside one database transaction.
// The ForUpdate reads take row locks held until commit.
type PaymentTxRepo interface {
	GetRentalForUpdate(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error)
	UpdateRentalStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error
	GetOrCreatePaymentSettings(ctx context.Context, userID uuid.UUID, minimumPayout decimal.Decimal) (*models.PaymentSettings, error)

	GetActiveTransactionByRentalForUpdate(ctx context.Context, rentalID uuid.UUID) (*models.Transaction, error)
	GetTransactionForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error

	GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	GetPaymentByExternalIDForUpdate(ctx context.Context, externalID string) (*models.Payment, error)
	GetRentalPaymentForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Payment, error)
	ListPendingRefundsForUpdate(ctx context.Context, transactionID uuid.UUID) ([]*models.Payment, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, p *models.Payment) error

	GetPayoutForUpdate(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error)
	GetOpenPayoutForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Payout, error)
	GetPayoutTransactionID(ctx context.Context, payoutID uuid.UUID) (uuid.UUID, error)
	CreatePayout(ctx context.Context, p *models.Payout) error
	UpdatePayout(ctx context.Context, p *models.Payout) error
	LinkPayoutTransaction(ctx context.Context, payoutID, transactionID uuid.UUID) error
}
