package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/toolshare/services/payment ProviderGW,FraudGW,EventGW,NotificationGW,MailGW

// ProviderGW is a payment gateway adapter. Business declines come back as a
// result with Success=false; a returned error means the call itself broke.
type ProviderGW interface {
	Name() models.PaymentProvider
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.ProviderPaymentResult, error)
	CapturePayment(ctx context.Context, req *models.CaptureRequest) (*models.CaptureResult, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusResult, error)
	RefundPayment(ctx context.Context, req *models.RefundRequest) (*models.ProviderRefundResult, error)
	CreatePayout(ctx context.Context, req *models.CreatePayoutRequest) (*models.ProviderPayoutResult, error)
	GetPayoutStatus(ctx context.Context, batchID string) (*models.PayoutStatusResult, error)
	ValidateWebhook(ctx context.Context, req *models.WebhookRequest) (*models.WebhookValidationResult, error)
	ProcessWebhook(ctx context.Context, req *models.WebhookRequest) (*models.WebhookProcessResult, error)
}

// FraudGW risk-scores captured payments
type FraudGW interface {
	CheckPayment(ctx context.Context, p *models.Payment) (*models.FraudCheckResult, error)
	UpdateVelocityTracking(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
}

// EventGW publishes settlement events once a step has committed
type EventGW interface {
	PublishSettlementEvent(ctx context.Context, event models.SettlementEvent) error
}

// NotificationGW queues an email. It has no error result: delivery is best
// effort and can never fail a settlement step.
type NotificationGW interface {
	Notify(ctx context.Context, n models.Notification)
}

// MailGW delivers a rendered email
type MailGW interface {
	SendEmail(ctx context.Context, to, name, subject, body string) error
}
