package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/piresc/toolshare/internal/pkg/crypto"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
)

const defaultProviderTimeout = 15 * time.Second

// paymentUC implements payment.PaymentUC
type paymentUC struct {
	cfg      *models.Config
	repo     payment.PaymentRepo
	provider payment.ProviderGW
	fraud    payment.FraudGW
	events   payment.EventGW
	notifier payment.NotificationGW
	mailer   payment.MailGW
	sealer   *crypto.Sealer
	now      func() time.Time
}

// NewPaymentUC creates the settlement use case
func NewPaymentUC(
	cfg *models.Config,
	repo payment.PaymentRepo,
	provider payment.ProviderGW,
	fraud payment.FraudGW,
	events payment.EventGW,
	notifier payment.NotificationGW,
	mailer payment.MailGW,
	sealer *crypto.Sealer,
) (payment.PaymentUC, error) {
	return newPaymentUC(cfg, repo, provider, fraud, events, notifier, mailer, sealer)
}

func newPaymentUC(
	cfg *models.Config,
	repo payment.PaymentRepo,
	provider payment.ProviderGW,
	fraud payment.FraudGW,
	events payment.EventGW,
	notifier payment.NotificationGW,
	mailer payment.MailGW,
	sealer *crypto.Sealer,
) (*paymentUC, error) {
	if repo == nil || provider == nil || fraud == nil {
		return nil, errors.New("repository, provider and fraud screen are required")
	}
	if sealer == nil {
		return nil, errors.New("payout destination sealer is required")
	}
	return &paymentUC{
		cfg:      cfg,
		repo:     repo,
		provider: provider,
		fraud:    fraud,
		events:   events,
		notifier: notifier,
		mailer:   mailer,
		sealer:   sealer,
		now:      models.Now,
	}, nil
}

// providerCtx bounds a provider call. The call runs while row locks are
// held, so it must not be allowed to hang.
func (uc *paymentUC) providerCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := uc.cfg.Payment.ProviderTimeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// isProviderTimeout reports a provider call that ran out of time. It is
// handled like a decline; any other call error aborts the step.
func isProviderTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func (uc *paymentUC) currency(rental *models.Rental) string {
	if rental.Currency != "" {
		return rental.Currency
	}
	if uc.cfg.Payment.DefaultCurrency != "" {
		return uc.cfg.Payment.DefaultCurrency
	}
	return models.DefaultCurrency
}
