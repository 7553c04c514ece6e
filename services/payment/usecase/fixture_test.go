package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/crypto"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
	"github.com/piresc/toolshare/services/payment/mocks"
	"github.com/stretchr/testify/require"
)

const ownerEmail = "owner@example.com"

func testConfig() *models.Config {
	return &models.Config{
		Payment: models.PaymentConfig{
			DefaultCommissionRate: dec("0.10"),
			DefaultCurrency:       "USD",
			MinimumPayoutAmount:   dec("10"),
			ProviderTimeout:       time.Second,
			PayoutHoldHours:       24,
			DisbursementHour:      10,
			ReturnURL:             "https://toolshare.test/payments/return",
			CancelURL:             "https://toolshare.test/payments/cancel",
		},
		Scheduler: models.SchedulerConfig{BatchSize: 50},
	}
}

type fixture struct {
	repo     *memRepo
	fraud    *mocks.MockFraudGW
	mailer   *mocks.MockMailGW
	uc       *paymentUC
	clock    time.Time
	events   []models.SettlementEvent
	notified []models.Notification
}

func newFixture(t *testing.T, provider payment.ProviderGW) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:   newMemRepo(),
		fraud:  mocks.NewMockFraudGW(ctrl),
		mailer: mocks.NewMockMailGW(ctrl),
		clock:  time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC),
	}

	events := mocks.NewMockEventGW(ctrl)
	events.EXPECT().PublishSettlementEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.SettlementEvent) error {
			f.events = append(f.events, e)
			return nil
		}).AnyTimes()

	notifier := mocks.NewMockNotificationGW(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, n models.Notification) {
			f.notified = append(f.notified, n)
		}).AnyTimes()

	sealer, err := crypto.NewSealer("test-payout-key")
	require.NoError(t, err)

	uc, err := newPaymentUC(testConfig(), f.repo, provider, f.fraud, events, notifier, f.mailer, sealer)
	require.NoError(t, err)
	uc.now = func() time.Time { return f.clock }
	f.uc = uc
	return f
}

// approveFraud lets every payment through the fraud screen
func (f *fixture) approveFraud() {
	f.fraud.EXPECT().CheckPayment(gomock.Any(), gomock.Any()).
		Return(&models.FraudCheckResult{IsApproved: true, RiskLevel: models.RiskLevelLow}, nil).AnyTimes()
	f.fraud.EXPECT().UpdateVelocityTracking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// seedRental stores a pending rental whose owner has payouts set up
func (f *fixture) seedRental(total, deposit string) models.Rental {
	rental := models.Rental{
		ID:              uuid.New(),
		ToolID:          uuid.New(),
		OwnerID:         uuid.New(),
		RenterID:        uuid.New(),
		TotalCost:       dec(total),
		SecurityDeposit: dec(deposit),
		Currency:        "USD",
		Status:          models.RentalStatusPending,
	}
	f.repo.addRental(rental)
	f.repo.addUser(models.User{ID: rental.OwnerID, Email: ownerEmail, FullName: "Olive Owner"})
	f.repo.addUser(models.User{ID: rental.RenterID, Email: "renter@example.com", FullName: "Remy Renter"})

	settings := models.DefaultPaymentSettings(rental.OwnerID, dec("10"))
	settings.PayPalEmail = ownerEmail
	f.repo.putSettings(settings)
	return rental
}

// initiate starts payment and fails the test unless it succeeded
func (f *fixture) initiate(t *testing.T, rental models.Rental) *models.PaymentResult {
	res, err := f.uc.InitiateRentalPayment(context.Background(), rental.ID, rental.RenterID)
	require.NoError(t, err)
	require.True(t, res.Success, "initiate: %s %s", res.Code, res.Message)
	return res
}

// capture initiates and completes payment for rental
func (f *fixture) capture(t *testing.T, rental models.Rental) *models.PaymentResult {
	started := f.initiate(t, rental)
	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "PAYER-1")
	require.NoError(t, err)
	require.True(t, res.Success, "complete: %s %s", res.Code, res.Message)
	return res
}

func (f *fixture) eventTypes() []models.SettlementEventType {
	types := make([]models.SettlementEventType, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}
	return types
}

func (f *fixture) notifiedCount(kind models.NotificationType) int {
	n := 0
	for _, note := range f.notified {
		if note.Type == kind {
			n++
		}
	}
	return n
}

func (f *fixture) notificationTypes() []models.NotificationType {
	types := make([]models.NotificationType, 0, len(f.notified))
	for _, n := range f.notified {
		types = append(types, n.Type)
	}
	return types
}
