package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment/gateway"
	"github.com/piresc/toolshare/services/payment/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteRentalPayment_Success(t *testing.T) {
	// Arrange
	f := newFixture(t, gateway.NewFakeGW())
	f.approveFraud()
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	// Act
	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "PAYER-1")

	// Assert
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.PaymentStatusCompleted, res.Status)
	assert.NotEmpty(t, res.ExternalPaymentID)
	assert.NotEqual(t, started.ExternalPaymentID, res.ExternalPaymentID, "capture id replaces the order id")

	txn := f.repo.transaction(started.TransactionID)
	assert.Equal(t, models.TransactionStatusPaymentCompleted, txn.Status)
	require.NotNil(t, txn.PaymentCompletedAt)
	require.NotNil(t, txn.PayoutScheduledAt)
	assert.Equal(t, time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC), *txn.PayoutScheduledAt)
	assert.Equal(t, models.RentalStatusApproved, f.repo.rental(rental.ID).Status)

	p := f.repo.payment(started.PaymentID)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.Equal(t, "FAKE-PAYER", p.ExternalPayerID)
	require.NotNil(t, p.ProcessedAt)

	commission := f.repo.paymentsOfType(txn.ID, models.PaymentTypePlatformCommission)
	require.Len(t, commission, 1)
	assert.True(t, commission[0].Amount.Equal(dec("10")))
	assert.Equal(t, rental.OwnerID, commission[0].PayerID)
	assert.Equal(t, models.PlatformAccountID, *commission[0].PayeeID)

	assert.Equal(t, []models.NotificationType{models.NotificationPaymentConfirmed, models.NotificationPaymentReceived}, f.notificationTypes())
	assert.Equal(t, []models.SettlementEventType{models.EventPaymentInitiated, models.EventPaymentCompleted}, f.eventTypes())
}

func TestCompleteRentalPayment_SecondCaptureRejected(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	f.approveFraud()
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	_, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")
	require.NoError(t, err)

	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, models.ResultCodeInvalidState, res.Code)
	assert.Len(t, f.repo.paymentsOfType(started.TransactionID, models.PaymentTypePlatformCommission), 1)
}

func TestCompleteRentalPayment_UnknownPayment(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())

	res, err := f.uc.CompleteRentalPayment(context.Background(), "ORDER-NOPE", "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeNotFound, res.Code)
}

func TestCompleteRentalPayment_LocalAmountMismatchSkipsFraudScreen(t *testing.T) {
	// no fraud expectations: a call to the screen fails the test
	f := newFixture(t, gateway.NewFakeGW())
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	f.repo.setPaymentAmount(started.PaymentID, dec("119.50"))

	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeAmountMismatch, res.Code)
	assert.Equal(t, models.PaymentStatusFailed, f.repo.payment(started.PaymentID).Status)
	assert.Equal(t, models.TransactionStatusCancelled, f.repo.transaction(started.TransactionID).Status)
	assert.Equal(t, models.RentalStatusPending, f.repo.rental(rental.ID).Status)
	assert.Contains(t, f.notificationTypes(), models.NotificationPaymentFailed)
}

func TestCompleteRentalPayment_WithinToleranceAccepted(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	f.approveFraud()
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	f.repo.setPaymentAmount(started.PaymentID, dec("120.01"))

	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")

	require.NoError(t, err)
	assert.True(t, res.Success)
}

// providerWithOrder returns a mock provider whose order creation succeeds
func providerWithOrder(t *testing.T) *mocks.MockProviderGW {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProviderGW(ctrl)
	provider.EXPECT().Name().Return(models.PaymentProviderPayPal).AnyTimes()
	provider.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
		Return(&models.ProviderPaymentResult{Success: true, OrderID: "ORDER-1", ApprovalURL: "https://paypal.test/approve"}, nil)
	return provider
}

func TestCompleteRentalPayment_ProviderAmountMismatch(t *testing.T) {
	provider := providerWithOrder(t)
	provider.EXPECT().GetPaymentStatus(gomock.Any(), "ORDER-1").
		Return(&models.PaymentStatusResult{Success: true, Status: models.ProviderStatusApproved, Amount: dec("100")}, nil)
	f := newFixture(t, provider)
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.CompleteRentalPayment(context.Background(), "ORDER-1", "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeAmountMismatch, res.Code)
	assert.Equal(t, models.TransactionStatusCancelled, f.repo.transaction(started.TransactionID).Status)
}

func TestCompleteRentalPayment_NotYetApprovedStaysPending(t *testing.T) {
	provider := providerWithOrder(t)
	provider.EXPECT().GetPaymentStatus(gomock.Any(), "ORDER-1").
		Return(&models.PaymentStatusResult{Success: true, Status: models.ProviderStatusCreated, Amount: dec("120")}, nil)
	f := newFixture(t, provider)
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.CompleteRentalPayment(context.Background(), "ORDER-1", "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeVerificationFailed, res.Code)
	assert.Equal(t, models.PaymentStatusPending, f.repo.payment(started.PaymentID).Status)
	assert.Equal(t, models.TransactionStatusPaymentProcessing, f.repo.transaction(started.TransactionID).Status)
}

func TestCompleteRentalPayment_VerificationDeclineFailsPayment(t *testing.T) {
	provider := providerWithOrder(t)
	provider.EXPECT().GetPaymentStatus(gomock.Any(), "ORDER-1").
		Return(&models.PaymentStatusResult{ErrorMessage: "RESOURCE_NOT_FOUND"}, nil)
	f := newFixture(t, provider)
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.CompleteRentalPayment(context.Background(), "ORDER-1", "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeVerificationFailed, res.Code)
	p := f.repo.payment(started.PaymentID)
	assert.Equal(t, models.PaymentStatusFailed, p.Status)
	assert.Contains(t, p.FailureReason, "RESOURCE_NOT_FOUND")
}

func TestCompleteRentalPayment_ProviderOutageRollsBack(t *testing.T) {
	provider := providerWithOrder(t)
	provider.EXPECT().GetPaymentStatus(gomock.Any(), "ORDER-1").Return(nil, errors.New("502 bad gateway"))
	f := newFixture(t, provider)
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.CompleteRentalPayment(context.Background(), "ORDER-1", "PAYER-1")

	assert.Error(t, err)
	assert.Nil(t, res)
	p := f.repo.payment(started.PaymentID)
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.Empty(t, p.ExternalPayerID)
}

func TestCompleteRentalPayment_FraudScreenDownHoldsForReview(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	f.fraud.EXPECT().CheckPayment(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis: connection refused"))
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, models.ResultCodeUnderReview, res.Code)
	assert.Equal(t, models.PaymentStatusUnderReview, f.repo.payment(started.PaymentID).Status)
	assert.Equal(t, models.TransactionStatusUnderReview, f.repo.transaction(started.TransactionID).Status)
	assert.Contains(t, f.eventTypes(), models.EventPaymentUnderReview)
}

func TestCompleteRentalPayment_FraudBlocked(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	f.fraud.EXPECT().CheckPayment(gomock.Any(), gomock.Any()).Return(&models.FraudCheckResult{
		RiskLevel:      models.RiskLevelCritical,
		RiskScore:      80,
		BlockingReason: "velocity",
		TriggeredRules: []string{"hourly_velocity", "daily_velocity"},
	}, nil)
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeFraudBlocked, res.Code)
	assert.Equal(t, models.MessageFraudBlocked, res.Message)
	assert.Equal(t, models.PaymentStatusFailed, f.repo.payment(started.PaymentID).Status)
	assert.Equal(t, models.TransactionStatusCancelled, f.repo.transaction(started.TransactionID).Status)
}

func TestCompleteRentalPayment_CaptureDeclined(t *testing.T) {
	provider := gateway.NewFakeGW()
	f := newFixture(t, provider)
	f.approveFraud()
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	provider.Decline(gateway.OpCapture, "INSTRUMENT_DECLINED")

	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeProviderError, res.Code)
	p := f.repo.payment(started.PaymentID)
	assert.Equal(t, models.PaymentStatusFailed, p.Status)
	assert.Contains(t, p.FailureReason, "INSTRUMENT_DECLINED")
	assert.Equal(t, models.TransactionStatusCancelled, f.repo.transaction(started.TransactionID).Status)
}

func holdForReview(t *testing.T, f *fixture) (models.Rental, *models.PaymentResult) {
	f.fraud.EXPECT().CheckPayment(gomock.Any(), gomock.Any()).Return(&models.FraudCheckResult{
		RiskLevel:            models.RiskLevelHigh,
		RiskScore:            50,
		RequiresManualReview: true,
	}, nil)
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	res, err := f.uc.CompleteRentalPayment(context.Background(), started.ExternalPaymentID, "")
	require.NoError(t, err)
	require.Equal(t, models.ResultCodeUnderReview, res.Code)
	return rental, started
}

func TestResolveManualReview_Approve(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	rental, started := holdForReview(t, f)
	f.fraud.EXPECT().UpdateVelocityTracking(gomock.Any(), rental.RenterID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
			assert.True(t, amount.Equal(dec("120")))
			return nil
		})

	res, err := f.uc.ResolveManualReview(context.Background(), started.PaymentID, true, "verified by phone")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.PaymentStatusCompleted, f.repo.payment(started.PaymentID).Status)
	assert.Equal(t, models.TransactionStatusPaymentCompleted, f.repo.transaction(started.TransactionID).Status)
}

func TestResolveManualReview_Reject(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	_, started := holdForReview(t, f)

	res, err := f.uc.ResolveManualReview(context.Background(), started.PaymentID, false, "stolen card")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.ResultCodeOK, res.Code)
	assert.Equal(t, "Payment rejected after review", res.Message)
	assert.Equal(t, models.PaymentStatusFailed, res.Status)
	assert.Equal(t, models.TransactionStatusCancelled, f.repo.transaction(started.TransactionID).Status)
}

func TestResolveManualReview_NotUnderReview(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)

	res, err := f.uc.ResolveManualReview(context.Background(), started.PaymentID, true, "")

	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeInvalidState, res.Code)

	res, err = f.uc.ResolveManualReview(context.Background(), uuid.New(), true, "")
	require.NoError(t, err)
	assert.Equal(t, models.ResultCodeNotFound, res.Code)
}
