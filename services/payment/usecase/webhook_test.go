package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment/gateway"
	"github.com/piresc/toolshare/services/payment/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderApprovedWebhook(eventID, orderID string) *models.WebhookRequest {
	body := fmt.Sprintf(`{
		"id": %q,
		"event_type": "CHECKOUT.ORDER.APPROVED",
		"resource_type": "checkout-order",
		"create_time": "2026-03-02T14:31:00Z",
		"resource": {
			"id": %q,
			"status": "APPROVED",
			"payer": {"payer_id": "PAYER-7"},
			"purchase_units": [{"amount": {"currency_code": "USD", "value": "120.00"}}]
		}
	}`, eventID, orderID)
	return &models.WebhookRequest{
		Headers: map[string]string{"Paypal-Transmission-Id": "T-" + eventID},
		Body:    []byte(body),
	}
}

func TestHandleWebhook_OrderApprovedCapturesOnce(t *testing.T) {
	// Arrange
	f := newFixture(t, gateway.NewFakeGW())
	f.approveFraud()
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	hook := orderApprovedWebhook("WH-1", started.ExternalPaymentID)

	// Act
	err := f.uc.HandleWebhook(context.Background(), hook)
	require.NoError(t, err)
	err = f.uc.HandleWebhook(context.Background(), hook)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, f.repo.payment(started.PaymentID).Status)
	assert.Equal(t, []models.SettlementEventType{models.EventPaymentInitiated, models.EventPaymentCompleted}, f.eventTypes())
	assert.True(t, f.repo.seen("WH-1"))
}

func TestHandleWebhook_InvalidBody(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())

	err := f.uc.HandleWebhook(context.Background(), &models.WebhookRequest{Body: []byte(`not json`)})
	assert.ErrorIs(t, err, models.ErrInvalidWebhook)

	err = f.uc.HandleWebhook(context.Background(), &models.WebhookRequest{Body: []byte(`{"resource":{}}`)})
	assert.ErrorIs(t, err, models.ErrInvalidWebhook)
}

func TestHandleWebhook_SignatureRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProviderGW(ctrl)
	provider.EXPECT().ValidateWebhook(gomock.Any(), gomock.Any()).
		Return(&models.WebhookValidationResult{ErrorMessage: "verification_status FAILURE"}, nil)
	f := newFixture(t, provider)

	err := f.uc.HandleWebhook(context.Background(), orderApprovedWebhook("WH-2", "ORDER-1"))

	assert.ErrorIs(t, err, models.ErrInvalidWebhook)
	assert.False(t, f.repo.seen("WH-2"))
}

func TestHandleWebhook_FailedApplyIsReleased(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	f.approveFraud()
	rental := f.seedRental("100", "20")
	started := f.initiate(t, rental)
	hook := orderApprovedWebhook("WH-3", started.ExternalPaymentID)
	f.repo.txErr = errors.New("could not serialize access")

	err := f.uc.HandleWebhook(context.Background(), hook)

	require.Error(t, err)
	assert.False(t, f.repo.seen("WH-3"), "event id released for redelivery")
	assert.Equal(t, models.PaymentStatusPending, f.repo.payment(started.PaymentID).Status)

	// the redelivery goes through
	require.NoError(t, f.uc.HandleWebhook(context.Background(), hook))
	assert.Equal(t, models.PaymentStatusCompleted, f.repo.payment(started.PaymentID).Status)
}

func TestHandleWebhook_ConfirmationEventsAreRecorded(t *testing.T) {
	f := newFixture(t, gateway.NewFakeGW())
	hook := &models.WebhookRequest{Body: []byte(`{
		"id": "WH-4",
		"event_type": "PAYMENT.PAYOUTS-ITEM.SUCCEEDED",
		"resource": {
			"payout_item_id": "ITEM-1",
			"payout_batch_id": "BATCH-1",
			"transaction_status": "SUCCESS",
			"payout_item": {"amount": {"currency": "USD", "value": "90.00"}}
		}
	}`)}

	require.NoError(t, f.uc.HandleWebhook(context.Background(), hook))

	assert.True(t, f.repo.seen("WH-4"))
	assert.Empty(t, f.events)
}

func TestHandleWebhook_ProviderCallsAreBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	fake := gateway.NewFakeGW()
	provider := mocks.NewMockProviderGW(ctrl)
	requireDeadline := func(ctx context.Context) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "provider call without a deadline")
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	}
	provider.EXPECT().ValidateWebhook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *models.WebhookRequest) (*models.WebhookValidationResult, error) {
			requireDeadline(ctx)
			return fake.ValidateWebhook(ctx, req)
		})
	provider.EXPECT().ProcessWebhook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *models.WebhookRequest) (*models.WebhookProcessResult, error) {
			requireDeadline(ctx)
			return fake.ProcessWebhook(ctx, req)
		})
	f := newFixture(t, provider)

	err := f.uc.HandleWebhook(context.Background(), payoutItemWebhook("WH-5", models.WebhookPayoutsBatchSuccess, "", "SUCCESS"))

	require.NoError(t, err)
	assert.True(t, f.repo.seen("WH-5"))
}

func TestHandleWebhook_ValidationTimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProviderGW(ctrl)
	provider.EXPECT().ValidateWebhook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *models.WebhookRequest) (*models.WebhookValidationResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	f := newFixture(t, provider)

	err := f.uc.HandleWebhook(context.Background(), orderApprovedWebhook("WH-6", "ORDER-1"))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.repo.seen("WH-6"))
}
