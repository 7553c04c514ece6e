package gateway

import (
	"context"
	"testing"

	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeGW_PaymentLifecycle(t *testing.T) {
	ctx := context.Background()
	gw := NewFakeGW()

	created, err := gw.CreatePayment(ctx, &models.CreatePaymentRequest{Amount: decimal.NewFromInt(120), Currency: "USD", IdempotencyKey: "create-1"})
	require.NoError(t, err)
	require.True(t, created.Success)

	again, _ := gw.CreatePayment(ctx, &models.CreatePaymentRequest{Amount: decimal.NewFromInt(120), Currency: "USD", IdempotencyKey: "create-1"})
	assert.Equal(t, created.OrderID, again.OrderID)

	status, _ := gw.GetPaymentStatus(ctx, created.OrderID)
	assert.Equal(t, models.ProviderStatusApproved, status.Status)

	captured, _ := gw.CapturePayment(ctx, &models.CaptureRequest{PaymentID: created.OrderID, IdempotencyKey: "capture-1"})
	require.True(t, captured.Success)
	assert.True(t, decimal.NewFromInt(120).Equal(captured.Amount))

	second, _ := gw.CapturePayment(ctx, &models.CaptureRequest{PaymentID: created.OrderID, IdempotencyKey: "capture-2"})
	assert.False(t, second.Success)
	assert.Equal(t, "ORDER_ALREADY_CAPTURED", second.ErrorMessage)

	refund, _ := gw.RefundPayment(ctx, &models.RefundRequest{CaptureID: captured.CaptureID, Amount: decimal.NewFromInt(100), IdempotencyKey: "refund-1"})
	assert.True(t, refund.Success)
	replay, _ := gw.RefundPayment(ctx, &models.RefundRequest{CaptureID: captured.CaptureID, Amount: decimal.NewFromInt(100), IdempotencyKey: "refund-1"})
	assert.Equal(t, refund.RefundID, replay.RefundID)
	over, _ := gw.RefundPayment(ctx, &models.RefundRequest{CaptureID: captured.CaptureID, Amount: decimal.NewFromInt(30)})
	assert.False(t, over.Success)
	assert.True(t, decimal.NewFromInt(100).Equal(gw.Refunded(captured.CaptureID)))
}

func TestFakeGW_PayoutBatchIDIsSingleUse(t *testing.T) {
	ctx := context.Background()
	gw := NewFakeGW()
	req := &models.CreatePayoutRequest{SenderBatchID: "payout-1", Amount: decimal.NewFromInt(90), Currency: "USD"}

	first, err := gw.CreatePayout(ctx, req)
	require.NoError(t, err)
	replay, err := gw.CreatePayout(ctx, req)
	require.NoError(t, err)
	changed, err := gw.CreatePayout(ctx, &models.CreatePayoutRequest{SenderBatchID: "payout-1", Amount: decimal.NewFromInt(80), Currency: "USD"})
	require.NoError(t, err)

	assert.True(t, first.Success)
	assert.Equal(t, first, replay)
	assert.False(t, changed.Success)
	assert.True(t, changed.Duplicate)
	assert.Equal(t, 1, gw.PayoutCount())

	status, _ := gw.GetPayoutStatus(ctx, first.BatchID)
	assert.True(t, status.Success)
	assert.True(t, decimal.NewFromInt(90).Equal(status.Amount))
}

func TestFakeGW_Decline(t *testing.T) {
	gw := NewFakeGW()
	gw.Decline(OpCreatePayment, "INSTRUMENT_DECLINED")

	res, err := gw.CreatePayment(context.Background(), &models.CreatePaymentRequest{Amount: decimal.NewFromInt(1)})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "INSTRUMENT_DECLINED", res.ErrorMessage)
}
