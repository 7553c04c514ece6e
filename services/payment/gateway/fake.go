package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// Operations a FakeGW can be told to decline
const (
	OpCreatePayment = "create_payment"
	OpCapture       = "capture"
	OpRefund        = "refund"
	OpPayout        = "payout"
)

type fakeOrder struct {
	amount    decimal.Decimal
	currency  string
	status    string
	captureID string
	refunded  decimal.Decimal
}

// FakeGW is an in-process provider for local runs and tests. Orders are
// approved as soon as they are created and payouts settle immediately.
// Like PayPal it answers a repeated idempotency key with the first result.
// A payout batch id resent with the same amount replays the first answer;
// with a different amount it is refused as a duplicate.
type FakeGW struct {
	mu       sync.Mutex
	seq      int
	orders   map[string]*fakeOrder
	captures map[string]string
	payouts  map[string]*models.ProviderPayoutResult
	amounts  map[string]decimal.Decimal
	replies  map[string]interface{}
	declines map[string]string
}

func NewFakeGW() *FakeGW {
	return &FakeGW{
		orders:   make(map[string]*fakeOrder),
		captures: make(map[string]string),
		payouts:  make(map[string]*models.ProviderPayoutResult),
		amounts:  make(map[string]decimal.Decimal),
		replies:  make(map[string]interface{}),
		declines: make(map[string]string),
	}
}

func (g *FakeGW) Name() models.PaymentProvider {
	return models.PaymentProviderFake
}

// Decline makes every later call of op fail with reason; an empty reason
// clears it
func (g *FakeGW) Decline(op, reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if reason == "" {
		delete(g.declines, op)
		return
	}
	g.declines[op] = reason
}

// PayoutCount reports how many payout batches were accepted
func (g *FakeGW) PayoutCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.payouts)
}

// Refunded reports the total refunded against a capture
func (g *FakeGW) Refunded(captureID string) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[g.captures[captureID]]
	if !ok {
		return decimal.Zero
	}
	return order.refunded
}

func (g *FakeGW) CreatePayment(_ context.Context, req *models.CreatePaymentRequest) (*models.ProviderPaymentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.replies[req.IdempotencyKey].(*models.ProviderPaymentResult); ok && req.IdempotencyKey != "" {
		return prev, nil
	}
	if reason, ok := g.declines[OpCreatePayment]; ok {
		return &models.ProviderPaymentResult{ErrorMessage: reason}, nil
	}

	id := g.nextID("FAKE-ORDER")
	g.orders[id] = &fakeOrder{
		amount:   req.Amount,
		currency: req.Currency,
		status:   models.ProviderStatusApproved,
		refunded: decimal.Zero,
	}
	res := &models.ProviderPaymentResult{
		Success:     true,
		OrderID:     id,
		ApprovalURL: "https://fake.provider.local/approve/" + id,
		Status:      models.ProviderStatusCreated,
	}
	if req.IdempotencyKey != "" {
		g.replies[req.IdempotencyKey] = res
	}
	return res, nil
}

func (g *FakeGW) CapturePayment(_ context.Context, req *models.CaptureRequest) (*models.CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.replies[req.IdempotencyKey].(*models.CaptureResult); ok && req.IdempotencyKey != "" {
		return prev, nil
	}
	if reason, ok := g.declines[OpCapture]; ok {
		return &models.CaptureResult{ErrorMessage: reason}, nil
	}

	order, ok := g.orders[req.PaymentID]
	if !ok {
		return &models.CaptureResult{ErrorMessage: "RESOURCE_NOT_FOUND"}, nil
	}
	if order.captureID != "" {
		return &models.CaptureResult{ErrorMessage: "ORDER_ALREADY_CAPTURED", CaptureID: order.captureID}, nil
	}

	order.captureID = g.nextID("FAKE-CAPTURE")
	order.status = models.ProviderStatusCompleted
	g.captures[order.captureID] = req.PaymentID

	res := &models.CaptureResult{
		Success:   true,
		CaptureID: order.captureID,
		Status:    models.ProviderStatusCompleted,
		Amount:    order.amount,
		Currency:  order.currency,
		PayerID:   "FAKE-PAYER",
	}
	if req.IdempotencyKey != "" {
		g.replies[req.IdempotencyKey] = res
	}
	return res, nil
}

func (g *FakeGW) GetPaymentStatus(_ context.Context, paymentID string) (*models.PaymentStatusResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[paymentID]
	if !ok {
		return &models.PaymentStatusResult{ErrorMessage: "RESOURCE_NOT_FOUND"}, nil
	}
	return &models.PaymentStatusResult{
		Success:  true,
		Status:   order.status,
		Amount:   order.amount,
		Currency: order.currency,
		PayerID:  "FAKE-PAYER",
	}, nil
}

func (g *FakeGW) RefundPayment(_ context.Context, req *models.RefundRequest) (*models.ProviderRefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.replies[req.IdempotencyKey].(*models.ProviderRefundResult); ok && req.IdempotencyKey != "" {
		return prev, nil
	}
	if reason, ok := g.declines[OpRefund]; ok {
		return &models.ProviderRefundResult{ErrorMessage: reason}, nil
	}

	orderID, ok := g.captures[req.CaptureID]
	if !ok {
		return &models.ProviderRefundResult{ErrorMessage: "RESOURCE_NOT_FOUND"}, nil
	}
	order := g.orders[orderID]
	if order.refunded.Add(req.Amount).GreaterThan(order.amount) {
		return &models.ProviderRefundResult{ErrorMessage: "REFUND_AMOUNT_EXCEEDED"}, nil
	}
	order.refunded = order.refunded.Add(req.Amount)

	res := &models.ProviderRefundResult{
		Success:  true,
		RefundID: g.nextID("FAKE-REFUND"),
		Status:   models.ProviderStatusCompleted,
	}
	if req.IdempotencyKey != "" {
		g.replies[req.IdempotencyKey] = res
	}
	return res, nil
}

func (g *FakeGW) CreatePayout(_ context.Context, req *models.CreatePayoutRequest) (*models.ProviderPayoutResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reason, ok := g.declines[OpPayout]; ok {
		return &models.ProviderPayoutResult{ErrorMessage: reason}, nil
	}
	if prev, ok := g.payouts[req.SenderBatchID]; ok {
		if g.amounts[prev.BatchID].Equal(req.Amount) {
			return prev, nil
		}
		return &models.ProviderPayoutResult{Duplicate: true, ErrorMessage: "DUPLICATE_REQUEST_ID"}, nil
	}

	res := &models.ProviderPayoutResult{
		Success:  true,
		PayoutID: g.nextID("FAKE-ITEM"),
		BatchID:  g.nextID("FAKE-BATCH"),
		Status:   models.ProviderStatusSuccess,
	}
	g.payouts[req.SenderBatchID] = res
	g.amounts[res.BatchID] = req.Amount
	return res, nil
}

func (g *FakeGW) GetPayoutStatus(_ context.Context, batchID string) (*models.PayoutStatusResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	amount, ok := g.amounts[batchID]
	if !ok {
		return &models.PayoutStatusResult{ErrorMessage: "RESOURCE_NOT_FOUND", BatchID: batchID}, nil
	}
	return &models.PayoutStatusResult{
		Success:  true,
		BatchID:  batchID,
		Status:   models.ProviderStatusSuccess,
		Amount:   amount,
		Currency: models.DefaultCurrency,
	}, nil
}

// ValidateWebhook accepts any well-formed JSON body
func (g *FakeGW) ValidateWebhook(_ context.Context, req *models.WebhookRequest) (*models.WebhookValidationResult, error) {
	if !json.Valid(req.Body) {
		return &models.WebhookValidationResult{ErrorMessage: "webhook body is not valid JSON"}, nil
	}
	return &models.WebhookValidationResult{Success: true}, nil
}

// ProcessWebhook reads PayPal-shaped webhook bodies
func (g *FakeGW) ProcessWebhook(_ context.Context, req *models.WebhookRequest) (*models.WebhookProcessResult, error) {
	return parseWebhook(req.Body), nil
}

// nextID must be called with mu held
func (g *FakeGW) nextID(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s-%d", prefix, g.seq)
}
