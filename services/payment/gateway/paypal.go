package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	httpclient "github.com/piresc/toolshare/internal/pkg/http"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	tokenRefreshMargin = time.Minute
	webhookVerified    = "SUCCESS"
)

// PayPalGW talks to the PayPal REST API: Orders v2 for rental payments,
// Payments v2 for refunds and Payouts v1 for owner disbursements.
type PayPalGW struct {
	cfg    models.PayPalConfig
	client *httpclient.EnhancedClient

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	now         func() time.Time
}

// NewPayPalGW creates a PayPal adapter on top of the resilient HTTP client
func NewPayPalGW(cfg models.PayPalConfig, client *httpclient.EnhancedClient) *PayPalGW {
	return &PayPalGW{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}
}

func (g *PayPalGW) Name() models.PaymentProvider {
	return models.PaymentProviderPayPal
}

type paypalMoney struct {
	CurrencyCode string          `json:"currency_code"`
	Value        decimal.Decimal `json:"value"`
}

type paypalLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type paypalCapture struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Amount paypalMoney `json:"amount"`
}

type paypalPurchaseUnit struct {
	ReferenceID string      `json:"reference_id"`
	Amount      paypalMoney `json:"amount"`
	Payments    struct {
		Captures []paypalCapture `json:"captures"`
	} `json:"payments"`
}

type paypalOrder struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	Links         []paypalLink         `json:"links"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
	Payer         struct {
		PayerID string `json:"payer_id"`
	} `json:"payer"`
}

type paypalError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

// CreatePayment creates a CAPTURE order with the owner as payee and the
// commission as platform fee. The renter approves it at ApprovalURL.
func (g *PayPalGW) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.ProviderPaymentResult, error) {
	unit := map[string]interface{}{
		"reference_id": req.ReferenceID,
		"description":  req.Description,
		"amount":       money(req.Amount, req.Currency),
		"payee":        map[string]string{"email_address": req.PayeeEmail},
	}
	if req.PlatformFee.IsPositive() {
		unit["payment_instruction"] = map[string]interface{}{
			"platform_fees": []map[string]interface{}{{"amount": money(req.PlatformFee, req.Currency)}},
		}
	}
	body := map[string]interface{}{
		"intent":         "CAPTURE",
		"purchase_units": []interface{}{unit},
		"application_context": map[string]string{
			"return_url":          req.ReturnURL,
			"cancel_url":          req.CancelURL,
			"user_action":         "PAY_NOW",
			"shipping_preference": "NO_SHIPPING",
		},
	}

	var order paypalOrder
	err := g.call(ctx, http.MethodPost, "/v2/checkout/orders", req.IdempotencyKey, body, &order)
	if msg, ok := declined(err); ok {
		return &models.ProviderPaymentResult{ErrorMessage: msg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create PayPal order: %w", err)
	}

	result := &models.ProviderPaymentResult{
		Success: true,
		OrderID: order.ID,
		Status:  order.Status,
	}
	for _, l := range order.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			result.ApprovalURL = l.Href
		}
	}
	return result, nil
}

// CapturePayment captures an approved order; PaymentID is the order id
func (g *PayPalGW) CapturePayment(ctx context.Context, req *models.CaptureRequest) (*models.CaptureResult, error) {
	var order paypalOrder
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(req.PaymentID))
	err := g.call(ctx, http.MethodPost, path, req.IdempotencyKey, struct{}{}, &order)
	if msg, ok := declined(err); ok {
		return &models.CaptureResult{ErrorMessage: msg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to capture PayPal order: %w", err)
	}

	capture, ok := firstCapture(order)
	if !ok {
		return &models.CaptureResult{ErrorMessage: "capture missing from PayPal response", Status: order.Status}, nil
	}
	if capture.Status != models.ProviderStatusCompleted && capture.Status != models.ProviderStatusPending {
		return &models.CaptureResult{
			ErrorMessage: fmt.Sprintf("capture status %s", capture.Status),
			CaptureID:    capture.ID,
			Status:       capture.Status,
		}, nil
	}

	return &models.CaptureResult{
		Success:   true,
		CaptureID: capture.ID,
		Status:    capture.Status,
		Amount:    capture.Amount.Value,
		Currency:  capture.Amount.CurrencyCode,
		PayerID:   order.Payer.PayerID,
	}, nil
}

func (g *PayPalGW) GetPaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusResult, error) {
	var order paypalOrder
	path := "/v2/checkout/orders/" + url.PathEscape(paymentID)
	err := g.call(ctx, http.MethodGet, path, "", nil, &order)
	if msg, ok := declined(err); ok {
		return &models.PaymentStatusResult{ErrorMessage: msg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get PayPal order: %w", err)
	}

	result := &models.PaymentStatusResult{
		Success: true,
		Status:  order.Status,
		PayerID: order.Payer.PayerID,
	}
	if len(order.PurchaseUnits) > 0 {
		result.Amount = order.PurchaseUnits[0].Amount.Value
		result.Currency = order.PurchaseUnits[0].Amount.CurrencyCode
	}
	return result, nil
}

func (g *PayPalGW) RefundPayment(ctx context.Context, req *models.RefundRequest) (*models.ProviderRefundResult, error) {
	body := map[string]interface{}{
		"amount":        money(req.Amount, req.Currency),
		"note_to_payer": req.Reason,
	}
	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	path := fmt.Sprintf("/v2/payments/captures/%s/refund", url.PathEscape(req.CaptureID))
	err := g.call(ctx, http.MethodPost, path, req.IdempotencyKey, body, &out)
	if msg, ok := declined(err); ok {
		return &models.ProviderRefundResult{ErrorMessage: msg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to refund PayPal capture: %w", err)
	}
	if out.Status == models.ProviderStatusFailed {
		return &models.ProviderRefundResult{ErrorMessage: "refund failed", RefundID: out.ID, Status: out.Status}, nil
	}

	return &models.ProviderRefundResult{Success: true, RefundID: out.ID, Status: out.Status}, nil
}

type payoutBatchHeader struct {
	PayoutBatchID     string `json:"payout_batch_id"`
	BatchStatus       string `json:"batch_status"`
	SenderBatchHeader struct {
		SenderBatchID string `json:"sender_batch_id"`
	} `json:"sender_batch_header"`
	Amount struct {
		Currency string          `json:"currency"`
		Value    decimal.Decimal `json:"value"`
	} `json:"amount"`
}

type payoutBatch struct {
	BatchHeader payoutBatchHeader `json:"batch_header"`
	Items       []struct {
		PayoutItemID string `json:"payout_item_id"`
	} `json:"items"`
}

// CreatePayout sends a single-item payout batch. The sender batch id is also
// the PayPal-Request-Id, so a resent request gets the original batch back;
// a sender_batch_id PayPal already holds is reported as Duplicate.
func (g *PayPalGW) CreatePayout(ctx context.Context, req *models.CreatePayoutRequest) (*models.ProviderPayoutResult, error) {
	body := map[string]interface{}{
		"sender_batch_header": map[string]string{
			"sender_batch_id": req.SenderBatchID,
			"email_subject":   "You have a payout from your tool rental",
		},
		"items": []map[string]interface{}{{
			"recipient_type": "EMAIL",
			"receiver":       req.RecipientEmail,
			"note":           req.Note,
			"sender_item_id": req.SenderBatchID,
			"amount": map[string]string{
				"value":    req.Amount.StringFixed(2),
				"currency": req.Currency,
			},
		}},
	}

	var batch payoutBatch
	err := g.call(ctx, http.MethodPost, "/v1/payments/payouts", req.SenderBatchID, body, &batch)
	if msg, ok := declined(err); ok {
		return &models.ProviderPayoutResult{ErrorMessage: msg, Duplicate: duplicateBatch(msg)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create PayPal payout: %w", err)
	}
	if batch.BatchHeader.BatchStatus == models.ProviderStatusDenied {
		return &models.ProviderPayoutResult{
			ErrorMessage: "payout batch denied",
			BatchID:      batch.BatchHeader.PayoutBatchID,
			Status:       batch.BatchHeader.BatchStatus,
		}, nil
	}

	result := &models.ProviderPayoutResult{
		Success: true,
		BatchID: batch.BatchHeader.PayoutBatchID,
		Status:  batch.BatchHeader.BatchStatus,
	}
	if len(batch.Items) > 0 {
		result.PayoutID = batch.Items[0].PayoutItemID
	}
	return result, nil
}

func (g *PayPalGW) GetPayoutStatus(ctx context.Context, batchID string) (*models.PayoutStatusResult, error) {
	var batch payoutBatch
	err := g.call(ctx, http.MethodGet, "/v1/payments/payouts/"+url.PathEscape(batchID), "", nil, &batch)
	if msg, ok := declined(err); ok {
		return &models.PayoutStatusResult{ErrorMessage: msg, BatchID: batchID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get PayPal payout: %w", err)
	}

	return &models.PayoutStatusResult{
		Success:  true,
		BatchID:  batch.BatchHeader.PayoutBatchID,
		Status:   batch.BatchHeader.BatchStatus,
		Amount:   batch.BatchHeader.Amount.Value,
		Currency: batch.BatchHeader.Amount.Currency,
	}, nil
}

// ValidateWebhook asks PayPal to verify the transmission signature against
// the configured webhook id
func (g *PayPalGW) ValidateWebhook(ctx context.Context, req *models.WebhookRequest) (*models.WebhookValidationResult, error) {
	if g.cfg.WebhookID == "" {
		return &models.WebhookValidationResult{ErrorMessage: "webhook id not configured"}, nil
	}
	if !json.Valid(req.Body) {
		return &models.WebhookValidationResult{ErrorMessage: "webhook body is not valid JSON"}, nil
	}

	body := map[string]interface{}{
		"auth_algo":         header(req.Headers, "PAYPAL-AUTH-ALGO"),
		"cert_url":          header(req.Headers, "PAYPAL-CERT-URL"),
		"transmission_id":   header(req.Headers, "PAYPAL-TRANSMISSION-ID"),
		"transmission_sig":  header(req.Headers, "PAYPAL-TRANSMISSION-SIG"),
		"transmission_time": header(req.Headers, "PAYPAL-TRANSMISSION-TIME"),
		"webhook_id":        g.cfg.WebhookID,
		"webhook_event":     json.RawMessage(req.Body),
	}
	var out struct {
		VerificationStatus string `json:"verification_status"`
	}
	err := g.call(ctx, http.MethodPost, "/v1/notifications/verify-webhook-signature", "", body, &out)
	if msg, ok := declined(err); ok {
		return &models.WebhookValidationResult{ErrorMessage: msg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify PayPal webhook: %w", err)
	}
	if out.VerificationStatus != webhookVerified {
		return &models.WebhookValidationResult{ErrorMessage: "webhook signature verification failed"}, nil
	}
	return &models.WebhookValidationResult{Success: true}, nil
}

type paypalWebhook struct {
	ID           string          `json:"id"`
	EventType    string          `json:"event_type"`
	ResourceType string          `json:"resource_type"`
	CreateTime   time.Time       `json:"create_time"`
	Resource     json.RawMessage `json:"resource"`
}

type webhookResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount struct {
		CurrencyCode string          `json:"currency_code"`
		Value        decimal.Decimal `json:"value"`
	} `json:"amount"`
	Payer struct {
		PayerID string `json:"payer_id"`
	} `json:"payer"`
	PurchaseUnits     []paypalPurchaseUnit `json:"purchase_units"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`

	// payouts
	PayoutItemID      string            `json:"payout_item_id"`
	PayoutBatchID     string            `json:"payout_batch_id"`
	TransactionStatus string            `json:"transaction_status"`
	BatchHeader       payoutBatchHeader `json:"batch_header"`
	PayoutItem        struct {
		SenderItemID string `json:"sender_item_id"`
		Amount       struct {
			Currency string          `json:"currency"`
			Value    decimal.Decimal `json:"value"`
		} `json:"amount"`
	} `json:"payout_item"`
}

// ProcessWebhook normalises a verified PayPal webhook body
func (g *PayPalGW) ProcessWebhook(_ context.Context, req *models.WebhookRequest) (*models.WebhookProcessResult, error) {
	return parseWebhook(req.Body), nil
}

func parseWebhook(body []byte) *models.WebhookProcessResult {
	var hook paypalWebhook
	if err := json.Unmarshal(body, &hook); err != nil {
		return &models.WebhookProcessResult{ErrorMessage: "malformed webhook body"}
	}
	if hook.ID == "" || hook.EventType == "" {
		return &models.WebhookProcessResult{ErrorMessage: "webhook is missing id or event_type"}
	}

	var res webhookResource
	if len(hook.Resource) > 0 {
		if err := json.Unmarshal(hook.Resource, &res); err != nil {
			return &models.WebhookProcessResult{ErrorMessage: "malformed webhook resource"}
		}
	}

	event := &models.WebhookEvent{
		ID:           hook.ID,
		EventType:    hook.EventType,
		ResourceType: hook.ResourceType,
		ResourceID:   res.ID,
		PayerID:      res.Payer.PayerID,
		Status:       res.Status,
		Amount:       res.Amount.Value,
		Currency:     res.Amount.CurrencyCode,
		CreatedAt:    hook.CreateTime,
	}

	switch hook.EventType {
	case models.WebhookOrderApproved:
		event.OrderID = res.ID
		if len(res.PurchaseUnits) > 0 {
			event.Amount = res.PurchaseUnits[0].Amount.Value
			event.Currency = res.PurchaseUnits[0].Amount.CurrencyCode
		}
	case models.WebhookCaptureCompleted, models.WebhookCaptureRefunded:
		event.OrderID = res.SupplementaryData.RelatedIDs.OrderID
	case models.WebhookPayoutItemSucceeded, models.WebhookPayoutItemFailed:
		event.ResourceID = res.PayoutItemID
		event.BatchID = res.PayoutBatchID
		event.SenderBatchID = res.PayoutItem.SenderItemID
		event.Status = res.TransactionStatus
		event.Amount = res.PayoutItem.Amount.Value
		event.Currency = res.PayoutItem.Amount.Currency
	case models.WebhookPayoutsBatchSuccess, models.WebhookPayoutsBatchDenied:
		event.ResourceID = res.BatchHeader.PayoutBatchID
		event.BatchID = res.BatchHeader.PayoutBatchID
		event.SenderBatchID = res.BatchHeader.SenderBatchHeader.SenderBatchID
		event.Status = res.BatchHeader.BatchStatus
		event.Amount = res.BatchHeader.Amount.Value
		event.Currency = res.BatchHeader.Amount.Currency
	}

	return &models.WebhookProcessResult{Success: true, Event: event}
}

// call sends an authenticated JSON request. An expired token is refreshed
// once on 401.
func (g *PayPalGW) call(ctx context.Context, method, path, requestID string, in, out interface{}) error {
	for attempt := 0; ; attempt++ {
		token, err := g.token(ctx)
		if err != nil {
			return err
		}

		headers := map[string]string{"Authorization": "Bearer " + token}
		if requestID != "" {
			headers["PayPal-Request-Id"] = requestID
		}
		err = g.client.DoJSON(ctx, method, g.cfg.BaseURL+path, headers, in, out)

		var httpErr *httpclient.HTTPError
		if attempt == 0 && errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			g.invalidateToken()
			continue
		}
		return err
	}
}

func (g *PayPalGW) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && g.now().Before(g.expiresAt.Add(-tokenRefreshMargin)) {
		return g.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(g.cfg.ClientID, g.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to request PayPal token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("PayPal token request rejected",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(b)))
		return "", fmt.Errorf("PayPal token request rejected with status %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode PayPal token: %w", err)
	}

	g.accessToken = out.AccessToken
	g.expiresAt = g.now().Add(time.Duration(out.ExpiresIn) * time.Second)
	return g.accessToken, nil
}

func (g *PayPalGW) invalidateToken() {
	g.mu.Lock()
	g.accessToken = ""
	g.mu.Unlock()
}

// declined turns a non-retried 4xx into a business failure message
func declined(err error) (string, bool) {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return "", false
	}
	if httpErr.StatusCode < 400 || httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusTooManyRequests {
		return "", false
	}

	var pe paypalError
	if json.Unmarshal([]byte(httpErr.Body), &pe) != nil || pe.Name == "" {
		return fmt.Sprintf("provider rejected request with status %d", httpErr.StatusCode), true
	}
	if len(pe.Details) > 0 && pe.Details[0].Issue != "" {
		return pe.Name + ": " + pe.Details[0].Issue, true
	}
	return pe.Name + ": " + pe.Message, true
}

// duplicateBatch recognises PayPal's answer to a reused sender_batch_id
func duplicateBatch(msg string) bool {
	upper := strings.ToUpper(msg)
	return strings.Contains(upper, "DUPLICATE_REQUEST_ID") ||
		strings.Contains(upper, "SENDER_BATCH_ID_ALREADY_USED") ||
		(strings.Contains(upper, "SENDER_BATCH_ID") && strings.Contains(upper, "ALREADY EXISTS"))
}

func firstCapture(order paypalOrder) (paypalCapture, bool) {
	for _, u := range order.PurchaseUnits {
		if len(u.Payments.Captures) > 0 {
			return u.Payments.Captures[0], true
		}
	}
	return paypalCapture{}, false
}

func money(amount decimal.Decimal, currency string) map[string]string {
	return map[string]string{
		"currency_code": currency,
		"value":         amount.StringFixed(2),
	}
}

func header(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
