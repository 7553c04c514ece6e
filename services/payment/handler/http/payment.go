package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/middleware"
	"github.com/piresc/toolshare/internal/pkg/models"
	nrpkg "github.com/piresc/toolshare/internal/pkg/newrelic"
	"github.com/piresc/toolshare/internal/utils"
	"github.com/piresc/toolshare/services/payment"
	"github.com/shopspring/decimal"
)

const maxWebhookBody = 1 << 20

var validate = validator.New()

// PaymentHandler handles HTTP requests for rental settlement
type PaymentHandler struct {
	paymentUC payment.PaymentUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(paymentUC payment.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// CompletePaymentRequest is sent by the client when the payer returns from
// the provider's approval page
type CompletePaymentRequest struct {
	ExternalPaymentID string `json:"external_payment_id" validate:"required,max=64"`
	PayerID           string `json:"payer_id" validate:"max=64"`
}

// RefundRequest asks for part or all of a rental payment back
type RefundRequest struct {
	Amount string `json:"amount" validate:"required,numeric"`
	Reason string `json:"reason" validate:"required,max=500"`
}

// ReviewRequest settles a payment held by the fraud screen
type ReviewRequest struct {
	Approve *bool  `json:"approve" validate:"required"`
	Note    string `json:"note" validate:"max=500"`
}

// PreviewFinancials shows the commission split for a rental
func (h *PaymentHandler) PreviewFinancials(c echo.Context) error {
	setTransactionName(c, "Payments.PreviewFinancials")

	rentalID, userID, ok := h.rentalCaller(c)
	if !ok {
		return nil
	}

	fin, err := h.paymentUC.PreviewRentalFinancials(c.Request().Context(), rentalID, userID)
	if err != nil {
		return lookupError(c, err, "Failed to preview rental financials")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Rental financials", fin)
}

// GetSettlement returns the ledger entry and payments of a rental
func (h *PaymentHandler) GetSettlement(c echo.Context) error {
	setTransactionName(c, "Payments.GetSettlement")

	rentalID, userID, ok := h.rentalCaller(c)
	if !ok {
		return nil
	}

	settlement, err := h.paymentUC.GetRentalSettlement(c.Request().Context(), rentalID, userID)
	if err != nil {
		return lookupError(c, err, "Failed to load rental settlement")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Rental settlement", settlement)
}

// InitiatePayment starts payment for a rental on behalf of its renter
func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	setTransactionName(c, "Payments.InitiatePayment")

	rentalID, userID, ok := h.rentalCaller(c)
	if !ok {
		return nil
	}

	result, err := h.paymentUC.InitiateRentalPayment(c.Request().Context(), rentalID, userID)
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to initiate payment")
	}
	if !result.Success {
		return utils.FailureResponse(c, StatusForResult(result.Code), string(result.Code), result.Message, result)
	}
	return utils.SuccessResponse(c, http.StatusCreated, result.Message, result)
}

// CompletePayment captures a payment the payer has approved
func (h *PaymentHandler) CompletePayment(c echo.Context) error {
	setTransactionName(c, "Payments.CompletePayment")

	var req CompletePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, err := h.paymentUC.CompleteRentalPayment(c.Request().Context(), req.ExternalPaymentID, req.PayerID)
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to complete payment")
	}
	if !result.Success {
		return utils.FailureResponse(c, StatusForResult(result.Code), string(result.Code), result.Message, result)
	}
	return utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// RefundRental refunds part of a captured rental payment
func (h *PaymentHandler) RefundRental(c echo.Context) error {
	setTransactionName(c, "Payments.RefundRental")

	rentalID, err := uuid.Parse(c.Param("rentalID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid rental ID")
	}

	var req RefundRequest
	if err := bindAndValidate(c, &req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid refund amount")
	}

	logger.Info("Refund requested",
		logger.UUID("rental_id", rentalID),
		logger.Amount("amount", amount),
		logger.String("caller", callerService(c)))

	result, err := h.paymentUC.RefundRental(c.Request().Context(), rentalID, amount, req.Reason)
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to refund rental")
	}
	if !result.Success {
		return utils.FailureResponse(c, StatusForResult(result.Code), string(result.Code), result.Message, result)
	}
	return utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// RefundDeposit returns a rental's security deposit
func (h *PaymentHandler) RefundDeposit(c echo.Context) error {
	setTransactionName(c, "Payments.RefundDeposit")

	rentalID, err := uuid.Parse(c.Param("rentalID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid rental ID")
	}

	result, err := h.paymentUC.RefundSecurityDeposit(c.Request().Context(), rentalID)
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to refund security deposit")
	}
	if !result.Success {
		return utils.FailureResponse(c, StatusForResult(result.Code), string(result.Code), result.Message, result)
	}
	return utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// ResolveReview approves or rejects a payment held for review
func (h *PaymentHandler) ResolveReview(c echo.Context) error {
	setTransactionName(c, "Payments.ResolveReview")

	paymentID, err := uuid.Parse(c.Param("paymentID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	var req ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, err := h.paymentUC.ResolveManualReview(c.Request().Context(), paymentID, *req.Approve, req.Note)
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to resolve review")
	}
	if !result.Success {
		return utils.FailureResponse(c, StatusForResult(result.Code), string(result.Code), result.Message, result)
	}
	return utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// CreatePayout pays the owner of a captured transaction now
func (h *PaymentHandler) CreatePayout(c echo.Context) error {
	setTransactionName(c, "Payments.CreatePayout")

	transactionID, err := uuid.Parse(c.Param("transactionID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	result, err := h.paymentUC.CreateOwnerPayout(c.Request().Context(), transactionID)
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to create payout")
	}
	if !result.Success {
		return utils.FailureResponse(c, StatusForResult(result.Code), string(result.Code), result.Message, result)
	}
	return utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// RunPayouts sweeps every payout that is due
func (h *PaymentHandler) RunPayouts(c echo.Context) error {
	setTransactionName(c, "Payments.RunPayouts")

	summary, err := h.paymentUC.ProcessScheduledPayouts(c.Request().Context())
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to run payouts")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payout run finished", summary)
}

// GetPayoutStatus asks the provider where a payout stands
func (h *PaymentHandler) GetPayoutStatus(c echo.Context) error {
	setTransactionName(c, "Payments.GetPayoutStatus")

	payoutID, err := uuid.Parse(c.Param("payoutID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payout ID")
	}

	status, err := h.paymentUC.GetPayoutStatus(c.Request().Context(), payoutID)
	if err != nil {
		return lookupError(c, err, "Failed to get payout status")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payout status", status)
}

// HandleWebhook receives provider callbacks. Duplicates are acknowledged so
// the provider stops retrying; any other failure asks for a redelivery.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	setTransactionName(c, "Payments.Webhook")

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return utils.BadRequestResponse(c, "Failed to read webhook body")
	}

	headers := make(map[string]string, len(c.Request().Header))
	for k := range c.Request().Header {
		headers[k] = c.Request().Header.Get(k)
	}

	err = h.paymentUC.HandleWebhook(c.Request().Context(), &models.WebhookRequest{Headers: headers, Body: body})
	if errors.Is(err, models.ErrInvalidWebhook) {
		return utils.BadRequestResponse(c, "Invalid webhook")
	}
	if err != nil {
		noticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to process webhook")
	}
	return c.NoContent(http.StatusOK)
}

// rentalCaller reads the rental id and the authenticated user. On failure it
// has already written the response.
func (h *PaymentHandler) rentalCaller(c echo.Context) (uuid.UUID, uuid.UUID, bool) {
	rentalID, err := uuid.Parse(c.Param("rentalID"))
	if err != nil {
		_ = utils.BadRequestResponse(c, "Invalid rental ID")
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = utils.UnauthorizedResponse(c, "")
		return uuid.Nil, uuid.Nil, false
	}
	return rentalID, userID, true
}

// StatusForResult maps a settlement result code to an HTTP status
func StatusForResult(code models.ResultCode) int {
	switch code {
	case models.ResultCodeOK:
		return http.StatusOK
	case models.ResultCodeNotFound:
		return http.StatusNotFound
	case models.ResultCodeForbidden:
		return http.StatusForbidden
	case models.ResultCodeAlreadyInitiated, models.ResultCodeInvalidState,
		models.ResultCodeAlreadyRefunded, models.ResultCodeAlreadyPaidOut:
		return http.StatusConflict
	case models.ResultCodeUnderReview, models.ResultCodePayoutProcessing, models.ResultCodeRefundPending:
		return http.StatusAccepted
	case models.ResultCodeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	return nil
}

func lookupError(c echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return utils.NotFoundResponse(c, "")
	case errors.Is(err, models.ErrForbidden):
		return utils.ForbiddenResponse(c, "")
	}
	noticeError(c, err)
	logger.ErrorCtx(c.Request().Context(), message, logger.Err(err))
	return utils.InternalServerErrorResponse(c, message)
}

func callerService(c echo.Context) string {
	s, _ := c.Get("service").(string)
	return s
}

func setTransactionName(c echo.Context, name string) {
	if txn := nrpkg.FromContext(c.Request().Context()); txn != nil {
		txn.SetName(name)
	}
}

func noticeError(c echo.Context, err error) {
	if txn := nrpkg.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(err)
	}
}
