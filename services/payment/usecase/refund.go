package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
	"github.com/shopspring/decimal"
)

const depositRefundReason = "security deposit refund"

// RefundRental returns part or all of the captured rental payment to the
// renter. Refunds accumulate on the original payment up to its amount. A
// refund still awaiting the provider is settled before a new one is sent.
func (uc *paymentUC) RefundRental(ctx context.Context, rentalID uuid.UUID, amount decimal.Decimal, reason string) (*models.RefundResult, error) {
	amount = models.RoundAmount(amount)
	if !amount.IsPositive() {
		recordOutcome("refund", models.ResultCodeInvalidAmount)
		return models.RefundFailure(models.ResultCodeInvalidAmount, "Refund amount must be greater than zero"), nil
	}

	fx := &sideEffects{}
	var result *models.RefundResult

	err := uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		txn, original, failure, err := uc.loadRefundTarget(ctx, tx, rentalID)
		if err != nil || failure != nil {
			result = failure
			return err
		}
		settled, pending, err := uc.settlePendingRefunds(ctx, tx, txn, original, fx)
		if err != nil || pending != nil {
			result = refundPending(pending)
			return err
		}
		// a retry of the refund that was awaiting the provider gets its result
		for _, refund := range settled {
			if refund.Type == models.PaymentTypeRefund && refund.Amount.Equal(amount) {
				result = refundOutcome(refund, original)
				return nil
			}
		}
		if txn.Status != models.TransactionStatusPaymentCompleted && txn.Status != models.TransactionStatusRefunded {
			result = models.RefundFailure(models.ResultCodeInvalidState,
				fmt.Sprintf("Rental payment cannot be refunded in status %s", txn.Status))
			return nil
		}
		if !original.Status.IsRefundable() || !original.RefundableAmount().IsPositive() {
			result = models.RefundFailure(models.ResultCodeAlreadyRefunded, "Payment has already been fully refunded")
			return nil
		}
		if amount.GreaterThan(original.RefundableAmount()) {
			result = models.RefundFailure(models.ResultCodeRefundExceedsBalance,
				fmt.Sprintf("Refund amount exceeds the refundable balance of %s", models.FormatAmount(original.RefundableAmount())))
			return nil
		}

		// the ledger position and amount pin the key, so a retry after a
		// rollback replays the provider's answer instead of refunding twice
		key := fmt.Sprintf("refund-%s-%s-%s", original.ID,
			models.FormatAmount(original.RefundedAmount), models.FormatAmount(amount))
		refund, err := uc.refund(ctx, tx, txn, original, models.PaymentTypeRefund, amount, reason, key)
		if err != nil {
			return err
		}
		switch refund.Status {
		case models.PaymentStatusPending:
			result = refundPending(refund)
			return nil
		case models.PaymentStatusFailed:
			result = models.RefundFailure(models.ResultCodeProviderError, "Refund could not be processed by the payment provider")
			result.RefundPaymentID = refund.ID
			return nil
		}

		if err := uc.refundSettled(ctx, tx, txn, refund, fx); err != nil {
			return err
		}
		result = refundOutcome(refund, original)
		return nil
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to refund rental",
			logger.UUID("rental_id", rentalID),
			logger.Err(err))
		return nil, err
	}

	recordOutcome("refund", result.Code)
	uc.flush(ctx, fx)
	return result, nil
}

// RefundSecurityDeposit returns exactly the transaction's deposit as a
// partial refund of the combined rental payment. It runs at most once and
// leaves the transaction status untouched.
func (uc *paymentUC) RefundSecurityDeposit(ctx context.Context, rentalID uuid.UUID) (*models.RefundResult, error) {
	fx := &sideEffects{}
	var result *models.RefundResult

	err := uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		txn, original, failure, err := uc.loadRefundTarget(ctx, tx, rentalID)
		if err != nil || failure != nil {
			result = failure
			return err
		}
		settled, pending, err := uc.settlePendingRefunds(ctx, tx, txn, original, fx)
		if err != nil || pending != nil {
			result = refundPending(pending)
			return err
		}
		for _, refund := range settled {
			if refund.Type == models.PaymentTypeDepositRefund {
				result = refundOutcome(refund, original)
				return nil
			}
		}
		if !txn.Status.IsCaptured() {
			result = models.RefundFailure(models.ResultCodeInvalidState,
				fmt.Sprintf("Deposit cannot be refunded in status %s", txn.Status))
			return nil
		}
		if txn.DepositRefundedAt != nil {
			result = models.RefundFailure(models.ResultCodeAlreadyRefunded, "Security deposit has already been refunded")
			return nil
		}
		deposit := txn.SecurityDeposit
		if !deposit.IsPositive() {
			result = models.RefundFailure(models.ResultCodeNoDeposit, "This rental has no security deposit")
			return nil
		}
		if !original.Status.IsRefundable() || !original.RefundableAmount().IsPositive() {
			result = models.RefundFailure(models.ResultCodeAlreadyRefunded, "Payment has already been fully refunded")
			return nil
		}
		if deposit.GreaterThan(original.RefundableAmount()) {
			result = models.RefundFailure(models.ResultCodeRefundExceedsBalance, "Deposit exceeds the refundable balance of the payment")
			return nil
		}

		refund, err := uc.refund(ctx, tx, txn, original, models.PaymentTypeDepositRefund, deposit, depositRefundReason, "deposit-"+txn.ID.String())
		if err != nil {
			return err
		}
		switch refund.Status {
		case models.PaymentStatusPending:
			result = refundPending(refund)
			return nil
		case models.PaymentStatusFailed:
			result = models.RefundFailure(models.ResultCodeProviderError, "Deposit refund could not be processed by the payment provider")
			result.RefundPaymentID = refund.ID
			return nil
		}

		if err := uc.refundSettled(ctx, tx, txn, refund, fx); err != nil {
			return err
		}
		result = refundOutcome(refund, original)
		return nil
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to refund security deposit",
			logger.UUID("rental_id", rentalID),
			logger.Err(err))
		return nil, err
	}

	recordOutcome("deposit_refund", result.Code)
	uc.flush(ctx, fx)
	return result, nil
}

// loadRefundTarget locks the active transaction and its rental payment. A
// non-nil failure means the caller should report it and stop.
func (uc *paymentUC) loadRefundTarget(ctx context.Context, tx payment.PaymentTxRepo, rentalID uuid.UUID) (*models.Transaction, *models.Payment, *models.RefundResult, error) {
	txn, err := tx.GetActiveTransactionByRentalForUpdate(ctx, rentalID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, models.RefundFailure(models.ResultCodeNotFound, "No payment found for this rental"), nil
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	original, err := tx.GetRentalPaymentForUpdate(ctx, txn.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, models.RefundFailure(models.ResultCodeNotFound, "No captured payment found for this rental"), nil
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load rental payment: %w", err)
	}
	return txn, original, nil, nil
}

// refund calls the provider and records the outcome as a payment of kind.
// A decline is recorded as Failed and an unanswered call as Pending under
// its idempotency key; the original payment only changes when the provider
// accepted the refund.
func (uc *paymentUC) refund(ctx context.Context, tx payment.PaymentTxRepo, txn *models.Transaction, original *models.Payment, kind models.PaymentType, amount decimal.Decimal, reason, key string) (*models.Payment, error) {
	now := uc.now()
	refund := &models.Payment{
		ID:             uuid.New(),
		TransactionID:  txn.ID,
		RentalID:       txn.RentalID,
		PayerID:        models.PlatformAccountID,
		PayeeID:        &txn.RenterID,
		Type:           kind,
		Provider:       original.Provider,
		Amount:         amount,
		Currency:       original.Currency,
		RefundedAmount: decimal.Zero,
		RefundReason:   reason,
		IdempotencyKey: key,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := uc.sendRefund(ctx, original, refund)
	if err != nil && !isProviderTimeout(err) {
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}

	switch {
	case err != nil:
		logger.WarnCtx(ctx, "Provider refund unanswered",
			logger.UUID("payment_id", original.ID),
			logger.Amount("amount", amount),
			logger.String("idempotency_key", key))
		refund.Status = models.PaymentStatusPending
	case !res.Success:
		markRefundFailed(ctx, refund, res.ErrorMessage, now)
	default:
		if err := uc.applyRefund(ctx, tx, original, refund, res.RefundID, now); err != nil {
			return nil, err
		}
	}

	if err := tx.CreatePayment(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to record refund: %w", err)
	}
	return refund, nil
}

// settlePendingRefunds resends every refund left Pending by an unanswered
// call, under its stored key. It returns the refunds that completed and the
// first one the provider still has not answered.
func (uc *paymentUC) settlePendingRefunds(ctx context.Context, tx payment.PaymentTxRepo, txn *models.Transaction, original *models.Payment, fx *sideEffects) ([]*models.Payment, *models.Payment, error) {
	pending, err := tx.ListPendingRefundsForUpdate(ctx, txn.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load pending refunds: %w", err)
	}

	var settled []*models.Payment
	for _, refund := range pending {
		res, err := uc.sendRefund(ctx, original, refund)
		if err != nil {
			logger.WarnCtx(ctx, "Pending refund still unanswered",
				logger.UUID("refund_payment_id", refund.ID),
				logger.Err(err))
			return settled, refund, nil
		}

		now := uc.now()
		if !res.Success {
			markRefundFailed(ctx, refund, res.ErrorMessage, now)
		} else if err := uc.applyRefund(ctx, tx, original, refund, res.RefundID, now); err != nil {
			return nil, nil, err
		}
		if err := tx.UpdatePayment(ctx, refund); err != nil {
			return nil, nil, fmt.Errorf("failed to update pending refund: %w", err)
		}
		if refund.Status != models.PaymentStatusCompleted {
			continue
		}
		if err := uc.refundSettled(ctx, tx, txn, refund, fx); err != nil {
			return nil, nil, err
		}
		settled = append(settled, refund)
	}
	return settled, nil, nil
}

// applyRefund books an accepted refund against the original payment
func (uc *paymentUC) applyRefund(ctx context.Context, tx payment.PaymentTxRepo, original, refund *models.Payment, externalID string, now time.Time) error {
	if err := original.ApplyRefund(refund.Amount, refund.RefundReason, now); err != nil {
		return err
	}
	original.UpdatedAt = now
	if err := tx.UpdatePayment(ctx, original); err != nil {
		return fmt.Errorf("failed to update refunded payment: %w", err)
	}

	refund.Status = models.PaymentStatusCompleted
	refund.ExternalPaymentID = externalID
	refund.FailureReason = ""
	refund.ProcessedAt = &now
	refund.UpdatedAt = now
	return nil
}

func markRefundFailed(ctx context.Context, refund *models.Payment, reason string, now time.Time) {
	logger.WarnCtx(ctx, "Provider refund failed",
		logger.UUID("refund_payment_id", refund.ID),
		logger.Amount("amount", refund.Amount),
		logger.String("reason", reason))
	refund.Status = models.PaymentStatusFailed
	refund.FailureReason = reason
	refund.FailedAt = &now
	refund.UpdatedAt = now
}

// refundSettled moves the transaction along for a completed refund and
// queues the renter's notice.
func (uc *paymentUC) refundSettled(ctx context.Context, tx payment.PaymentTxRepo, txn *models.Transaction, refund *models.Payment, fx *sideEffects) error {
	now := uc.now()
	var (
		notice    models.NotificationType
		eventType models.SettlementEventType
	)
	if refund.Type == models.PaymentTypeDepositRefund {
		txn.DepositRefundedAt = &now
		notice, eventType = models.NotificationDepositRefunded, models.EventDepositRefunded
	} else {
		// a paid out transaction keeps its status; the refund is still booked
		if txn.Status == models.TransactionStatusPaymentCompleted {
			if err := txn.TransitionTo(models.TransactionStatusRefunded); err != nil {
				return err
			}
		}
		notice, eventType = models.NotificationRefundIssued, models.EventRefundCompleted
	}
	txn.UpdatedAt = now
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	fx.notify(models.NewNotification(notice, txn.RenterID, txn.RentalID, refund.Amount, txn.Currency))
	event := models.NewSettlementEvent(eventType, txn, refund.Amount)
	event.PaymentID = &refund.ID
	fx.publish(event)
	return nil
}

func (uc *paymentUC) sendRefund(ctx context.Context, original, refund *models.Payment) (*models.ProviderRefundResult, error) {
	return uc.refundPayment(ctx, &models.RefundRequest{
		CaptureID:      original.ExternalPaymentID,
		Amount:         refund.Amount,
		Currency:       refund.Currency,
		Reason:         refund.RefundReason,
		IdempotencyKey: refund.IdempotencyKey,
	})
}

func (uc *paymentUC) refundPayment(ctx context.Context, req *models.RefundRequest) (*models.ProviderRefundResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.RefundPayment(pctx, req)
	observeProvider("refund", start, res != nil && res.Success, err)
	if err != nil {
		return &models.ProviderRefundResult{ErrorMessage: err.Error()}, err
	}
	return res, nil
}

func refundOutcome(refund, original *models.Payment) *models.RefundResult {
	return &models.RefundResult{
		Success:          true,
		Code:             models.ResultCodeOK,
		Message:          "Refund issued",
		RefundPaymentID:  refund.ID,
		ExternalRefundID: refund.ExternalPaymentID,
		RefundedAmount:   refund.Amount,
		PaymentStatus:    original.Status,
	}
}

func refundPending(refund *models.Payment) *models.RefundResult {
	if refund == nil {
		return nil
	}
	return &models.RefundResult{
		Success:         false,
		Code:            models.ResultCodeRefundPending,
		Message:         "Refund is awaiting confirmation from the payment provider",
		RefundPaymentID: refund.ID,
		RefundedAmount:  refund.Amount,
		PaymentStatus:   refund.Status,
	}
}
