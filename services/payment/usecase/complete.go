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

// CompleteRentalPayment captures an approved provider payment. The payment
// must still be pending, its amount must match the ledger both locally and
// on the provider side, and it must clear the fraud screen.
func (uc *paymentUC) CompleteRentalPayment(ctx context.Context, externalPaymentID, payerID string) (*models.PaymentResult, error) {
	fx := &sideEffects{}
	var result *models.PaymentResult

	err := uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		p, err := tx.GetPaymentByExternalIDForUpdate(ctx, externalPaymentID)
		if errors.Is(err, models.ErrNotFound) || (err == nil && p.Type != models.PaymentTypeRentalPayment) {
			result = models.PaymentFailure(models.ResultCodeNotFound, "Payment not found")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load payment: %w", err)
		}
		if p.Status != models.PaymentStatusPending {
			result = models.PaymentFailure(models.ResultCodeInvalidState,
				fmt.Sprintf("Payment is not pending (status %s)", p.Status))
			result.PaymentID = p.ID
			result.Status = p.Status
			return nil
		}

		txn, err := tx.GetTransactionForUpdate(ctx, p.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}
		if txn.Status != models.TransactionStatusPaymentProcessing {
			result = models.PaymentFailure(models.ResultCodeInvalidState, "Rental payment is no longer awaiting capture")
			result.PaymentID = p.ID
			return nil
		}
		if payerID != "" {
			p.ExternalPayerID = payerID
		}

		if !models.AmountsMatch(p.Amount, txn.TotalPayerAmount) {
			logger.WarnCtx(ctx, "Payment amount does not match ledger",
				logger.UUID("payment_id", p.ID),
				logger.Amount("payment_amount", p.Amount),
				logger.Amount("expected_amount", txn.TotalPayerAmount))
			if err := uc.failPayment(ctx, tx, p, txn, fx, "amount mismatch with ledger"); err != nil {
				return err
			}
			result = paymentOutcome(p, txn, models.ResultCodeAmountMismatch, "Payment amount does not match the rental total")
			return nil
		}

		status, err := uc.providerPaymentStatus(ctx, p)
		if err != nil && !isProviderTimeout(err) {
			return fmt.Errorf("failed to verify payment with provider: %w", err)
		}
		if err != nil || !status.Success {
			if err := uc.failPayment(ctx, tx, p, txn, fx, "provider verification failed: "+status.ErrorMessage); err != nil {
				return err
			}
			result = paymentOutcome(p, txn, models.ResultCodeVerificationFailed, "Payment could not be verified with the payment provider")
			return nil
		}
		if status.Status != models.ProviderStatusApproved && status.Status != models.ProviderStatusCompleted {
			// not approved by the payer yet; leave it pending
			result = models.PaymentFailure(models.ResultCodeVerificationFailed, "Payment has not been approved by the payer yet")
			result.PaymentID = p.ID
			result.Status = p.Status
			return nil
		}
		if !models.AmountsMatch(status.Amount, txn.TotalPayerAmount) {
			logger.WarnCtx(ctx, "Provider amount does not match ledger",
				logger.UUID("payment_id", p.ID),
				logger.Amount("provider_amount", status.Amount),
				logger.Amount("expected_amount", txn.TotalPayerAmount))
			if err := uc.failPayment(ctx, tx, p, txn, fx, "amount mismatch with provider"); err != nil {
				return err
			}
			result = paymentOutcome(p, txn, models.ResultCodeAmountMismatch, "Payment amount does not match the rental total")
			return nil
		}

		result, err = uc.screenAndCapture(ctx, tx, p, txn, fx)
		return err
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to complete rental payment",
			logger.String("external_payment_id", externalPaymentID),
			logger.Err(err))
		return nil, err
	}

	recordOutcome("complete", result.Code)
	uc.flush(ctx, fx)
	return result, nil
}

// screenAndCapture runs the fraud screen and captures on approval. An
// unavailable screen holds the payment for review; it never approves.
func (uc *paymentUC) screenAndCapture(ctx context.Context, tx payment.PaymentTxRepo, p *models.Payment, txn *models.Transaction, fx *sideEffects) (*models.PaymentResult, error) {
	check, err := uc.fraud.CheckPayment(ctx, p)
	if err != nil {
		logger.ErrorCtx(ctx, "Fraud screen unavailable, holding payment for review",
			logger.UUID("payment_id", p.ID),
			logger.Err(err))
		check = &models.FraudCheckResult{
			RiskLevel:            models.RiskLevelHigh,
			RequiresManualReview: true,
			BlockingReason:       "fraud screen unavailable",
		}
	}

	switch {
	case check.IsBlocked():
		logger.WarnCtx(ctx, "Payment blocked by fraud screen",
			logger.UUID("payment_id", p.ID),
			logger.Int("risk_score", check.RiskScore),
			logger.String("reason", check.BlockingReason),
			logger.Strings("rules", check.TriggeredRules))
		if err := uc.failPayment(ctx, tx, p, txn, fx, "blocked by fraud screen"); err != nil {
			return nil, err
		}
		return paymentOutcome(p, txn, models.ResultCodeFraudBlocked, models.MessageFraudBlocked), nil

	case check.RequiresManualReview:
		logger.InfoCtx(ctx, "Payment held for manual review",
			logger.UUID("payment_id", p.ID),
			logger.Int("risk_score", check.RiskScore),
			logger.String("reason", check.BlockingReason))
		if err := uc.holdForReview(ctx, tx, p, txn, fx); err != nil {
			return nil, err
		}
		return paymentOutcome(p, txn, models.ResultCodeUnderReview, models.MessageUnderReview), nil
	}

	uc.trackVelocity(ctx, p)
	return uc.capture(ctx, tx, p, txn, fx)
}

// trackVelocity counts an approved payment towards the payer's fraud windows
func (uc *paymentUC) trackVelocity(ctx context.Context, p *models.Payment) {
	if err := uc.fraud.UpdateVelocityTracking(ctx, p.PayerID, p.Amount); err != nil {
		logger.WarnCtx(ctx, "Failed to update velocity tracking",
			logger.UUID("payer_id", p.PayerID),
			logger.Err(err))
	}
}

// capture takes the money and moves the ledger to PaymentCompleted
func (uc *paymentUC) capture(ctx context.Context, tx payment.PaymentTxRepo, p *models.Payment, txn *models.Transaction, fx *sideEffects) (*models.PaymentResult, error) {
	res, err := uc.capturePayment(ctx, p)
	if err != nil && !isProviderTimeout(err) {
		return nil, fmt.Errorf("failed to capture payment: %w", err)
	}
	if err != nil || !res.Success {
		logger.WarnCtx(ctx, "Payment capture failed",
			logger.UUID("payment_id", p.ID),
			logger.String("reason", res.ErrorMessage))
		if err := uc.failPayment(ctx, tx, p, txn, fx, "capture failed: "+res.ErrorMessage); err != nil {
			return nil, err
		}
		return paymentOutcome(p, txn, models.ResultCodeProviderError, "Payment capture failed"), nil
	}

	now := uc.now()
	if err := p.TransitionTo(models.PaymentStatusCompleted); err != nil {
		return nil, err
	}
	p.ExternalPaymentID = res.CaptureID
	if res.PayerID != "" {
		p.ExternalPayerID = res.PayerID
	}
	p.ProcessedAt = &now
	p.UpdatedAt = now
	if err := tx.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	owner, err := tx.GetOrCreatePaymentSettings(ctx, txn.OwnerID, uc.cfg.Payment.MinimumPayoutAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner payment settings: %w", err)
	}

	if err := txn.TransitionTo(models.TransactionStatusPaymentCompleted); err != nil {
		return nil, err
	}
	scheduled := uc.schedulePayout(now, owner)
	txn.PaymentCompletedAt = &now
	txn.PayoutScheduledAt = &scheduled
	txn.UpdatedAt = now
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := tx.UpdateRentalStatus(ctx, txn.RentalID, models.RentalStatusApproved); err != nil {
		return nil, fmt.Errorf("failed to approve rental: %w", err)
	}

	if txn.CommissionAmount.IsPositive() {
		platform := models.PlatformAccountID
		commission := &models.Payment{
			ID:             uuid.New(),
			TransactionID:  txn.ID,
			RentalID:       txn.RentalID,
			PayerID:        txn.OwnerID,
			PayeeID:        &platform,
			Type:           models.PaymentTypePlatformCommission,
			Status:         models.PaymentStatusCompleted,
			Provider:       p.Provider,
			Amount:         txn.CommissionAmount,
			Currency:       txn.Currency,
			RefundedAmount: decimal.Zero,
			ProcessedAt:    &now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.CreatePayment(ctx, commission); err != nil {
			return nil, fmt.Errorf("failed to record platform commission: %w", err)
		}
	}

	fx.notify(models.NewNotification(models.NotificationPaymentConfirmed, txn.RenterID, txn.RentalID, txn.TotalPayerAmount, txn.Currency))
	if owner.NotifyOnPaymentReceived {
		fx.notify(models.NewNotification(models.NotificationPaymentReceived, txn.OwnerID, txn.RentalID, txn.OwnerPayoutAmount, txn.Currency))
	}
	event := models.NewSettlementEvent(models.EventPaymentCompleted, txn, p.Amount)
	event.PaymentID = &p.ID
	fx.publish(event)

	logger.InfoCtx(ctx, "Rental payment captured",
		logger.UUID("payment_id", p.ID),
		logger.UUID("transaction_id", txn.ID),
		logger.Time("payout_scheduled_at", scheduled))

	return &models.PaymentResult{
		Success:           true,
		Code:              models.ResultCodeOK,
		Message:           "Payment completed",
		TransactionID:     txn.ID,
		PaymentID:         p.ID,
		ExternalPaymentID: p.ExternalPaymentID,
		Status:            p.Status,
	}, nil
}

// failPayment fails the payment and cancels its transaction
func (uc *paymentUC) failPayment(ctx context.Context, tx payment.PaymentTxRepo, p *models.Payment, txn *models.Transaction, fx *sideEffects, reason string) error {
	now := uc.now()
	if err := p.TransitionTo(models.PaymentStatusFailed); err != nil {
		return err
	}
	p.FailureReason = reason
	p.FailedAt = &now
	p.UpdatedAt = now
	if err := tx.UpdatePayment(ctx, p); err != nil {
		return fmt.Errorf("failed to fail payment: %w", err)
	}

	if err := txn.TransitionTo(models.TransactionStatusCancelled); err != nil {
		return err
	}
	txn.UpdatedAt = now
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}

	fx.notify(models.NewNotification(models.NotificationPaymentFailed, txn.RenterID, txn.RentalID, p.Amount, p.Currency))
	event := models.NewSettlementEvent(models.EventPaymentFailed, txn, p.Amount)
	event.PaymentID = &p.ID
	fx.publish(event)
	return nil
}

func (uc *paymentUC) holdForReview(ctx context.Context, tx payment.PaymentTxRepo, p *models.Payment, txn *models.Transaction, fx *sideEffects) error {
	now := uc.now()
	if err := p.TransitionTo(models.PaymentStatusUnderReview); err != nil {
		return err
	}
	p.UpdatedAt = now
	if err := tx.UpdatePayment(ctx, p); err != nil {
		return fmt.Errorf("failed to hold payment for review: %w", err)
	}

	if err := txn.TransitionTo(models.TransactionStatusUnderReview); err != nil {
		return err
	}
	txn.UpdatedAt = now
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to hold transaction for review: %w", err)
	}

	fx.notify(models.NewNotification(models.NotificationPaymentUnderReview, txn.RenterID, txn.RentalID, p.Amount, p.Currency))
	event := models.NewSettlementEvent(models.EventPaymentUnderReview, txn, p.Amount)
	event.PaymentID = &p.ID
	fx.publish(event)
	return nil
}

// ResolveManualReview settles a payment the fraud screen held back. Approval
// captures it; rejection fails the payment and cancels the transaction.
func (uc *paymentUC) ResolveManualReview(ctx context.Context, paymentID uuid.UUID, approve bool, note string) (*models.PaymentResult, error) {
	fx := &sideEffects{}
	var result *models.PaymentResult

	err := uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		p, err := tx.GetPaymentForUpdate(ctx, paymentID)
		if errors.Is(err, models.ErrNotFound) {
			result = models.PaymentFailure(models.ResultCodeNotFound, "Payment not found")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load payment: %w", err)
		}
		if p.Status != models.PaymentStatusUnderReview {
			result = models.PaymentFailure(models.ResultCodeInvalidState,
				fmt.Sprintf("Payment is not under review (status %s)", p.Status))
			result.PaymentID = p.ID
			result.Status = p.Status
			return nil
		}

		txn, err := tx.GetTransactionForUpdate(ctx, p.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}

		logger.InfoCtx(ctx, "Resolving manual review",
			logger.UUID("payment_id", p.ID),
			logger.Bool("approve", approve),
			logger.String("note", note))

		if !approve {
			if err := uc.failPayment(ctx, tx, p, txn, fx, "rejected in manual review"); err != nil {
				return err
			}
			result = paymentOutcome(p, txn, models.ResultCodeOK, "Payment rejected after review")
			result.Success = true
			return nil
		}

		uc.trackVelocity(ctx, p)
		result, err = uc.capture(ctx, tx, p, txn, fx)
		return err
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to resolve manual review",
			logger.UUID("payment_id", paymentID),
			logger.Err(err))
		return nil, err
	}

	recordOutcome("review", result.Code)
	uc.flush(ctx, fx)
	return result, nil
}

func (uc *paymentUC) providerPaymentStatus(ctx context.Context, p *models.Payment) (*models.PaymentStatusResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.GetPaymentStatus(pctx, externalRef(p))
	observeProvider("payment_status", start, res != nil && res.Success, err)
	if err != nil {
		return &models.PaymentStatusResult{ErrorMessage: err.Error()}, err
	}
	return res, nil
}

func (uc *paymentUC) capturePayment(ctx context.Context, p *models.Payment) (*models.CaptureResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.CapturePayment(pctx, &models.CaptureRequest{
		PaymentID:      externalRef(p),
		IdempotencyKey: "capture-" + p.ID.String(),
	})
	observeProvider("capture", start, res != nil && res.Success, err)
	if err != nil {
		return &models.CaptureResult{ErrorMessage: err.Error()}, err
	}
	return res, nil
}

func paymentOutcome(p *models.Payment, txn *models.Transaction, code models.ResultCode, message string) *models.PaymentResult {
	return &models.PaymentResult{
		Success:       false,
		Code:          code,
		Message:       message,
		TransactionID: txn.ID,
		PaymentID:     p.ID,
		Status:        p.Status,
	}
}
