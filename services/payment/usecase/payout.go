package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/metrics"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
	"github.com/shopspring/decimal"
)

const defaultPayoutBatchSize = 100

// CreateOwnerPayout disburses a captured transaction's net amount to the
// owner. A transaction that is already paid out is rejected, which makes
// repeated scheduler runs harmless.
//
// The payout row id is the provider's sender batch id. A payout whose answer
// was lost stays Processing and is resent with the same id on the next run,
// so the provider replays the first disbursement instead of paying again.
func (uc *paymentUC) CreateOwnerPayout(ctx context.Context, transactionID uuid.UUID) (*models.PayoutResult, error) {
	fx := &sideEffects{}
	var result *models.PayoutResult

	err := uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		txn, err := tx.GetTransactionForUpdate(ctx, transactionID)
		if errors.Is(err, models.ErrNotFound) {
			result = models.PayoutFailure(models.ResultCodeNotFound, "Transaction not found")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}
		if txn.IsPaidOut() {
			result = models.PayoutFailure(models.ResultCodeAlreadyPaidOut, "Transaction has already been paid out")
			return nil
		}
		if txn.Status != models.TransactionStatusPaymentCompleted {
			result = models.PayoutFailure(models.ResultCodeInvalidState,
				fmt.Sprintf("Transaction cannot be paid out in status %s", txn.Status))
			return nil
		}

		owner, err := tx.GetOrCreatePaymentSettings(ctx, txn.OwnerID, uc.cfg.Payment.MinimumPayoutAmount)
		if err != nil {
			return fmt.Errorf("failed to load owner payment settings: %w", err)
		}

		payout, err := tx.GetOpenPayoutForUpdate(ctx, txn.ID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to load open payout: %w", err)
		}

		var email string
		if payout != nil {
			email, err = uc.sealer.Open(payout.PayoutDestination)
			if err != nil {
				return fmt.Errorf("failed to decrypt payout destination: %w", err)
			}
			logger.InfoCtx(ctx, "Resending unconfirmed owner payout",
				logger.UUID("payout_id", payout.ID),
				logger.UUID("transaction_id", txn.ID))
		} else {
			refunds, err := tx.ListPendingRefundsForUpdate(ctx, txn.ID)
			if err != nil {
				return fmt.Errorf("failed to load pending refunds: %w", err)
			}
			if len(refunds) > 0 {
				result = models.PayoutFailure(models.ResultCodeRefundPending, "A refund for this rental is awaiting provider confirmation")
				return nil
			}

			var code models.ResultCode
			payout, code, err = uc.openPayout(ctx, tx, txn, owner)
			if err != nil {
				return err
			}
			if payout == nil {
				result = payoutRejection(code, owner, uc.cfg.Payment.MinimumPayoutAmount)
				return nil
			}
			email = owner.PayPalEmail
		}

		res, err := uc.createProviderPayout(ctx, &models.CreatePayoutRequest{
			SenderBatchID:  payout.ID.String(),
			RecipientEmail: email,
			Amount:         payout.NetAmount,
			Currency:       payout.Currency,
			Note:           fmt.Sprintf("Payout for rental %s", txn.RentalID),
		})
		switch {
		case err != nil:
			// the provider may have paid before the answer was lost
			result = uc.payoutPending(ctx, txn, payout, err.Error())
			return nil
		case res.Duplicate:
			result = uc.payoutPending(ctx, txn, payout, res.ErrorMessage)
			return nil
		case !res.Success:
			result, err = uc.failPayout(ctx, tx, txn, payout, owner, fx, res.ErrorMessage)
			return err
		}

		result, err = uc.completePayout(ctx, tx, txn, payout, owner, fx, res.PayoutID, res.BatchID)
		return err
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to create owner payout",
			logger.UUID("transaction_id", transactionID),
			logger.Err(err))
		return nil, err
	}

	recordOutcome("payout", result.Code)
	uc.flush(ctx, fx)
	return result, nil
}

// openPayout records a new Processing payout for txn. It returns a nil
// payout and the rejection code when the owner cannot be paid yet.
func (uc *paymentUC) openPayout(ctx context.Context, tx payment.PaymentTxRepo, txn *models.Transaction, owner *models.PaymentSettings) (*models.Payout, models.ResultCode, error) {
	if !owner.CanReceivePayouts() {
		return nil, models.ResultCodeNoPayoutEmail, nil
	}
	if txn.OwnerPayoutAmount.LessThan(minimumPayout(owner, uc.cfg.Payment.MinimumPayoutAmount)) {
		return nil, models.ResultCodeBelowMinimum, nil
	}

	destination, err := uc.sealer.Seal(owner.PayPalEmail)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encrypt payout destination: %w", err)
	}

	now := uc.now()
	payout := &models.Payout{
		ID:                uuid.New(),
		RecipientID:       txn.OwnerID,
		Status:            models.PayoutStatusProcessing,
		Provider:          uc.provider.Name(),
		Amount:            txn.RentalAmount,
		Currency:          txn.Currency,
		PlatformFee:       txn.CommissionAmount,
		NetAmount:         txn.OwnerPayoutAmount,
		PayoutMethod:      models.PayoutMethodPayPal,
		PayoutDestination: destination,
		ScheduledAt:       txn.PayoutScheduledAt,
		ProcessedAt:       &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := tx.CreatePayout(ctx, payout); err != nil {
		return nil, "", fmt.Errorf("failed to create payout: %w", err)
	}
	if err := tx.LinkPayoutTransaction(ctx, payout.ID, txn.ID); err != nil {
		return nil, "", fmt.Errorf("failed to link payout: %w", err)
	}
	return payout, models.ResultCodeOK, nil
}

func minimumPayout(owner *models.PaymentSettings, fallback decimal.Decimal) decimal.Decimal {
	if owner.MinimumPayoutAmount.IsZero() {
		return fallback
	}
	return owner.MinimumPayoutAmount
}

func payoutRejection(code models.ResultCode, owner *models.PaymentSettings, fallback decimal.Decimal) *models.PayoutResult {
	if code == models.ResultCodeNoPayoutEmail {
		return models.PayoutFailure(code, "Owner has no payout email configured")
	}
	return models.PayoutFailure(code,
		fmt.Sprintf("Payout amount is below the minimum of %s", models.FormatAmount(minimumPayout(owner, fallback))))
}

// payoutPending leaves the payout Processing. The next run resends it under
// the same batch id, and the provider's payout webhook settles it.
func (uc *paymentUC) payoutPending(ctx context.Context, txn *models.Transaction, payout *models.Payout, reason string) *models.PayoutResult {
	logger.WarnCtx(ctx, "Owner payout is awaiting provider confirmation",
		logger.UUID("payout_id", payout.ID),
		logger.UUID("transaction_id", txn.ID),
		logger.String("reason", reason))

	return &models.PayoutResult{
		Success:   false,
		Code:      models.ResultCodePayoutProcessing,
		Message:   "Payout sent to the provider and awaiting confirmation",
		PayoutID:  payout.ID,
		NetAmount: payout.NetAmount,
		Status:    payout.Status,
	}
}

// completePayout settles a Processing payout the provider has accepted and
// records the owner's side of the ledger.
func (uc *paymentUC) completePayout(ctx context.Context, tx payment.PaymentTxRepo, txn *models.Transaction, payout *models.Payout, owner *models.PaymentSettings, fx *sideEffects, externalPayoutID, batchID string) (*models.PayoutResult, error) {
	completed := uc.now()
	if err := payout.TransitionTo(models.PayoutStatusCompleted); err != nil {
		return nil, err
	}
	if externalPayoutID != "" {
		payout.ExternalPayoutID = externalPayoutID
	}
	if batchID != "" {
		payout.ExternalBatchID = batchID
	}
	payout.CompletedAt = &completed
	payout.UpdatedAt = completed
	if err := tx.UpdatePayout(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}

	if err := txn.TransitionTo(models.TransactionStatusPayoutCompleted); err != nil {
		return nil, err
	}
	txn.PayoutCompletedAt = &completed
	txn.UpdatedAt = completed
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	ownerPayment := &models.Payment{
		ID:                uuid.New(),
		TransactionID:     txn.ID,
		RentalID:          txn.RentalID,
		PayerID:           models.PlatformAccountID,
		PayeeID:           &txn.OwnerID,
		Type:              models.PaymentTypeOwnerPayout,
		Status:            models.PaymentStatusCompleted,
		Provider:          payout.Provider,
		Amount:            payout.NetAmount,
		Currency:          payout.Currency,
		ExternalPaymentID: payout.ExternalPayoutID,
		RefundedAmount:    decimal.Zero,
		ProcessedAt:       &completed,
		CreatedAt:         completed,
		UpdatedAt:         completed,
	}
	if err := tx.CreatePayment(ctx, ownerPayment); err != nil {
		return nil, fmt.Errorf("failed to record owner payout payment: %w", err)
	}

	if owner.NotifyOnPayoutSent {
		fx.notify(models.NewNotification(models.NotificationPayoutSent, txn.OwnerID, txn.RentalID, payout.NetAmount, payout.Currency))
	}
	event := models.NewSettlementEvent(models.EventPayoutCompleted, txn, payout.NetAmount)
	event.PayoutID = &payout.ID
	fx.publish(event)

	return &models.PayoutResult{
		Success:          true,
		Code:             models.ResultCodeOK,
		Message:          "Payout sent",
		PayoutID:         payout.ID,
		ExternalPayoutID: payout.ExternalPayoutID,
		NetAmount:        payout.NetAmount,
		Status:           payout.Status,
	}, nil
}

const (
	payoutRetryBase = 6 * time.Hour
	payoutRetryMax  = 7 * 24 * time.Hour
)

// payoutBackoff doubles the wait after each declined attempt
func payoutBackoff(attempts int) time.Duration {
	wait := payoutRetryBase
	for i := 1; i < attempts; i++ {
		wait *= 2
		if wait >= payoutRetryMax {
			return payoutRetryMax
		}
	}
	return wait
}

// failPayout marks the payout failed. The transaction stays PaymentCompleted
// and its next attempt moves back by payoutBackoff. The owner hears about
// the first decline only.
func (uc *paymentUC) failPayout(ctx context.Context, tx payment.PaymentTxRepo, txn *models.Transaction, payout *models.Payout, owner *models.PaymentSettings, fx *sideEffects, reason string) (*models.PayoutResult, error) {
	now := uc.now()
	if err := payout.TransitionTo(models.PayoutStatusFailed); err != nil {
		return nil, err
	}
	payout.FailureReason = reason
	payout.FailedAt = &now
	payout.UpdatedAt = now
	if err := tx.UpdatePayout(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}

	txn.PayoutAttempts++
	next := now.Add(payoutBackoff(txn.PayoutAttempts))
	txn.PayoutScheduledAt = &next
	txn.UpdatedAt = now
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	logger.WarnCtx(ctx, "Owner payout failed",
		logger.UUID("payout_id", payout.ID),
		logger.UUID("transaction_id", txn.ID),
		logger.Int("attempts", txn.PayoutAttempts),
		logger.Time("next_attempt_at", next),
		logger.String("reason", reason))

	if owner.NotifyOnPayoutFailed && txn.PayoutAttempts == 1 {
		n := models.NewNotification(models.NotificationPayoutFailed, txn.OwnerID, txn.RentalID, payout.NetAmount, payout.Currency)
		n.Detail = "Please check your payout settings. We will retry automatically."
		fx.notify(n)
	}
	event := models.NewSettlementEvent(models.EventPayoutFailed, txn, payout.NetAmount)
	event.PayoutID = &payout.ID
	fx.publish(event)

	return &models.PayoutResult{
		Success:   false,
		Code:      models.ResultCodeProviderError,
		Message:   "Payout could not be sent",
		PayoutID:  payout.ID,
		NetAmount: payout.NetAmount,
		Status:    payout.Status,
	}, nil
}

// ProcessScheduledPayouts pays out every transaction whose scheduled payout
// time has passed. Each transaction settles in its own database transaction
// so one failure does not hold back the rest.
func (uc *paymentUC) ProcessScheduledPayouts(ctx context.Context) (*models.PayoutRunSummary, error) {
	limit := uc.cfg.Scheduler.BatchSize
	if limit <= 0 {
		limit = defaultPayoutBatchSize
	}

	ids, err := uc.repo.ListDuePayoutTransactionIDs(ctx, uc.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due payouts: %w", err)
	}

	summary := &models.PayoutRunSummary{Eligible: len(ids)}
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		res, err := uc.CreateOwnerPayout(ctx, id)
		switch {
		case err != nil:
			summary.Errored++
			metrics.PayoutRuns.WithLabelValues("error").Inc()
		case res.Success:
			summary.Succeeded++
			metrics.PayoutRuns.WithLabelValues("success").Inc()
		case res.Code == models.ResultCodePayoutProcessing:
			summary.Pending++
			metrics.PayoutRuns.WithLabelValues("pending").Inc()
		default:
			summary.Rejected++
			metrics.PayoutRuns.WithLabelValues("rejected").Inc()
			logger.InfoCtx(ctx, "Scheduled payout not sent",
				logger.UUID("transaction_id", id),
				logger.String("code", string(res.Code)))
		}
	}

	logger.InfoCtx(ctx, "Scheduled payout run finished",
		logger.Int("eligible", summary.Eligible),
		logger.Int("succeeded", summary.Succeeded),
		logger.Int("rejected", summary.Rejected),
		logger.Int("pending", summary.Pending),
		logger.Int("errored", summary.Errored))
	return summary, nil
}

// reconcilePayout settles a Processing payout from the provider's payout
// callback. The sender batch id carried by the event is the payout row id.
func (uc *paymentUC) reconcilePayout(ctx context.Context, event *models.WebhookEvent) error {
	payoutID, err := uuid.Parse(event.SenderBatchID)
	if err != nil {
		logger.InfoCtx(ctx, "Payout status changed at provider",
			logger.String("event_type", event.EventType),
			logger.String("batch_id", event.BatchID),
			logger.String("status", event.Status))
		return nil
	}

	fx := &sideEffects{}
	var result *models.PayoutResult
	err = uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		txnID, err := tx.GetPayoutTransactionID(ctx, payoutID)
		if errors.Is(err, models.ErrNotFound) {
			logger.WarnCtx(ctx, "Payout webhook for unknown payout", logger.UUID("payout_id", payoutID))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load payout link: %w", err)
		}
		txn, err := tx.GetTransactionForUpdate(ctx, txnID)
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}
		payout, err := tx.GetPayoutForUpdate(ctx, payoutID)
		if err != nil {
			return fmt.Errorf("failed to load payout: %w", err)
		}

		if payout.Status != models.PayoutStatusProcessing || txn.IsPaidOut() {
			logger.InfoCtx(ctx, "Payout already settled",
				logger.UUID("payout_id", payout.ID),
				logger.String("payout_status", string(payout.Status)),
				logger.String("event_type", event.EventType))
			return nil
		}

		owner, err := tx.GetOrCreatePaymentSettings(ctx, txn.OwnerID, uc.cfg.Payment.MinimumPayoutAmount)
		if err != nil {
			return fmt.Errorf("failed to load owner payment settings: %w", err)
		}

		switch event.EventType {
		case models.WebhookPayoutItemSucceeded:
			result, err = uc.completePayout(ctx, tx, txn, payout, owner, fx, event.ResourceID, event.BatchID)
		case models.WebhookPayoutItemFailed, models.WebhookPayoutsBatchDenied:
			result, err = uc.failPayout(ctx, tx, txn, payout, owner, fx, fmt.Sprintf("provider reported %s", event.Status))
		default:
			// the item callback carries the outcome
			logger.InfoCtx(ctx, "Payout batch processed at provider",
				logger.UUID("payout_id", payout.ID),
				logger.String("batch_id", event.BatchID))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile payout: %w", err)
	}

	if result != nil {
		recordOutcome("payout_webhook", result.Code)
	}
	uc.flush(ctx, fx)
	return nil
}

// GetPayoutStatus asks the provider for the current state of a payout
func (uc *paymentUC) GetPayoutStatus(ctx context.Context, payoutID uuid.UUID) (*models.PayoutStatusResult, error) {
	payout, err := uc.repo.GetPayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.ExternalBatchID == "" {
		return &models.PayoutStatusResult{
			Success:      false,
			ErrorMessage: "payout was not accepted by the provider",
			Status:       string(payout.Status),
		}, nil
	}

	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.GetPayoutStatus(pctx, payout.ExternalBatchID)
	observeProvider("payout_status", start, res != nil && res.Success, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get payout status: %w", err)
	}
	return res, nil
}

func (uc *paymentUC) createProviderPayout(ctx context.Context, req *models.CreatePayoutRequest) (*models.ProviderPayoutResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.CreatePayout(pctx, req)
	observeProvider("payout", start, res != nil && res.Success, err)
	if err != nil {
		return &models.ProviderPayoutResult{ErrorMessage: err.Error()}, err
	}
	return res, nil
}
