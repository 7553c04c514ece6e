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

// InitiateRentalPayment opens the ledger entry for a rental and creates the
// provider order the renter approves. A provider decline is committed as a
// cancelled transaction; any other failure leaves nothing behind.
func (uc *paymentUC) InitiateRentalPayment(ctx context.Context, rentalID, userID uuid.UUID) (*models.PaymentResult, error) {
	fx := &sideEffects{}
	var result *models.PaymentResult

	err := uc.repo.RunInTx(ctx, func(tx payment.PaymentTxRepo) error {
		rental, err := tx.GetRentalForUpdate(ctx, rentalID)
		if errors.Is(err, models.ErrNotFound) {
			result = models.PaymentFailure(models.ResultCodeNotFound, "Rental not found")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load rental: %w", err)
		}
		if rental.RenterID != userID {
			result = models.PaymentFailure(models.ResultCodeForbidden, "Only the renter can pay for this rental")
			return nil
		}
		if rental.Status != models.RentalStatusPending {
			result = models.PaymentFailure(models.ResultCodeInvalidState, "Rental is not awaiting payment")
			return nil
		}

		existing, err := tx.GetActiveTransactionByRentalForUpdate(ctx, rentalID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to check existing transaction: %w", err)
		}
		if existing != nil {
			result = models.PaymentFailure(models.ResultCodeAlreadyInitiated, models.MessageAlreadyActive)
			result.TransactionID = existing.ID
			return nil
		}

		owner, err := tx.GetOrCreatePaymentSettings(ctx, rental.OwnerID, uc.cfg.Payment.MinimumPayoutAmount)
		if err != nil {
			return fmt.Errorf("failed to load owner payment settings: %w", err)
		}
		if !owner.CanReceivePayouts() {
			result = models.PaymentFailure(models.ResultCodeNoPayoutEmail, "The tool owner has not set up payouts yet")
			return nil
		}

		fin := CalculateRentalFinancials(rental.TotalCost, rental.SecurityDeposit, owner, uc.cfg.Payment.DefaultCommissionRate)
		now := uc.now()
		txn := &models.Transaction{
			ID:                uuid.New(),
			RentalID:          rental.ID,
			RenterID:          rental.RenterID,
			OwnerID:           rental.OwnerID,
			RentalAmount:      fin.RentalAmount,
			SecurityDeposit:   fin.SecurityDeposit,
			CommissionRate:    fin.CommissionRate,
			CommissionAmount:  fin.CommissionAmount,
			TotalPayerAmount:  fin.TotalPayerAmount,
			OwnerPayoutAmount: fin.OwnerPayoutAmount,
			Currency:          uc.currency(rental),
			Status:            models.TransactionStatusPaymentProcessing,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.CreateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		res, err := uc.createProviderPayment(ctx, rental, txn, owner.PayPalEmail)
		if err != nil && !isProviderTimeout(err) {
			return fmt.Errorf("failed to create provider payment: %w", err)
		}
		if err != nil || !res.Success {
			logger.WarnCtx(ctx, "Provider rejected payment creation",
				logger.UUID("transaction_id", txn.ID),
				logger.String("reason", res.ErrorMessage))

			if err := txn.TransitionTo(models.TransactionStatusCancelled); err != nil {
				return err
			}
			txn.UpdatedAt = uc.now()
			if err := tx.UpdateTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to cancel transaction: %w", err)
			}
			fx.publish(models.NewSettlementEvent(models.EventPaymentFailed, txn, txn.TotalPayerAmount))
			result = models.PaymentFailure(models.ResultCodeProviderError, "Payment could not be started with the payment provider")
			result.TransactionID = txn.ID
			return nil
		}

		p := &models.Payment{
			ID:                uuid.New(),
			TransactionID:     txn.ID,
			RentalID:          rental.ID,
			PayerID:           rental.RenterID,
			PayeeID:           &rental.OwnerID,
			Type:              models.PaymentTypeRentalPayment,
			Status:            models.PaymentStatusPending,
			Provider:          uc.provider.Name(),
			Amount:            txn.TotalPayerAmount,
			Currency:          txn.Currency,
			ExternalPaymentID: res.PaymentID,
			ExternalOrderID:   res.OrderID,
			RefundedAmount:    decimal.Zero,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		fx.publish(models.NewSettlementEvent(models.EventPaymentInitiated, txn, txn.TotalPayerAmount))
		result = &models.PaymentResult{
			Success:           true,
			Code:              models.ResultCodeOK,
			Message:           "Payment initiated",
			TransactionID:     txn.ID,
			PaymentID:         p.ID,
			ExternalPaymentID: externalRef(p),
			ApprovalURL:       res.ApprovalURL,
			Status:            p.Status,
		}
		return nil
	})

	// a concurrent initiation won the unique index on the rental
	if errors.Is(err, models.ErrDuplicateTransaction) {
		result, err = models.PaymentFailure(models.ResultCodeAlreadyInitiated, models.MessageAlreadyActive), nil
	}
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to initiate rental payment",
			logger.UUID("rental_id", rentalID),
			logger.Err(err))
		return nil, err
	}

	recordOutcome("initiate", result.Code)
	uc.flush(ctx, fx)
	return result, nil
}

// The provider wrappers below always return a non-nil result so callers can
// read ErrorMessage on the timeout path.

func (uc *paymentUC) createProviderPayment(ctx context.Context, rental *models.Rental, txn *models.Transaction, payeeEmail string) (*models.ProviderPaymentResult, error) {
	pctx, cancel := uc.providerCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := uc.provider.CreatePayment(pctx, &models.CreatePaymentRequest{
		ReferenceID:    txn.ID.String(),
		Amount:         txn.TotalPayerAmount,
		Currency:       txn.Currency,
		PlatformFee:    txn.CommissionAmount,
		PayeeEmail:     payeeEmail,
		Description:    fmt.Sprintf("Tool rental %s", rental.ID),
		ReturnURL:      uc.cfg.Payment.ReturnURL,
		CancelURL:      uc.cfg.Payment.CancelURL,
		IdempotencyKey: "create-" + txn.ID.String(),
	})
	observeProvider("create_payment", start, res != nil && res.Success, err)
	if err != nil {
		return &models.ProviderPaymentResult{ErrorMessage: err.Error()}, err
	}
	return res, nil
}

// externalRef is the id the payer's client comes back with
func externalRef(p *models.Payment) string {
	if p.ExternalOrderID != "" {
		return p.ExternalOrderID
	}
	return p.ExternalPaymentID
}

func observeProvider(operation string, start time.Time, success bool, err error) {
	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case !success:
		outcome = "declined"
	}
	metrics.ProviderRequestDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}
