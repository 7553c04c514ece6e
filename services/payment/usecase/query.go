package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
)

// PreviewRentalFinancials shows a participant what the rental will cost and
// pay out under the owner's current settings
func (uc *paymentUC) PreviewRentalFinancials(ctx context.Context, rentalID, userID uuid.UUID) (*models.RentalFinancials, error) {
	rental, err := uc.participantRental(ctx, rentalID, userID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.repo.GetPaymentSettings(ctx, rental.OwnerID)
	if errors.Is(err, models.ErrNotFound) {
		owner = models.DefaultPaymentSettings(rental.OwnerID, uc.cfg.Payment.MinimumPayoutAmount)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load owner payment settings: %w", err)
	}

	fin := CalculateRentalFinancials(rental.TotalCost, rental.SecurityDeposit, owner, uc.cfg.Payment.DefaultCommissionRate)
	return &fin, nil
}

func (uc *paymentUC) GetRentalSettlement(ctx context.Context, rentalID, userID uuid.UUID) (*models.RentalSettlement, error) {
	if _, err := uc.participantRental(ctx, rentalID, userID); err != nil {
		return nil, err
	}
	return uc.repo.GetRentalSettlement(ctx, rentalID)
}

func (uc *paymentUC) participantRental(ctx context.Context, rentalID, userID uuid.UUID) (*models.Rental, error) {
	rental, err := uc.repo.GetRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(userID) {
		return nil, models.ErrForbidden
	}
	return rental, nil
}

// DeliverNotification renders and mails a queued notification. An unknown
// recipient is dropped rather than retried.
func (uc *paymentUC) DeliverNotification(ctx context.Context, n models.Notification) error {
	user, err := uc.repo.GetUserByID(ctx, n.RecipientID)
	if errors.Is(err, models.ErrNotFound) {
		logger.WarnCtx(ctx, "Notification recipient not found",
			logger.UUID("recipient_id", n.RecipientID),
			logger.String("type", string(n.Type)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load recipient: %w", err)
	}
	if user.Email == "" {
		logger.WarnCtx(ctx, "Notification recipient has no email", logger.UUID("recipient_id", n.RecipientID))
		return nil
	}

	if err := uc.mailer.SendEmail(ctx, user.Email, user.FullName, n.Subject(), n.Body(user.FullName)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
