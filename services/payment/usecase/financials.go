package usecase

import (
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// EffectiveCommissionRate returns the owner's custom rate when it is enabled
// and set, otherwise the platform default.
func EffectiveCommissionRate(owner *models.PaymentSettings, defaultRate decimal.Decimal) decimal.Decimal {
	if owner != nil && owner.IsCommissionEnabled && owner.CustomCommissionRate.Valid {
		return owner.CustomCommissionRate.Decimal
	}
	return defaultRate
}

// CalculateRentalFinancials splits a rental into commission, payer total and
// owner payout. Commission is rounded once here and every later comparison
// works from these figures.
func CalculateRentalFinancials(rentalAmount, deposit decimal.Decimal, owner *models.PaymentSettings, defaultRate decimal.Decimal) models.RentalFinancials {
	rate := EffectiveCommissionRate(owner, defaultRate)
	commission := models.RoundAmount(rentalAmount.Mul(rate))

	return models.RentalFinancials{
		RentalAmount:      rentalAmount,
		SecurityDeposit:   deposit,
		CommissionRate:    rate,
		CommissionAmount:  commission,
		TotalPayerAmount:  rentalAmount.Add(deposit),
		OwnerPayoutAmount: rentalAmount.Sub(commission),
	}
}
