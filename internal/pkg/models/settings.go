package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutSchedule controls when an owner's captured funds are disbursed
type PayoutSchedule string

const (
	PayoutScheduleOnDemand PayoutSchedule = "OnDemand"
	PayoutScheduleDaily    PayoutSchedule = "Daily"
	PayoutScheduleWeekly   PayoutSchedule = "Weekly"
	PayoutScheduleMonthly  PayoutSchedule = "Monthly"
)

// PaymentSettings is a user's payout configuration
type PaymentSettings struct {
	UserID                  uuid.UUID           `json:"user_id" db:"user_id"`
	PreferredPayoutMethod   PayoutMethod        `json:"preferred_payout_method" db:"preferred_payout_method"`
	PayPalEmail             string              `json:"paypal_email,omitempty" db:"paypal_email"`
	CustomCommissionRate    decimal.NullDecimal `json:"custom_commission_rate" db:"custom_commission_rate"`
	IsCommissionEnabled     bool                `json:"is_commission_enabled" db:"is_commission_enabled"`
	PayoutSchedule          PayoutSchedule      `json:"payout_schedule" db:"payout_schedule"`
	PayoutDayOfWeek         *int                `json:"payout_day_of_week,omitempty" db:"payout_day_of_week"`
	PayoutDayOfMonth        *int                `json:"payout_day_of_month,omitempty" db:"payout_day_of_month"`
	MinimumPayoutAmount     decimal.Decimal     `json:"minimum_payout_amount" db:"minimum_payout_amount"`
	NotifyOnPaymentReceived bool                `json:"notify_on_payment_received" db:"notify_on_payment_received"`
	NotifyOnPayoutSent      bool                `json:"notify_on_payout_sent" db:"notify_on_payout_sent"`
	NotifyOnPayoutFailed    bool                `json:"notify_on_payout_failed" db:"notify_on_payout_failed"`
	IsPayoutVerified        bool                `json:"is_payout_verified" db:"is_payout_verified"`
	CreatedAt               time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at" db:"updated_at"`
}

// DefaultPaymentSettings are applied when a user has never saved settings
func DefaultPaymentSettings(userID uuid.UUID, minimumPayout decimal.Decimal) *PaymentSettings {
	now := Now()
	return &PaymentSettings{
		UserID:                  userID,
		PreferredPayoutMethod:   PayoutMethodPayPal,
		IsCommissionEnabled:     true,
		PayoutSchedule:          PayoutScheduleOnDemand,
		MinimumPayoutAmount:     minimumPayout,
		NotifyOnPaymentReceived: true,
		NotifyOnPayoutSent:      true,
		NotifyOnPayoutFailed:    true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// CanReceivePayouts reports whether a payout destination is configured
func (s *PaymentSettings) CanReceivePayouts() bool {
	return s != nil && s.PayPalEmail != ""
}
