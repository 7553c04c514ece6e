package usecase

import (
	"fmt"
	"time"

	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
)

const defaultPayoutHold = 24 * time.Hour

// NextPayoutTime computes when captured funds may be paid out under the
// owner's schedule. The result is never earlier than captureAt+hold and
// always falls on disbursementHour UTC.
func NextPayoutTime(captureAt time.Time, settings *models.PaymentSettings, hold time.Duration, disbursementHour int) (time.Time, error) {
	if hold < defaultPayoutHold {
		hold = defaultPayoutHold
	}
	if disbursementHour < 0 || disbursementHour > 23 {
		return time.Time{}, fmt.Errorf("invalid disbursement hour %d", disbursementHour)
	}

	captureAt = captureAt.UTC()
	earliest := captureAt.Add(hold)

	schedule := models.PayoutScheduleOnDemand
	if settings != nil && settings.PayoutSchedule != "" {
		schedule = settings.PayoutSchedule
	}

	switch schedule {
	case models.PayoutScheduleOnDemand:
		return notBefore(atHour(captureAt.AddDate(0, 0, 1), disbursementHour), earliest), nil

	case models.PayoutScheduleDaily:
		return notBefore(atHour(earliest, disbursementHour), earliest), nil

	case models.PayoutScheduleWeekly:
		if settings.PayoutDayOfWeek == nil || *settings.PayoutDayOfWeek < 0 || *settings.PayoutDayOfWeek > 6 {
			return time.Time{}, fmt.Errorf("weekly schedule needs a day of week 0-6")
		}
		day := time.Weekday(*settings.PayoutDayOfWeek)
		t := notBefore(atHour(earliest, disbursementHour), earliest)
		for t.Weekday() != day {
			t = t.AddDate(0, 0, 1)
		}
		return t, nil

	case models.PayoutScheduleMonthly:
		if settings.PayoutDayOfMonth == nil || *settings.PayoutDayOfMonth < 1 || *settings.PayoutDayOfMonth > 31 {
			return time.Time{}, fmt.Errorf("monthly schedule needs a day of month 1-31")
		}
		t := dayOfMonth(earliest.Year(), earliest.Month(), *settings.PayoutDayOfMonth, disbursementHour)
		if t.Before(earliest) {
			t = dayOfMonth(earliest.Year(), earliest.Month()+1, *settings.PayoutDayOfMonth, disbursementHour)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unknown payout schedule %q", schedule)
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
}

// notBefore advances t a day at a time until it is at or after earliest
func notBefore(t, earliest time.Time) time.Time {
	for t.Before(earliest) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// dayOfMonth clamps day to the length of the month. month may overflow
// into the next year.
func dayOfMonth(year int, month time.Month, day, hour int) time.Time {
	first := time.Date(year, month, 1, hour, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// schedulePayout never fails capture: a bad schedule falls back to a flat hold
func (uc *paymentUC) schedulePayout(captureAt time.Time, settings *models.PaymentSettings) time.Time {
	hold := time.Duration(uc.cfg.Payment.PayoutHoldHours) * time.Hour

	at, err := NextPayoutTime(captureAt, settings, hold, uc.cfg.Payment.DisbursementHour)
	if err != nil {
		logger.Warn("Payout schedule could not be computed, using default hold", logger.Err(err))
		return captureAt.Add(defaultPayoutHold)
	}
	return at
}
