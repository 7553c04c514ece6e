package constants

import "time"

// Redis key formats
const (
	KeyWebhookEvent = "payments:webhook:%s" // Format: payments:webhook:{event_id}
	KeyPayoutLock   = "payments:lock:payouts"

	// Fraud velocity counters
	KeyVelocityHourlyCount = "fraud:velocity:%s:count:%s"  // Format: fraud:velocity:{user_id}:count:{yyyymmddhh}
	KeyVelocityDailyCount  = "fraud:velocity:%s:dcount:%s" // Format: fraud:velocity:{user_id}:dcount:{yyyymmdd}
	KeyVelocityDailyAmount = "fraud:velocity:%s:amount:%s" // Format: fraud:velocity:{user_id}:amount:{yyyymmdd}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{ip}
)

// Expirations
const (
	WebhookEventTTL = 72 * time.Hour
)
