package models

// RiskLevel buckets a fraud risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// FraudCheckResult is the fraud screen verdict for a payment
type FraudCheckResult struct {
	IsApproved           bool      `json:"is_approved"`
	RiskLevel            RiskLevel `json:"risk_level"`
	RiskScore            int       `json:"risk_score"`
	RequiresManualReview bool      `json:"requires_manual_review"`
	BlockingReason       string    `json:"blocking_reason,omitempty"`
	TriggeredRules       []string  `json:"triggered_rules,omitempty"`
}

// IsBlocked reports an outright rejection
func (r *FraudCheckResult) IsBlocked() bool {
	return !r.IsApproved && !r.RequiresManualReview
}
