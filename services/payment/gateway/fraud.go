package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// Rule names reported in FraudCheckResult.TriggeredRules
const (
	RuleHighAmount     = "high_amount"
	RuleHourlyVelocity = "hourly_velocity"
	RuleDailyVelocity  = "daily_velocity"
	RuleDailyAmount    = "daily_amount"
)

var ruleScores = map[string]int{
	RuleHighAmount:     30,
	RuleHourlyVelocity: 50,
	RuleDailyVelocity:  30,
	RuleDailyAmount:    40,
}

// FraudGW scores payments against per-payer velocity counters kept in Redis
type FraudGW struct {
	cfg   models.FraudConfig
	redis *database.RedisClient
	now   func() time.Time
}

func NewFraudGW(cfg models.FraudConfig, redis *database.RedisClient) *FraudGW {
	return &FraudGW{cfg: cfg, redis: redis, now: models.Now}
}

// CheckPayment scores a payment before capture. The counters reflect
// payments already captured, so the payment under review is added on top.
func (g *FraudGW) CheckPayment(ctx context.Context, p *models.Payment) (*models.FraudCheckResult, error) {
	now := g.now()
	hourly, err := g.getInt(ctx, hourlyCountKey(p.PayerID, now))
	if err != nil {
		return nil, err
	}
	daily, err := g.getInt(ctx, dailyCountKey(p.PayerID, now))
	if err != nil {
		return nil, err
	}
	dailyAmount, err := g.getDecimal(ctx, dailyAmountKey(p.PayerID, now))
	if err != nil {
		return nil, err
	}

	var rules []string
	if g.cfg.HighAmount.IsPositive() && p.Amount.GreaterThanOrEqual(g.cfg.HighAmount) {
		rules = append(rules, RuleHighAmount)
	}
	if g.cfg.MaxHourlyPayments > 0 && hourly+1 > int64(g.cfg.MaxHourlyPayments) {
		rules = append(rules, RuleHourlyVelocity)
	}
	if g.cfg.MaxDailyPayments > 0 && daily+1 > int64(g.cfg.MaxDailyPayments) {
		rules = append(rules, RuleDailyVelocity)
	}
	if g.cfg.MaxDailyAmount.IsPositive() && dailyAmount.Add(p.Amount).GreaterThan(g.cfg.MaxDailyAmount) {
		rules = append(rules, RuleDailyAmount)
	}

	result := g.score(rules)
	if len(rules) > 0 {
		logger.InfoCtx(ctx, "Fraud rules triggered",
			logger.UUID("payment_id", p.ID),
			logger.UUID("payer_id", p.PayerID),
			logger.Int("risk_score", result.RiskScore),
			logger.Strings("rules", rules))
	}
	return result, nil
}

func (g *FraudGW) score(rules []string) *models.FraudCheckResult {
	score := 0
	for _, r := range rules {
		score += ruleScores[r]
	}
	if score > 100 {
		score = 100
	}

	result := &models.FraudCheckResult{RiskScore: score, TriggeredRules: rules}
	switch {
	case score >= g.cfg.BlockScore:
		result.RiskLevel = models.RiskLevelCritical
		result.BlockingReason = fmt.Sprintf("risk score %d at or above block threshold", score)
	case score >= g.cfg.ReviewScore:
		result.RiskLevel = models.RiskLevelHigh
		result.RequiresManualReview = true
	case score > 0:
		result.RiskLevel = models.RiskLevelMedium
		result.IsApproved = true
	default:
		result.RiskLevel = models.RiskLevelLow
		result.IsApproved = true
	}
	return result
}

// UpdateVelocityTracking records a captured payment against the payer's
// hourly and daily windows
func (g *FraudGW) UpdateVelocityTracking(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	now := g.now()
	window := time.Duration(g.cfg.VelocityWindowHours) * time.Hour
	if window < 24*time.Hour {
		window = 24 * time.Hour
	}

	_, err := g.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hourlyKey := hourlyCountKey(userID, now)
		pipe.Incr(ctx, hourlyKey)
		pipe.Expire(ctx, hourlyKey, 2*time.Hour)

		dailyKey := dailyCountKey(userID, now)
		pipe.Incr(ctx, dailyKey)
		pipe.Expire(ctx, dailyKey, window)

		amountKey := dailyAmountKey(userID, now)
		pipe.IncrByFloat(ctx, amountKey, amount.InexactFloat64())
		pipe.Expire(ctx, amountKey, window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update velocity counters: %w", err)
	}
	return nil
}

func (g *FraudGW) getInt(ctx context.Context, key string) (int64, error) {
	n, err := g.redis.Client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read velocity counter: %w", err)
	}
	return n, nil
}

func (g *FraudGW) getDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	raw, err := g.redis.Get(ctx, key)
	if errors.Is(err, models.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read velocity amount: %w", err)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid velocity amount %q: %w", raw, err)
	}
	return d, nil
}

func hourlyCountKey(userID uuid.UUID, at time.Time) string {
	return fmt.Sprintf(constants.KeyVelocityHourlyCount, userID, at.UTC().Format("2006010215"))
}

func dailyCountKey(userID uuid.UUID, at time.Time) string {
	return fmt.Sprintf(constants.KeyVelocityDailyCount, userID, at.UTC().Format("20060102"))
}

func dailyAmountKey(userID uuid.UUID, at time.Time) string {
	return fmt.Sprintf(constants.KeyVelocityDailyAmount, userID, at.UTC().Format("20060102"))
}
