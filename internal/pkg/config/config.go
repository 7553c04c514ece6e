package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "payments-service")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9995)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 30)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 30)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// NSQ config
	configs.NSQ.NSQDAddress = GetEnv("NSQD_ADDRESS", "127.0.0.1:4150")
	configs.NSQ.LookupdAddress = GetEnvAsSlice("NSQ_LOOKUPD_ADDRESS", nil)
	configs.NSQ.MaxInFlight = GetEnvAsInt("NSQ_MAX_IN_FLIGHT", 10)
	configs.NSQ.MailChannelName = GetEnv("NSQ_MAIL_CHANNEL", "mailer")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// API keys
	configs.APIKey.RentalService = GetEnv("RENTAL_SERVICE_API_KEY", "")
	configs.APIKey.AdminService = GetEnv("ADMIN_SERVICE_API_KEY", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/payments.log")
	configs.Logger.MaxSize = GetEnvAsInt("LOG_MAX_SIZE", 100)
	configs.Logger.MaxAge = GetEnvAsInt("LOG_MAX_AGE", 7)
	configs.Logger.MaxBackups = GetEnvAsInt("LOG_MAX_BACKUPS", 3)
	configs.Logger.Compress = GetEnvAsBool("LOG_COMPRESS", true)

	// Payment policy
	configs.Payment.Provider = GetEnv("PAYMENT_PROVIDER", "paypal")
	configs.Payment.DefaultCommissionRate = GetEnvAsDecimal("PAYMENT_DEFAULT_COMMISSION_RATE", decimal.RequireFromString("0.10"))
	configs.Payment.DefaultCurrency = GetEnv("PAYMENT_DEFAULT_CURRENCY", models.DefaultCurrency)
	configs.Payment.MinimumPayoutAmount = GetEnvAsDecimal("PAYMENT_MINIMUM_PAYOUT", decimal.NewFromInt(10))
	configs.Payment.ProviderTimeout = GetEnvAsDuration("PAYMENT_PROVIDER_TIMEOUT", 15*time.Second)
	configs.Payment.PayoutHoldHours = GetEnvAsInt("PAYOUT_HOLD_HOURS", 24)
	configs.Payment.DisbursementHour = GetEnvAsInt("PAYOUT_DISBURSEMENT_HOUR", 10)
	configs.Payment.ReturnURL = GetEnv("PAYMENT_RETURN_URL", "")
	configs.Payment.CancelURL = GetEnv("PAYMENT_CANCEL_URL", "")
	configs.Payment.PayoutEncryptionKey = GetEnv("PAYOUT_ENCRYPTION_KEY", "")

	// PayPal config
	configs.PayPal.BaseURL = GetEnv("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	configs.PayPal.ClientID = GetEnv("PAYPAL_CLIENT_ID", "")
	configs.PayPal.ClientSecret = GetEnv("PAYPAL_CLIENT_SECRET", "")
	configs.PayPal.WebhookID = GetEnv("PAYPAL_WEBHOOK_ID", "")

	// Scheduler config
	configs.Scheduler.Enabled = GetEnvAsBool("SCHEDULER_ENABLED", true)
	configs.Scheduler.PayoutCron = GetEnv("SCHEDULER_PAYOUT_CRON", "@every 5m")
	configs.Scheduler.BatchSize = GetEnvAsInt("SCHEDULER_BATCH_SIZE", 100)
	configs.Scheduler.LockTTL = GetEnvAsDuration("SCHEDULER_LOCK_TTL", 4*time.Minute)

	// Fraud config
	configs.Fraud.ReviewScore = GetEnvAsInt("FRAUD_REVIEW_SCORE", 50)
	configs.Fraud.BlockScore = GetEnvAsInt("FRAUD_BLOCK_SCORE", 80)
	configs.Fraud.HighAmount = GetEnvAsDecimal("FRAUD_HIGH_AMOUNT", decimal.NewFromInt(1000))
	configs.Fraud.MaxHourlyPayments = GetEnvAsInt("FRAUD_MAX_HOURLY_PAYMENTS", 5)
	configs.Fraud.MaxDailyPayments = GetEnvAsInt("FRAUD_MAX_DAILY_PAYMENTS", 15)
	configs.Fraud.MaxDailyAmount = GetEnvAsDecimal("FRAUD_MAX_DAILY_AMOUNT", decimal.NewFromInt(5000))
	configs.Fraud.VelocityWindowHours = GetEnvAsInt("FRAUD_VELOCITY_WINDOW_HOURS", 24)

	// SMTP config
	configs.SMTP.Host = GetEnv("SMTP_HOST", "")
	configs.SMTP.Port = GetEnvAsInt("SMTP_PORT", 587)
	configs.SMTP.Username = GetEnv("SMTP_USERNAME", "")
	configs.SMTP.Password = GetEnv("SMTP_PASSWORD", "")
	configs.SMTP.From = GetEnv("SMTP_FROM", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %f", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDecimal parses money and rate values without going through float64
func GetEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid decimal value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
