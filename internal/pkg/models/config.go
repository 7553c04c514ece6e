package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NSQ       NSQConfig
	JWT       JWTConfig
	APIKey    APIKeyConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
	Payment   PaymentConfig
	PayPal    PayPalConfig
	Scheduler SchedulerConfig
	Fraud     FraudConfig
	SMTP      SMTPConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ connection configuration
type NSQConfig struct {
	NSQDAddress     string
	LookupdAddress  []string
	MaxInFlight     int
	MailChannelName string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret string
	Issuer string
}

// APIKeyConfig holds the keys of services allowed on /internal routes
type APIKeyConfig struct {
	RentalService string
	AdminService  string
}

// NewRelicConfig contains APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains log output configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int
	MaxAge     int
	MaxBackups int
	Compress   bool
}

// PaymentConfig contains settlement policy
type PaymentConfig struct {
	Provider              string
	DefaultCommissionRate decimal.Decimal
	DefaultCurrency       string
	MinimumPayoutAmount   decimal.Decimal
	ProviderTimeout       time.Duration
	PayoutHoldHours       int
	DisbursementHour      int
	ReturnURL             string
	CancelURL             string
	PayoutEncryptionKey   string
}

// PayPalConfig contains PayPal REST credentials
type PayPalConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	WebhookID    string
}

// SchedulerConfig drives the payout poll loop
type SchedulerConfig struct {
	Enabled    bool
	PayoutCron string
	BatchSize  int
	LockTTL    time.Duration
}

// FraudConfig contains fraud screen thresholds
type FraudConfig struct {
	ReviewScore         int
	BlockScore          int
	HighAmount          decimal.Decimal
	MaxHourlyPayments   int
	MaxDailyPayments    int
	MaxDailyAmount      decimal.Decimal
	VelocityWindowHours int
}

// SMTPConfig contains outgoing mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}
