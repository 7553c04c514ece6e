package main

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/toolshare/internal/pkg/config"
	"github.com/piresc/toolshare/internal/pkg/crypto"
	"github.com/piresc/toolshare/internal/pkg/database"
	httpclient "github.com/piresc/toolshare/internal/pkg/http"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/mail"
	"github.com/piresc/toolshare/internal/pkg/models"
	natspkg "github.com/piresc/toolshare/internal/pkg/nats"
	nsqpkg "github.com/piresc/toolshare/internal/pkg/nsq"
	"github.com/piresc/toolshare/services/payment"
	"github.com/piresc/toolshare/services/payment/gateway"
	"github.com/piresc/toolshare/services/payment/repository"
	"github.com/piresc/toolshare/services/payment/usecase"
	"github.com/spf13/viper"
)

// app holds the connections a command needs. closers run in reverse order.
type app struct {
	cfg       *models.Config
	postgres  *database.PostgresClient
	redis     *database.RedisClient
	paymentUC payment.PaymentUC
	closers   []func()
}

func loadConfig() (*models.Config, error) {
	cfg := config.InitConfig(viper.GetString("config"))

	zapLogger, err := logger.InitZapLoggerFromConfig(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetGlobalLogger(zapLogger)
	return cfg, nil
}

// openDatabase connects to Postgres only
func openDatabase() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	postgresClient, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, postgres: postgresClient}
	a.closers = append(a.closers, func() { _ = postgresClient.Close() })
	return a, nil
}

// openApp wires the full settlement use case the way the service does
func openApp(ctx context.Context) (*app, error) {
	a, err := openDatabase()
	if err != nil {
		return nil, err
	}
	cfg := a.cfg

	fail := func(err error) (*app, error) {
		a.Close()
		return nil, err
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		return fail(err)
	}
	a.redis = redisClient
	a.closers = append(a.closers, func() { _ = redisClient.Close() })

	natsClient, err := natspkg.NewClient(cfg.NATS.URL, "settlectl")
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, natsClient.Close)

	streamCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := natsClient.EnsureStreams(streamCtx, natspkg.SettlementStreams()...); err != nil {
		return fail(err)
	}

	producer, err := nsqpkg.NewProducer(cfg.NSQ.NSQDAddress)
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, producer.Stop)

	sealer, err := crypto.NewSealer(cfg.Payment.PayoutEncryptionKey)
	if err != nil {
		return fail(err)
	}

	providerGW, err := gateway.NewProviderGW(cfg, httpclient.NewEnhancedClient(logger.GetGlobalLogger(), cfg.Payment.ProviderTimeout))
	if err != nil {
		return fail(err)
	}

	paymentUC, err := usecase.NewPaymentUC(
		cfg,
		repository.NewPaymentRepository(cfg, a.postgres.GetDB(), redisClient),
		providerGW,
		gateway.NewFraudGW(cfg.Fraud, redisClient),
		gateway.NewEventGW(natsClient),
		gateway.NewNotificationGW(producer),
		gateway.NewMailGW(mail.NewSender(cfg.SMTP)),
		sealer,
	)
	if err != nil {
		return fail(err)
	}
	a.paymentUC = paymentUC
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
