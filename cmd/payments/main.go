package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/config"
	"github.com/piresc/toolshare/internal/pkg/crypto"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/health"
	httpclient "github.com/piresc/toolshare/internal/pkg/http"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/mail"
	"github.com/piresc/toolshare/internal/pkg/middleware"
	natspkg "github.com/piresc/toolshare/internal/pkg/nats"
	nrpkg "github.com/piresc/toolshare/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/toolshare/internal/pkg/nsq"
	"github.com/piresc/toolshare/internal/pkg/server"
	"github.com/piresc/toolshare/services/payment/gateway"
	"github.com/piresc/toolshare/services/payment/handler"
	"github.com/piresc/toolshare/services/payment/repository"
	"github.com/piresc/toolshare/services/payment/usecase"
)

func main() {
	appName := "payments-service"
	configPath := config.GetEnv("CONFIG_PATH", "config/payments.env")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize JetStream-enabled NATS client
	natsClient, err := natspkg.NewClient(configs.NATS.URL, appName)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	streamCtx, cancelStreams := context.WithTimeout(context.Background(), 10*time.Second)
	if err := natsClient.EnsureStreams(streamCtx, natspkg.SettlementStreams()...); err != nil {
		zapLogger.Fatal("Failed to ensure JetStream streams", logger.Err(err))
	}
	cancelStreams()

	// Initialize NSQ producer for notification mail
	nsqProducer, err := nsqpkg.NewProducer(configs.NSQ.NSQDAddress)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}
	defer nsqProducer.Stop()

	sealer, err := crypto.NewSealer(configs.Payment.PayoutEncryptionKey)
	if err != nil {
		zapLogger.Fatal("Payout encryption key is not configured", logger.Err(err))
	}

	// Initialize repository
	paymentRepo := repository.NewPaymentRepository(configs, postgresClient.GetDB(), redisClient)

	// Initialize gateways
	providerGW, err := gateway.NewProviderGW(configs, httpclient.NewEnhancedClient(zapLogger, configs.Payment.ProviderTimeout))
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment provider", logger.Err(err))
	}
	fraudGW := gateway.NewFraudGW(configs.Fraud, redisClient)
	eventGW := gateway.NewEventGW(natsClient)
	notificationGW := gateway.NewNotificationGW(nsqProducer)
	mailGW := gateway.NewMailGW(mail.NewSender(configs.SMTP))

	// Initialize usecase
	paymentUC, err := usecase.NewPaymentUC(configs, paymentRepo, providerGW, fraudGW, eventGW, notificationGW, mailGW, sealer)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment use case", logger.Err(err))
	}

	// Initialize handlers
	paymentHandler := handler.NewHandler(paymentUC, natsClient, redisClient, configs, nrApp)

	rootCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()

	// Initialize NATS consumers
	if err := paymentHandler.InitNATSConsumers(rootCtx); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Start mail worker and payout scheduler
	if err := paymentHandler.StartWorkers(); err != nil {
		zapLogger.Fatal("Failed to start workers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.EchoMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize enhanced health service
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient.GetConn()))
	healthService.AddChecker("nsq", health.NewNSQHealthChecker(nsqProducer))

	// Register enhanced health endpoints
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	paymentHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	srv.OnShutdown("workers", paymentHandler.Stop)
	srv.OnShutdown("consumers", func(context.Context) { stopConsumers() })
	if nrApp != nil {
		srv.OnShutdown("newrelic", func(context.Context) { nrApp.Shutdown(10 * time.Second) })
	}

	if err := srv.Run(rootCtx); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
