package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/metrics"
	"github.com/piresc/toolshare/internal/pkg/middleware"
	"github.com/piresc/toolshare/internal/pkg/models"
	natspkg "github.com/piresc/toolshare/internal/pkg/nats"
	"github.com/piresc/toolshare/services/payment"
	httpHandler "github.com/piresc/toolshare/services/payment/handler/http"
	natsHandler "github.com/piresc/toolshare/services/payment/handler/nats"
	nsqHandler "github.com/piresc/toolshare/services/payment/handler/nsq"
	schedulerHandler "github.com/piresc/toolshare/services/payment/handler/scheduler"
)

// Handler combines all handlers for the payments service
type Handler struct {
	paymentHTTP *httpHandler.PaymentHandler
	depositNATS *natsHandler.DepositHandler
	mailWorker  *nsqHandler.MailWorker
	scheduler   *schedulerHandler.PayoutScheduler
	redis       *database.RedisClient
	cfg         *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	paymentUC payment.PaymentUC,
	natsClient *natspkg.Client,
	redisClient *database.RedisClient,
	cfg *models.Config,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		paymentHTTP: httpHandler.NewPaymentHandler(paymentUC),
		depositNATS: natsHandler.NewDepositHandler(paymentUC, natsClient),
		mailWorker:  nsqHandler.NewMailWorker(paymentUC, cfg.NSQ, nrApp),
		scheduler:   schedulerHandler.NewPayoutScheduler(paymentUC, redisClient, cfg.Scheduler, nrApp),
		redis:       redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Provider callbacks are authenticated by signature, not by key
	e.POST("/webhooks/paypal", h.paymentHTTP.HandleWebhook)

	// Public routes for renters and owners (JWT required)
	api := e.Group("/api/v1",
		middleware.JWTAuthMiddleware(h.cfg.JWT),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RedisClient: h.redis.GetClient(),
			Resource:    "payments",
			Limit:       60,
			Period:      time.Minute,
		}),
	)
	api.GET("/rentals/:rentalID/financials", h.paymentHTTP.PreviewFinancials)
	api.GET("/rentals/:rentalID/settlement", h.paymentHTTP.GetSettlement)
	api.POST("/rentals/:rentalID/payments", h.paymentHTTP.InitiatePayment)
	api.POST("/payments/complete", h.paymentHTTP.CompletePayment)

	// Internal routes for service-to-service communication (API key required)
	keys := middleware.ServiceKeys(h.cfg.APIKey)
	internal := e.Group("/internal", middleware.ValidateAPIKey(keys, middleware.ServiceRental, middleware.ServiceAdmin))
	internal.POST("/rentals/:rentalID/refunds", h.paymentHTTP.RefundRental)
	internal.POST("/rentals/:rentalID/deposit-refund", h.paymentHTTP.RefundDeposit)
	internal.POST("/transactions/:transactionID/payout", h.paymentHTTP.CreatePayout)
	internal.GET("/payouts/:payoutID", h.paymentHTTP.GetPayoutStatus)

	// Back-office routes
	admin := internal.Group("/admin", middleware.ValidateAPIKey(keys, middleware.ServiceAdmin))
	admin.POST("/payments/:paymentID/review", h.paymentHTTP.ResolveReview)
	admin.POST("/payouts/run", h.paymentHTTP.RunPayouts)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers(ctx context.Context) error {
	return h.depositNATS.InitNATSConsumers(ctx)
}

// StartWorkers starts the mail worker and the payout scheduler
func (h *Handler) StartWorkers() error {
	if err := h.mailWorker.Start(); err != nil {
		return err
	}
	return h.scheduler.Start()
}

// Stop detaches consumers and waits for in-flight work
func (h *Handler) Stop(ctx context.Context) {
	h.scheduler.Stop(ctx)
	h.mailWorker.Stop()
	h.depositNATS.Close()
}
