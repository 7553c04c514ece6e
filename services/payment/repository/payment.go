package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
	"github.com/shopspring/decimal"
)

const (
	rentalColumns = `id, tool_id, owner_id, renter_id, total_cost, security_deposit, currency, status, updated_at`

	settingsColumns = `user_id, preferred_payout_method, paypal_email, custom_commission_rate, is_commission_enabled,
		payout_schedule, payout_day_of_week, payout_day_of_month, minimum_payout_amount,
		notify_on_payment_received, notify_on_payout_sent, notify_on_payout_failed, is_payout_verified,
		created_at, updated_at`

	transactionColumns = `id, rental_id, renter_id, owner_id, rental_amount, security_deposit, commission_rate,
		commission_amount, total_payer_amount, owner_payout_amount, currency, status, has_dispute,
		payment_completed_at, payout_scheduled_at, payout_completed_at, payout_attempts, deposit_refunded_at,
		created_at, updated_at`

	paymentColumns = `id, transaction_id, rental_id, payer_id, payee_id, type, status, provider, amount, currency,
		external_payment_id, external_order_id, external_payer_id, failure_reason, refunded_amount, refund_reason,
		idempotency_key, processed_at, failed_at, refunded_at, created_at, updated_at`

	payoutColumns = `id, recipient_id, status, provider, amount, currency, platform_fee, net_amount, payout_method,
		payout_destination, external_payout_id, external_batch_id, failure_reason, scheduled_at, processed_at,
		completed_at, failed_at, created_at, updated_at`

	// uniqueViolation is the Postgres SQLSTATE for a unique index conflict
	uniqueViolation = "23505"
)

// PaymentRepo stores the settlement ledger in Postgres and its short-lived
// bookkeeping in Redis
type PaymentRepo struct {
	cfg   *models.Config
	db    *sqlx.DB
	redis *database.RedisClient
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redis *database.RedisClient,
) *PaymentRepo {
	return &PaymentRepo{
		cfg:   cfg,
		db:    db,
		redis: redis,
	}
}

// RunInTx runs fn inside a read committed database transaction
func (r *PaymentRepo) RunInTx(ctx context.Context, fn func(tx payment.PaymentTxRepo) error) error {
	return database.RunInTx(ctx, r.db, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(tx *sqlx.Tx) error {
		return fn(&txRepo{tx: tx})
	})
}

func (r *PaymentRepo) GetRental(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if err := r.db.GetContext(ctx, &rental, query, rentalID); err != nil {
		return nil, notFound(err, "failed to get rental")
	}
	return &rental, nil
}

func (r *PaymentRepo) GetPaymentSettings(ctx context.Context, userID uuid.UUID) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	query := `SELECT ` + settingsColumns + ` FROM payment_settings WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		return nil, notFound(err, "failed to get payment settings")
	}
	return &settings, nil
}

// GetRentalSettlement returns the live transaction of a rental and every
// payment recorded against it
func (r *PaymentRepo) GetRentalSettlement(ctx context.Context, rentalID uuid.UUID) (*models.RentalSettlement, error) {
	var txn models.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE rental_id = $1 AND status <> 'Cancelled'`
	if err := r.db.GetContext(ctx, &txn, query, rentalID); err != nil {
		return nil, notFound(err, "failed to get transaction")
	}

	payments := []*models.Payment{}
	query = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &payments, query, txn.ID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &models.RentalSettlement{Transaction: &txn, Payments: payments}, nil
}

func (r *PaymentRepo) GetPayoutByID(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error) {
	var payout models.Payout
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`
	if err := r.db.GetContext(ctx, &payout, query, payoutID); err != nil {
		return nil, notFound(err, "failed to get payout")
	}
	return &payout, nil
}

func (r *PaymentRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT id, email, full_name FROM users WHERE id = $1`, userID); err != nil {
		return nil, notFound(err, "failed to get user")
	}
	return &user, nil
}

// ListDuePayoutTransactionIDs returns captured, unpaid transactions whose
// payout time has passed, oldest first
func (r *PaymentRepo) ListDuePayoutTransactionIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `
		SELECT id FROM transactions
		WHERE status = $1
		AND payout_scheduled_at <= $2
		AND payout_completed_at IS NULL
		ORDER BY payout_scheduled_at
		LIMIT $3
	`
	if err := r.db.SelectContext(ctx, &ids, query, models.TransactionStatusPaymentCompleted, now, limit); err != nil {
		return nil, fmt.Errorf("failed to list due payouts: %w", err)
	}
	return ids, nil
}

func (r *PaymentRepo) MarkWebhookProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf(constants.KeyWebhookEvent, eventID)
	first, err := r.redis.SetNX(ctx, key, models.Now().Format(time.RFC3339), ttl)
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}
	return first, nil
}

func (r *PaymentRepo) ReleaseWebhook(ctx context.Context, eventID string) error {
	return r.redis.Delete(ctx, fmt.Sprintf(constants.KeyWebhookEvent, eventID))
}

// txRepo is the ledger bound to one open database transaction
type txRepo struct {
	tx *sqlx.Tx
}

func (t *txRepo) GetRentalForUpdate(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &rental, query, rentalID); err != nil {
		return nil, notFound(err, "failed to get rental")
	}
	return &rental, nil
}

func (t *txRepo) UpdateRentalStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, updated_at = $2 WHERE id = $3`,
		status, models.Now(), rentalID)
	if err != nil {
		return fmt.Errorf("failed to update rental status: %w", err)
	}
	return requireRow(result, "rental")
}

// GetOrCreatePaymentSettings inserts default settings for a user who never
// saved any, then reads the row under lock
func (t *txRepo) GetOrCreatePaymentSettings(ctx context.Context, userID uuid.UUID, minimumPayout decimal.Decimal) (*models.PaymentSettings, error) {
	defaults := models.DefaultPaymentSettings(userID, minimumPayout)
	_, err := t.tx.NamedExecContext(ctx, `
		INSERT INTO payment_settings (
			user_id, preferred_payout_method, is_commission_enabled, payout_schedule, minimum_payout_amount,
			notify_on_payment_received, notify_on_payout_sent, notify_on_payout_failed, created_at, updated_at
		) VALUES (
			:user_id, :preferred_payout_method, :is_commission_enabled, :payout_schedule, :minimum_payout_amount,
			:notify_on_payment_received, :notify_on_payout_sent, :notify_on_payout_failed, :created_at, :updated_at
		) ON CONFLICT (user_id) DO NOTHING
	`, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to create default payment settings: %w", err)
	}

	var settings models.PaymentSettings
	query := `SELECT ` + settingsColumns + ` FROM payment_settings WHERE user_id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &settings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get payment settings: %w", err)
	}
	return &settings, nil
}

func (t *txRepo) GetActiveTransactionByRentalForUpdate(ctx context.Context, rentalID uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE rental_id = $1 AND status <> 'Cancelled'
		FOR UPDATE`
	if err := t.tx.GetContext(ctx, &txn, query, rentalID); err != nil {
		return nil, notFound(err, "failed to get active transaction")
	}
	return &txn, nil
}

func (t *txRepo) GetTransactionForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &txn, query, transactionID); err != nil {
		return nil, notFound(err, "failed to get transaction")
	}
	return &txn, nil
}

// CreateTransaction reports models.ErrDuplicateTransaction when the rental
// already has a live transaction
func (t *txRepo) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	_, err := t.tx.NamedExecContext(ctx, `
		INSERT INTO transactions (
			id, rental_id, renter_id, owner_id, rental_amount, security_deposit, commission_rate,
			commission_amount, total_payer_amount, owner_payout_amount, currency, status, has_dispute,
			created_at, updated_at
		) VALUES (
			:id, :rental_id, :renter_id, :owner_id, :rental_amount, :security_deposit, :commission_rate,
			:commission_amount, :total_payer_amount, :owner_payout_amount, :currency, :status, :has_dispute,
			:created_at, :updated_at
		)
	`, txn)
	if isUniqueViolation(err) {
		return models.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (t *txRepo) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	result, err := t.tx.NamedExecContext(ctx, `
		UPDATE transactions SET
			status = :status,
			has_dispute = :has_dispute,
			payment_completed_at = :payment_completed_at,
			payout_scheduled_at = :payout_scheduled_at,
			payout_completed_at = :payout_completed_at,
			payout_attempts = :payout_attempts,
			deposit_refunded_at = :deposit_refunded_at,
			updated_at = :updated_at
		WHERE id = :id
	`, txn)
	if isUniqueViolation(err) {
		return models.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRow(result, "transaction")
}

func (t *txRepo) GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &p, query, paymentID); err != nil {
		return nil, notFound(err, "failed to get payment")
	}
	return &p, nil
}

// GetPaymentByExternalIDForUpdate matches either the provider order id or
// the provider payment id of a rental payment
func (t *txRepo) GetPaymentByExternalIDForUpdate(ctx context.Context, externalID string) (*models.Payment, error) {
	var p models.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE (external_order_id = $1 OR external_payment_id = $1) AND type = $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`
	if err := t.tx.GetContext(ctx, &p, query, externalID, models.PaymentTypeRentalPayment); err != nil {
		return nil, notFound(err, "failed to get payment")
	}
	return &p, nil
}

func (t *txRepo) GetRentalPaymentForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE transaction_id = $1 AND type = $2
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`
	if err := t.tx.GetContext(ctx, &p, query, transactionID, models.PaymentTypeRentalPayment); err != nil {
		return nil, notFound(err, "failed to get rental payment")
	}
	return &p, nil
}

// ListPendingRefundsForUpdate returns refunds of a transaction that were
// sent to the provider without a definite answer, oldest first
func (t *txRepo) ListPendingRefundsForUpdate(ctx context.Context, transactionID uuid.UUID) ([]*models.Payment, error) {
	refunds := []*models.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE transaction_id = $1 AND status = $2 AND type IN ($3, $4)
		ORDER BY created_at
		FOR UPDATE`
	err := t.tx.SelectContext(ctx, &refunds, query, transactionID, models.PaymentStatusPending,
		models.PaymentTypeRefund, models.PaymentTypeDepositRefund)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending refunds: %w", err)
	}
	return refunds, nil
}

func (t *txRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	_, err := t.tx.NamedExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`) VALUES (
			:id, :transaction_id, :rental_id, :payer_id, :payee_id, :type, :status, :provider, :amount, :currency,
			:external_payment_id, :external_order_id, :external_payer_id, :failure_reason, :refunded_amount, :refund_reason,
			:idempotency_key, :processed_at, :failed_at, :refunded_at, :created_at, :updated_at
		)
	`, p)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// UpdatePayment writes the mutable columns; type never changes
func (t *txRepo) UpdatePayment(ctx context.Context, p *models.Payment) error {
	result, err := t.tx.NamedExecContext(ctx, `
		UPDATE payments SET
			status = :status,
			external_payment_id = :external_payment_id,
			external_payer_id = :external_payer_id,
			failure_reason = :failure_reason,
			refunded_amount = :refunded_amount,
			refund_reason = :refund_reason,
			processed_at = :processed_at,
			failed_at = :failed_at,
			refunded_at = :refunded_at,
			updated_at = :updated_at
		WHERE id = :id
	`, p)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return requireRow(result, "payment")
}

func (t *txRepo) CreatePayout(ctx context.Context, p *models.Payout) error {
	_, err := t.tx.NamedExecContext(ctx, `
		INSERT INTO payouts (`+payoutColumns+`) VALUES (
			:id, :recipient_id, :status, :provider, :amount, :currency, :platform_fee, :net_amount, :payout_method,
			:payout_destination, :external_payout_id, :external_batch_id, :failure_reason, :scheduled_at, :processed_at,
			:completed_at, :failed_at, :created_at, :updated_at
		)
	`, p)
	if err != nil {
		return fmt.Errorf("failed to insert payout: %w", err)
	}
	return nil
}

func (t *txRepo) UpdatePayout(ctx context.Context, p *models.Payout) error {
	result, err := t.tx.NamedExecContext(ctx, `
		UPDATE payouts SET
			status = :status,
			external_payout_id = :external_payout_id,
			external_batch_id = :external_batch_id,
			failure_reason = :failure_reason,
			completed_at = :completed_at,
			failed_at = :failed_at,
			updated_at = :updated_at
		WHERE id = :id
	`, p)
	if err != nil {
		return fmt.Errorf("failed to update payout: %w", err)
	}
	return requireRow(result, "payout")
}

func (t *txRepo) GetPayoutForUpdate(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error) {
	var payout models.Payout
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &payout, query, payoutID); err != nil {
		return nil, notFound(err, "failed to get payout")
	}
	return &payout, nil
}

// GetOpenPayoutForUpdate returns the payout of a transaction that is still
// waiting on the provider
func (t *txRepo) GetOpenPayoutForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Payout, error) {
	var payout models.Payout
	query := `SELECT ` + payoutColumns + ` FROM payouts p
		JOIN payout_transactions pt ON pt.payout_id = p.id
		WHERE pt.transaction_id = $1 AND p.status = $2
		ORDER BY p.created_at DESC
		LIMIT 1
		FOR UPDATE OF p`
	if err := t.tx.GetContext(ctx, &payout, query, transactionID, models.PayoutStatusProcessing); err != nil {
		return nil, notFound(err, "failed to get open payout")
	}
	return &payout, nil
}

func (t *txRepo) GetPayoutTransactionID(ctx context.Context, payoutID uuid.UUID) (uuid.UUID, error) {
	var transactionID uuid.UUID
	query := `SELECT transaction_id FROM payout_transactions WHERE payout_id = $1 LIMIT 1`
	if err := t.tx.GetContext(ctx, &transactionID, query, payoutID); err != nil {
		return uuid.Nil, notFound(err, "failed to get payout transaction")
	}
	return transactionID, nil
}

func (t *txRepo) LinkPayoutTransaction(ctx context.Context, payoutID, transactionID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO payout_transactions (payout_id, transaction_id) VALUES ($1, $2)`,
		payoutID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to link payout to transaction: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows to models.ErrNotFound and wraps anything else
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func requireRow(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		logger.Warn("Update matched no rows", logger.String("entity", entity))
		return fmt.Errorf("%s: %w", entity, models.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
