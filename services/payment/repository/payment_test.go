package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
	"github.com/piresc/toolshare/services/payment/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func setupMockRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &database.RedisClient{Client: client}, mr
}

func TestGetRental_Success(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	rentalID := uuid.New()
	ownerID := uuid.New()
	renterID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "tool_id", "owner_id", "renter_id", "total_cost", "security_deposit", "currency", "status", "updated_at"}).
		AddRow(rentalID.String(), uuid.New().String(), ownerID.String(), renterID.String(), "100.00", "20.00", "USD", "Pending", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
		WithArgs(rentalID).
		WillReturnRows(rows)

	// Act
	rental, err := repo.GetRental(context.Background(), rentalID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ownerID, rental.OwnerID)
	assert.True(t, decimal.RequireFromString("100").Equal(rental.TotalCost))
	assert.Equal(t, models.RentalStatusPending, rental.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRental_NotFound(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	rentalID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
		WithArgs(rentalID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	rental, err := repo.GetRental(context.Background(), rentalID)

	// Assert
	assert.Nil(t, rental)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_DatabaseError(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	userID := uuid.New()

	mock.ExpectQuery("SELECT id, email, full_name FROM users").
		WithArgs(userID).
		WillReturnError(errors.New("connection reset"))

	// Act
	user, err := repo.GetUserByID(context.Background(), userID)

	// Assert
	assert.Nil(t, user)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get user")
}

func TestListDuePayoutTransactionIDs(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	now := time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC)
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT id FROM transactions").
		WithArgs(models.TransactionStatusPaymentCompleted, now, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(first.String()).AddRow(second.String()))

	// Act
	ids, err := repo.ListDuePayoutTransactionIDs(context.Background(), now, 50)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_DuplicateActiveRental(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	txn := &models.Transaction{
		ID:        uuid.New(),
		RentalID:  uuid.New(),
		Status:    models.TransactionStatusPaymentProcessing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "transactions_active_rental_idx"})
	mock.ExpectRollback()

	// Act
	err := repo.RunInTx(context.Background(), func(tx payment.PaymentTxRepo) error {
		return tx.CreateTransaction(context.Background(), txn)
	})

	// Assert
	assert.ErrorIs(t, err, models.ErrDuplicateTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_Commits(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	payoutID, txnID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payout_transactions").
		WithArgs(payoutID, txnID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := repo.RunInTx(context.Background(), func(tx payment.PaymentTxRepo) error {
		return tx.LinkPayoutTransaction(context.Background(), payoutID, txnID)
	})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePayment_NoRows(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	p := &models.Payment{ID: uuid.New(), Status: models.PaymentStatusCompleted}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Act
	err := repo.RunInTx(context.Background(), func(tx payment.PaymentTxRepo) error {
		return tx.UpdatePayment(context.Background(), p)
	})

	// Assert
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRentalSettlement_NoLiveTransaction(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	rentalID := uuid.New()

	mock.ExpectQuery("FROM transactions").
		WithArgs(rentalID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	settlement, err := repo.GetRentalSettlement(context.Background(), rentalID)

	// Assert
	assert.Nil(t, settlement)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMarkWebhookProcessed_OnlyFirstClaimWins(t *testing.T) {
	// Arrange
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()
	repo := repository.NewPaymentRepository(&models.Config{}, nil, redisClient)
	ctx := context.Background()

	// Act
	first, err1 := repo.MarkWebhookProcessed(ctx, "WH-1", time.Hour)
	second, err2 := repo.MarkWebhookProcessed(ctx, "WH-1", time.Hour)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, time.Hour, mr.TTL("payments:webhook:WH-1"))
}

func TestReleaseWebhook_AllowsRedelivery(t *testing.T) {
	// Arrange
	redisClient, mr := setupMockRedis(t)
	defer mr.Close()
	repo := repository.NewPaymentRepository(&models.Config{}, nil, redisClient)
	ctx := context.Background()
	_, err := repo.MarkWebhookProcessed(ctx, "WH-2", time.Hour)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.ReleaseWebhook(ctx, "WH-2"))
	again, err := repo.MarkWebhookProcessed(ctx, "WH-2", time.Hour)

	// Assert
	require.NoError(t, err)
	assert.True(t, again)
}

func TestListPendingRefundsForUpdate(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	txnID, refundID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM payments WHERE transaction_id = \\$1 AND status = \\$2 AND type IN (.+) FOR UPDATE").
		WithArgs(txnID, models.PaymentStatusPending, models.PaymentTypeRefund, models.PaymentTypeDepositRefund).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "status", "amount", "idempotency_key"}).
			AddRow(refundID.String(), "Refund", "Pending", "10.00", "refund-key"))
	mock.ExpectCommit()

	// Act
	var refunds []*models.Payment
	err := repo.RunInTx(context.Background(), func(tx payment.PaymentTxRepo) error {
		var err error
		refunds, err = tx.ListPendingRefundsForUpdate(context.Background(), txnID)
		return err
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.Equal(t, refundID, refunds[0].ID)
	assert.Equal(t, "refund-key", refunds[0].IdempotencyKey)
	assert.True(t, decimal.RequireFromString("10").Equal(refunds[0].Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOpenPayoutForUpdate_NoneOpen(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	txnID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM payouts p JOIN payout_transactions pt").
		WithArgs(txnID, models.PayoutStatusProcessing).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.RunInTx(context.Background(), func(tx payment.PaymentTxRepo) error {
		_, err := tx.GetOpenPayoutForUpdate(context.Background(), txnID)
		return err
	})

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPayoutTransactionID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPaymentRepository(&models.Config{}, db, nil)
	payoutID, txnID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT transaction_id FROM payout_transactions WHERE payout_id = \\$1").
		WithArgs(payoutID).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id"}).AddRow(txnID.String()))
	mock.ExpectQuery("SELECT (.+) FROM payouts WHERE id = \\$1 FOR UPDATE").
		WithArgs(payoutID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "net_amount"}).
			AddRow(payoutID.String(), "Processing", "90.00"))
	mock.ExpectCommit()

	var (
		got    uuid.UUID
		payout *models.Payout
	)
	err := repo.RunInTx(context.Background(), func(tx payment.PaymentTxRepo) error {
		var err error
		if got, err = tx.GetPayoutTransactionID(context.Background(), payoutID); err != nil {
			return err
		}
		payout, err = tx.GetPayoutForUpdate(context.Background(), payoutID)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, txnID, got)
	assert.Equal(t, models.PayoutStatusProcessing, payout.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
