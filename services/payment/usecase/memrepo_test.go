package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
	"github.com/shopspring/decimal"
)

// memRepo is an in-memory ledger. RunInTx serialises transactions and
// restores a snapshot when fn fails, which is enough to observe commit and
// rollback behaviour.
type memRepo struct {
	mu       sync.Mutex
	rentals  map[uuid.UUID]models.Rental
	users    map[uuid.UUID]models.User
	settings map[uuid.UUID]models.PaymentSettings
	txns     map[uuid.UUID]models.Transaction
	payments map[uuid.UUID]models.Payment
	payouts  map[uuid.UUID]models.Payout
	links    map[uuid.UUID]uuid.UUID
	webhooks map[string]bool
	seq      int
	order    map[uuid.UUID]int

	// txErr fails the next RunInTx after fn has run
	txErr error
	// createTxnErr is returned by the next CreateTransaction
	createTxnErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		rentals:  make(map[uuid.UUID]models.Rental),
		users:    make(map[uuid.UUID]models.User),
		settings: make(map[uuid.UUID]models.PaymentSettings),
		txns:     make(map[uuid.UUID]models.Transaction),
		payments: make(map[uuid.UUID]models.Payment),
		payouts:  make(map[uuid.UUID]models.Payout),
		links:    make(map[uuid.UUID]uuid.UUID),
		webhooks: make(map[string]bool),
		order:    make(map[uuid.UUID]int),
	}
}

type memSnapshot struct {
	rentals  map[uuid.UUID]models.Rental
	settings map[uuid.UUID]models.PaymentSettings
	txns     map[uuid.UUID]models.Transaction
	payments map[uuid.UUID]models.Payment
	payouts  map[uuid.UUID]models.Payout
	links    map[uuid.UUID]uuid.UUID
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (r *memRepo) snapshot() memSnapshot {
	return memSnapshot{
		rentals:  copyMap(r.rentals),
		settings: copyMap(r.settings),
		txns:     copyMap(r.txns),
		payments: copyMap(r.payments),
		payouts:  copyMap(r.payouts),
		links:    copyMap(r.links),
	}
}

func (r *memRepo) restore(s memSnapshot) {
	r.rentals = s.rentals
	r.settings = s.settings
	r.txns = s.txns
	r.payments = s.payments
	r.payouts = s.payouts
	r.links = s.links
}

func (r *memRepo) RunInTx(ctx context.Context, fn func(tx payment.PaymentTxRepo) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.snapshot()
	err := fn(&memTx{r: r})
	if err == nil && r.txErr != nil {
		err, r.txErr = r.txErr, nil
	}
	if err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

func (r *memRepo) GetRental(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rental, ok := r.rentals[rentalID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rental, nil
}

func (r *memRepo) GetPaymentSettings(ctx context.Context, userID uuid.UUID) (*models.PaymentSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (r *memRepo) GetRentalSettlement(ctx context.Context, rentalID uuid.UUID) (*models.RentalSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn := r.activeTxn(rentalID)
	if txn == nil {
		return nil, models.ErrNotFound
	}
	return &models.RentalSettlement{Transaction: txn, Payments: r.paymentsOf(txn.ID)}, nil
}

func (r *memRepo) GetPayoutByID(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payouts[payoutID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *memRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) ListDuePayoutTransactionIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []models.Transaction
	for _, t := range r.txns {
		if t.Status == models.TransactionStatusPaymentCompleted && t.PayoutScheduledAt != nil &&
			!t.PayoutScheduledAt.After(now) && t.PayoutCompletedAt == nil {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].PayoutScheduledAt.Before(*due[j].PayoutScheduledAt) })
	ids := make([]uuid.UUID, 0, len(due))
	for i, t := range due {
		if i == limit {
			break
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (r *memRepo) MarkWebhookProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.webhooks[eventID] {
		return false, nil
	}
	r.webhooks[eventID] = true
	return true, nil
}

func (r *memRepo) ReleaseWebhook(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.webhooks, eventID)
	return nil
}

// test accessors

func (r *memRepo) addRental(rental models.Rental) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rentals[rental.ID] = rental
}

func (r *memRepo) addUser(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *memRepo) putSettings(s *models.PaymentSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[s.UserID] = *s
}

func (r *memRepo) transaction(id uuid.UUID) models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.txns[id]
}

func (r *memRepo) payment(id uuid.UUID) models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[id]
}

func (r *memRepo) rental(id uuid.UUID) models.Rental {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rentals[id]
}

func (r *memRepo) setPaymentAmount(id uuid.UUID, amount decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.payments[id]
	p.Amount = amount
	r.payments[id] = p
}

func (r *memRepo) paymentsOfType(txnID uuid.UUID, kind models.PaymentType) []*models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.paymentsOf(txnID) {
		if p.Type == kind {
			out = append(out, p)
		}
	}
	return out
}

func (r *memRepo) transactionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.txns)
}

func (r *memRepo) payoutCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payouts)
}

func (r *memRepo) payoutsFor(txnID uuid.UUID) []models.Payout {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payout
	for payoutID, linked := range r.links {
		if linked == txnID {
			out = append(out, r.payouts[payoutID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memRepo) seen(eventID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.webhooks[eventID]
}

// helpers below expect mu held

func (r *memRepo) activeTxn(rentalID uuid.UUID) *models.Transaction {
	for _, t := range r.txns {
		if t.RentalID == rentalID && t.Status != models.TransactionStatusCancelled {
			t := t
			return &t
		}
	}
	return nil
}

func (r *memRepo) paymentsOf(txnID uuid.UUID) []*models.Payment {
	var out []*models.Payment
	for _, p := range r.payments {
		if p.TransactionID == txnID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out
}

// memTx runs with memRepo.mu held by RunInTx
type memTx struct {
	r *memRepo
}

func (t *memTx) GetRentalForUpdate(ctx context.Context, rentalID uuid.UUID) (*models.Rental, error) {
	rental, ok := t.r.rentals[rentalID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rental, nil
}

func (t *memTx) UpdateRentalStatus(ctx context.Context, rentalID uuid.UUID, status models.RentalStatus) error {
	rental, ok := t.r.rentals[rentalID]
	if !ok {
		return models.ErrNotFound
	}
	rental.Status = status
	t.r.rentals[rentalID] = rental
	return nil
}

func (t *memTx) GetOrCreatePaymentSettings(ctx context.Context, userID uuid.UUID, minimumPayout decimal.Decimal) (*models.PaymentSettings, error) {
	s, ok := t.r.settings[userID]
	if !ok {
		s = *models.DefaultPaymentSettings(userID, minimumPayout)
		t.r.settings[userID] = s
	}
	return &s, nil
}

func (t *memTx) GetActiveTransactionByRentalForUpdate(ctx context.Context, rentalID uuid.UUID) (*models.Transaction, error) {
	txn := t.r.activeTxn(rentalID)
	if txn == nil {
		return nil, models.ErrNotFound
	}
	return txn, nil
}

func (t *memTx) GetTransactionForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	txn, ok := t.r.txns[transactionID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &txn, nil
}

func (t *memTx) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := t.r.createTxnErr; err != nil {
		t.r.createTxnErr = nil
		return err
	}
	if t.r.activeTxn(txn.RentalID) != nil {
		return models.ErrDuplicateTransaction
	}
	t.r.txns[txn.ID] = *txn
	return nil
}

func (t *memTx) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	if _, ok := t.r.txns[txn.ID]; !ok {
		return models.ErrNotFound
	}
	if txn.Status != models.TransactionStatusCancelled {
		if active := t.r.activeTxn(txn.RentalID); active != nil && active.ID != txn.ID {
			return models.ErrDuplicateTransaction
		}
	}
	t.r.txns[txn.ID] = *txn
	return nil
}

func (t *memTx) GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	p, ok := t.r.payments[paymentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (t *memTx) GetPaymentByExternalIDForUpdate(ctx context.Context, externalID string) (*models.Payment, error) {
	var found *models.Payment
	for _, p := range t.r.payments {
		if p.Type != models.PaymentTypeRentalPayment {
			continue
		}
		if p.ExternalOrderID != externalID && p.ExternalPaymentID != externalID {
			continue
		}
		if found == nil || t.r.order[p.ID] > t.r.order[found.ID] {
			p := p
			found = &p
		}
	}
	if found == nil {
		return nil, models.ErrNotFound
	}
	return found, nil
}

func (t *memTx) GetRentalPaymentForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Payment, error) {
	for _, p := range t.r.paymentsOf(transactionID) {
		if p.Type == models.PaymentTypeRentalPayment {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (t *memTx) CreatePayment(ctx context.Context, p *models.Payment) error {
	if _, ok := t.r.payments[p.ID]; ok {
		return errors.New("duplicate payment id")
	}
	t.r.seq++
	t.r.order[p.ID] = t.r.seq
	t.r.payments[p.ID] = *p
	return nil
}

func (t *memTx) UpdatePayment(ctx context.Context, p *models.Payment) error {
	if _, ok := t.r.payments[p.ID]; !ok {
		return models.ErrNotFound
	}
	t.r.payments[p.ID] = *p
	return nil
}

func (t *memTx) CreatePayout(ctx context.Context, p *models.Payout) error {
	t.r.payouts[p.ID] = *p
	return nil
}

func (t *memTx) UpdatePayout(ctx context.Context, p *models.Payout) error {
	if _, ok := t.r.payouts[p.ID]; !ok {
		return models.ErrNotFound
	}
	t.r.payouts[p.ID] = *p
	return nil
}

func (t *memTx) LinkPayoutTransaction(ctx context.Context, payoutID, transactionID uuid.UUID) error {
	t.r.links[payoutID] = transactionID
	return nil
}

func (t *memTx) ListPendingRefundsForUpdate(ctx context.Context, transactionID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range t.r.paymentsOf(transactionID) {
		if p.Status == models.PaymentStatusPending &&
			(p.Type == models.PaymentTypeRefund || p.Type == models.PaymentTypeDepositRefund) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *memTx) GetPayoutForUpdate(ctx context.Context, payoutID uuid.UUID) (*models.Payout, error) {
	p, ok := t.r.payouts[payoutID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (t *memTx) GetOpenPayoutForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Payout, error) {
	for payoutID, txnID := range t.r.links {
		if txnID != transactionID {
			continue
		}
		if p := t.r.payouts[payoutID]; p.Status == models.PayoutStatusProcessing {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (t *memTx) GetPayoutTransactionID(ctx context.Context, payoutID uuid.UUID) (uuid.UUID, error) {
	txnID, ok := t.r.links[payoutID]
	if !ok {
		return uuid.Nil, models.ErrNotFound
	}
	return txnID, nil
}
