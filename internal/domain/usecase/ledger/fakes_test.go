package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/domain/port/persistence"
)

// fakeClock is a settable time provider for tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *fakeClock) Since(t time.Time) coreport.Duration {
	return coreport.Duration(c.Now().Sub(t))
}

func (c *fakeClock) Sleep(coreport.Duration) {}

func (c *fakeClock) WithTimeout(ctx context.Context, _ coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

// memoryStore is an in-memory stand-in for the relational store. A single
// transaction mutex emulates the serialization that row locks give the real
// unit of work; rollback restores a snapshot taken at Begin. Like the real
// store, a constraint violation aborts the open transaction: every later
// statement fails until rollback, and a commit discards the work.
type memoryStore struct {
	mu sync.Mutex // guards the maps for individual operations

	accounts     map[uint64]*entity.Account
	transactions []*entity.Transaction
	withdrawals  map[string]*entity.WithdrawalRequest
	orderedWds   []string
	events       map[string]*entity.EventIdentity

	nextTransactionID uint64
	nextEventRecordID uint64

	txMu      sync.Mutex // held from Begin to Commit/Rollback
	txActive  bool
	txAborted bool
}

// statementFailed marks the open transaction aborted. Caller holds mu.
func (s *memoryStore) statementFailed() {
	if s.txActive {
		s.txAborted = true
	}
}

// abortedErr reports whether the open transaction refuses further statements.
// Caller holds mu.
func (s *memoryStore) abortedErr() error {
	if s.txActive && s.txAborted {
		return fmt.Errorf("%w: current transaction is aborted", errs.ErrDatabaseConnection)
	}
	return nil
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:    make(map[uint64]*entity.Account),
		withdrawals: make(map[string]*entity.WithdrawalRequest),
		events:      make(map[string]*entity.EventIdentity),
	}
}

func cloneAccount(a *entity.Account) *entity.Account {
	clone := *a
	if a.ReferredBy != nil {
		referredBy := *a.ReferredBy
		clone.ReferredBy = &referredBy
	}
	return &clone
}

func cloneTransaction(t *entity.Transaction) *entity.Transaction {
	clone := *t
	if t.SourceEventID != nil {
		eventID := *t.SourceEventID
		clone.SourceEventID = &eventID
	}
	return &clone
}

func cloneWithdrawal(w *entity.WithdrawalRequest) *entity.WithdrawalRequest {
	clone := *w
	if w.ResolvedAt != nil {
		resolvedAt := *w.ResolvedAt
		clone.ResolvedAt = &resolvedAt
	}
	return &clone
}

func cloneEvent(e *entity.EventIdentity) *entity.EventIdentity {
	clone := *e
	return &clone
}

// snapshot captures the full store state for rollback
type storeSnapshot struct {
	accounts          map[uint64]*entity.Account
	transactions      []*entity.Transaction
	withdrawals       map[string]*entity.WithdrawalRequest
	orderedWds        []string
	events            map[string]*entity.EventIdentity
	nextTransactionID uint64
	nextEventRecordID uint64
}

func (s *memoryStore) takeSnapshot() *storeSnapshot {
	snap := &storeSnapshot{
		accounts:          make(map[uint64]*entity.Account, len(s.accounts)),
		transactions:      make([]*entity.Transaction, 0, len(s.transactions)),
		withdrawals:       make(map[string]*entity.WithdrawalRequest, len(s.withdrawals)),
		orderedWds:        append([]string(nil), s.orderedWds...),
		events:            make(map[string]*entity.EventIdentity, len(s.events)),
		nextTransactionID: s.nextTransactionID,
		nextEventRecordID: s.nextEventRecordID,
	}
	for id, a := range s.accounts {
		snap.accounts[id] = cloneAccount(a)
	}
	for _, t := range s.transactions {
		snap.transactions = append(snap.transactions, cloneTransaction(t))
	}
	for id, w := range s.withdrawals {
		snap.withdrawals[id] = cloneWithdrawal(w)
	}
	for id, e := range s.events {
		snap.events[id] = cloneEvent(e)
	}
	return snap
}

func (s *memoryStore) restoreSnapshot(snap *storeSnapshot) {
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.withdrawals = snap.withdrawals
	s.orderedWds = snap.orderedWds
	s.events = snap.events
	s.nextTransactionID = snap.nextTransactionID
	s.nextEventRecordID = snap.nextEventRecordID
}

// fakeTxKey marks a context as transactional in the fake unit of work
type fakeTxKeyType struct{}

var fakeTxKey fakeTxKeyType

type fakeTxState struct {
	snapshot *storeSnapshot
	done     bool
	mu       sync.Mutex
}

// fakeUnitOfWork implements persistence.UnitOfWork over the memory store
type fakeUnitOfWork struct {
	store *memoryStore
}

func newFakeUnitOfWork(store *memoryStore) *fakeUnitOfWork {
	return &fakeUnitOfWork{store: store}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.store.txMu.Lock()
	u.store.mu.Lock()
	snap := u.store.takeSnapshot()
	u.store.txActive = true
	u.store.txAborted = false
	u.store.mu.Unlock()
	return context.WithValue(ctx, fakeTxKey, &fakeTxState{snapshot: snap}), nil
}

// Commit of an aborted transaction discards the work, matching the store's
// behavior of turning COMMIT into ROLLBACK after a failed statement.
func (u *fakeUnitOfWork) Commit(ctx context.Context) error {
	state, ok := ctx.Value(fakeTxKey).(*fakeTxState)
	if !ok {
		return errs.ErrInternalServer
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.done {
		return nil
	}
	state.done = true
	u.store.mu.Lock()
	if u.store.txAborted {
		u.store.restoreSnapshot(state.snapshot)
	}
	u.store.txActive = false
	u.store.txAborted = false
	u.store.mu.Unlock()
	u.store.txMu.Unlock()
	return nil
}

func (u *fakeUnitOfWork) Rollback(ctx context.Context) error {
	state, ok := ctx.Value(fakeTxKey).(*fakeTxState)
	if !ok {
		return errs.ErrInternalServer
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.done {
		return nil
	}
	state.done = true
	u.store.mu.Lock()
	u.store.restoreSnapshot(state.snapshot)
	u.store.txActive = false
	u.store.txAborted = false
	u.store.mu.Unlock()
	u.store.txMu.Unlock()
	return nil
}

func (u *fakeUnitOfWork) GetAccountRepository(context.Context) persistence.AccountRepository {
	return &fakeAccountRepo{store: u.store}
}

func (u *fakeUnitOfWork) GetTransactionRepository(context.Context) persistence.TransactionRepository {
	return &fakeTransactionRepo{store: u.store}
}

func (u *fakeUnitOfWork) GetWithdrawalRepository(context.Context) persistence.WithdrawalRepository {
	return &fakeWithdrawalRepo{store: u.store}
}

func (u *fakeUnitOfWork) GetEventIdentityRepository(context.Context) persistence.EventIdentityRepository {
	return &fakeEventIdentityRepo{store: u.store}
}

// fakeAccountRepo implements persistence.AccountRepository
type fakeAccountRepo struct {
	store *memoryStore
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uint64) (*entity.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return nil, err
	}
	acct, ok := r.store.accounts[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return cloneAccount(acct), nil
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	// The transaction mutex taken at Begin already serializes writers
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) GetByReferralCode(_ context.Context, code string) (*entity.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return nil, err
	}
	for _, acct := range r.store.accounts {
		if acct.ReferralCode == code {
			return cloneAccount(acct), nil
		}
	}
	return nil, errs.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return err
	}
	if _, exists := r.store.accounts[account.ID]; exists {
		r.store.statementFailed()
		return errs.ErrDuplicateAccount
	}
	r.store.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return err
	}
	if _, exists := r.store.accounts[account.ID]; !exists {
		return errs.ErrAccountNotFound
	}
	r.store.accounts[account.ID] = cloneAccount(account)
	return nil
}

// fakeTransactionRepo implements persistence.TransactionRepository
type fakeTransactionRepo struct {
	store *memoryStore
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return err
	}
	r.store.nextTransactionID++
	transaction.ID = r.store.nextTransactionID
	r.store.transactions = append(r.store.transactions, cloneTransaction(transaction))
	return nil
}

func (r *fakeTransactionRepo) ListByAccount(_ context.Context, accountID uint64, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return nil, err
	}
	out := make([]*entity.Transaction, 0)
	for i := len(r.store.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if r.store.transactions[i].AccountID == accountID {
			out = append(out, cloneTransaction(r.store.transactions[i]))
		}
	}
	return out, nil
}

// fakeWithdrawalRepo implements persistence.WithdrawalRepository
type fakeWithdrawalRepo struct {
	store *memoryStore
}

func (r *fakeWithdrawalRepo) Create(_ context.Context, request *entity.WithdrawalRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return err
	}
	r.store.withdrawals[request.ID] = cloneWithdrawal(request)
	r.store.orderedWds = append(r.store.orderedWds, request.ID)
	return nil
}

func (r *fakeWithdrawalRepo) GetByID(_ context.Context, id string) (*entity.WithdrawalRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return nil, err
	}
	request, ok := r.store.withdrawals[id]
	if !ok {
		return nil, errs.ErrWithdrawalNotFound
	}
	return cloneWithdrawal(request), nil
}

func (r *fakeWithdrawalRepo) Update(_ context.Context, request *entity.WithdrawalRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return err
	}
	if _, ok := r.store.withdrawals[request.ID]; !ok {
		return errs.ErrWithdrawalNotFound
	}
	r.store.withdrawals[request.ID] = cloneWithdrawal(request)
	return nil
}

func (r *fakeWithdrawalRepo) ListByAccount(_ context.Context, accountID uint64) ([]*entity.WithdrawalRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return nil, err
	}
	out := make([]*entity.WithdrawalRequest, 0)
	for i := len(r.store.orderedWds) - 1; i >= 0; i-- {
		request := r.store.withdrawals[r.store.orderedWds[i]]
		if request.AccountID == accountID {
			out = append(out, cloneWithdrawal(request))
		}
	}
	return out, nil
}

// fakeEventIdentityRepo implements persistence.EventIdentityRepository
type fakeEventIdentityRepo struct {
	store *memoryStore
}

func (r *fakeEventIdentityRepo) Record(_ context.Context, event *entity.EventIdentity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return err
	}
	if _, exists := r.store.events[event.EventID]; exists {
		r.store.statementFailed()
		return errs.ErrDuplicateEvent
	}
	r.store.nextEventRecordID++
	event.ID = r.store.nextEventRecordID
	r.store.events[event.EventID] = cloneEvent(event)
	return nil
}

func (r *fakeEventIdentityRepo) GetByEventID(_ context.Context, eventID string) (*entity.EventIdentity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return nil, err
	}
	event, ok := r.store.events[eventID]
	if !ok {
		return nil, errs.ErrEventNotFound
	}
	return cloneEvent(event), nil
}

func (r *fakeEventIdentityRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.abortedErr(); err != nil {
		return 0, err
	}
	var removed int64
	for id, event := range r.store.events {
		if event.CreatedAt.Before(cutoff) {
			delete(r.store.events, id)
			removed++
		}
	}
	return removed, nil
}
