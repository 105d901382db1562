package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// MockStudentAccountRepository is a mock implementation of StudentAccountRepository.
type MockStudentAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.StudentAccount

	CreateTxFunc                func(ctx context.Context, tx usecase.Transaction, account *domain.StudentAccount) error
	GetByStudentIDFunc          func(ctx context.Context, studentID string) (*domain.StudentAccount, error)
	GetByStudentIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, studentID string) (*domain.StudentAccount, error)
	UpdateBalanceFunc           func(ctx context.Context, tx usecase.Transaction, account *domain.StudentAccount, balance decimal.Decimal, status domain.TuitionStatus, updatedAt time.Time) error
	ListByClassFunc             func(ctx context.Context, classID string, limit, offset int) ([]*domain.StudentAccount, error)
	SumPaymentsFunc             func(ctx context.Context, studentID string) (decimal.Decimal, error)
}

func NewMockStudentAccountRepository() *MockStudentAccountRepository {
	return &MockStudentAccountRepository{
		accounts: make(map[string]*domain.StudentAccount),
	}
}

// Put seeds an account into the mock store.
func (m *MockStudentAccountRepository) Put(account *domain.StudentAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.StudentID] = account
}

func (m *MockStudentAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.StudentAccount) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.StudentID]; ok {
		return domain.ErrDuplicateEnrollment
	}
	m.accounts[account.StudentID] = account
	return nil
}

func (m *MockStudentAccountRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.StudentAccount, error) {
	if m.GetByStudentIDFunc != nil {
		return m.GetByStudentIDFunc(ctx, studentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[studentID]; ok {
		return acc, nil
	}
	return nil, domain.ErrStudentNotFound
}

func (m *MockStudentAccountRepository) GetByStudentIDForUpdate(ctx context.Context, tx usecase.Transaction, studentID string) (*domain.StudentAccount, error) {
	if m.GetByStudentIDForUpdateFunc != nil {
		return m.GetByStudentIDForUpdateFunc(ctx, tx, studentID)
	}
	return m.GetByStudentID(ctx, studentID)
}

func (m *MockStudentAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, account *domain.StudentAccount, balance decimal.Decimal, status domain.TuitionStatus, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, account, balance, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[account.StudentID]
	if !ok {
		return domain.ErrStudentNotFound
	}
	if stored.Version != account.Version {
		return domain.ErrWriteConflict
	}
	stored.AmountDue = balance
	stored.TuitionStatus = status
	stored.Version++
	stored.UpdatedAt = updatedAt
	return nil
}

func (m *MockStudentAccountRepository) ListByClass(ctx context.Context, classID string, limit, offset int) ([]*domain.StudentAccount, error) {
	if m.ListByClassFunc != nil {
		return m.ListByClassFunc(ctx, classID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.StudentAccount
	for _, acc := range m.accounts {
		if acc.ClassID == classID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockStudentAccountRepository) SumPayments(ctx context.Context, studentID string) (decimal.Decimal, error) {
	if m.SumPaymentsFunc != nil {
		return m.SumPaymentsFunc(ctx, studentID)
	}
	return decimal.Zero, nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment

	CreateFunc                   func(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error
	GetByIDFunc                  func(ctx context.Context, id string) (*domain.Payment, error)
	ListByStudentFunc            func(ctx context.Context, studentID string, limit, offset int) ([]*domain.Payment, error)
	CountUnpairedJournalRefsFunc func(ctx context.Context) (int64, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]*domain.Payment, error) {
	if m.ListByStudentFunc != nil {
		return m.ListByStudentFunc(ctx, studentID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.StudentID == studentID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *MockPaymentRepository) CountUnpairedJournalRefs(ctx context.Context) (int64, error) {
	if m.CountUnpairedJournalRefsFunc != nil {
		return m.CountUnpairedJournalRefsFunc(ctx)
	}
	return 0, nil
}

// All returns every payment recorded in the mock.
func (m *MockPaymentRepository) All() []*domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Payment(nil), m.payments...)
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries []*domain.JournalEntry

	CreateFunc  func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListFunc    func(ctx context.Context, category string, limit, offset int) ([]*domain.JournalEntry, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{}
}

func (m *MockJournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrJournalEntryNotFound
}

func (m *MockJournalRepository) List(ctx context.Context, category string, limit, offset int) ([]*domain.JournalEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		if category == "" || e.Category == category {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// All returns every journal entry recorded in the mock.
func (m *MockJournalRepository) All() []*domain.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.JournalEntry(nil), m.entries...)
}

// MockFeeScheduleRepository is a mock implementation of FeeScheduleRepository.
type MockFeeScheduleRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.FeeScheduleEntry

	UpsertFunc     func(ctx context.Context, entry *domain.FeeScheduleEntry) error
	GetByGradeFunc func(ctx context.Context, grade string) (*domain.FeeScheduleEntry, error)
	DeleteFunc     func(ctx context.Context, grade string) error
	ListFunc       func(ctx context.Context, limit, offset int) ([]*domain.FeeScheduleEntry, error)
}

func NewMockFeeScheduleRepository() *MockFeeScheduleRepository {
	return &MockFeeScheduleRepository{
		entries: make(map[string]*domain.FeeScheduleEntry),
	}
}

// Put seeds a fee entry into the mock store.
func (m *MockFeeScheduleRepository) Put(entry *domain.FeeScheduleEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Grade] = entry
}

func (m *MockFeeScheduleRepository) Upsert(ctx context.Context, entry *domain.FeeScheduleEntry) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Grade] = entry
	return nil
}

func (m *MockFeeScheduleRepository) GetByGrade(ctx context.Context, grade string) (*domain.FeeScheduleEntry, error) {
	if m.GetByGradeFunc != nil {
		return m.GetByGradeFunc(ctx, grade)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[grade]; ok {
		return e, nil
	}
	return nil, domain.ErrFeeEntryNotFound
}

func (m *MockFeeScheduleRepository) Delete(ctx context.Context, grade string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, grade)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, grade)
	return nil
}

func (m *MockFeeScheduleRepository) List(ctx context.Context, limit, offset int) ([]*domain.FeeScheduleEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.FeeScheduleEntry
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

// MockRosterRepository is a mock implementation of RosterRepository.
type MockRosterRepository struct {
	mu      sync.RWMutex
	rosters map[string]*domain.ClassRoster

	CreateFunc         func(ctx context.Context, roster *domain.ClassRoster) error
	GetByClassIDFunc   func(ctx context.Context, classID string) (*domain.ClassRoster, error)
	IncrementCountFunc func(ctx context.Context, tx usecase.Transaction, classID string, delta int64) error
	ListFunc           func(ctx context.Context, limit, offset int) ([]*domain.ClassRoster, error)
}

func NewMockRosterRepository() *MockRosterRepository {
	return &MockRosterRepository{
		rosters: make(map[string]*domain.ClassRoster),
	}
}

// Put seeds a roster into the mock store.
func (m *MockRosterRepository) Put(roster *domain.ClassRoster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosters[roster.ClassID] = roster
}

func (m *MockRosterRepository) Create(ctx context.Context, roster *domain.ClassRoster) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, roster)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rosters[roster.ClassID]; ok {
		return domain.ErrDuplicateClass
	}
	m.rosters[roster.ClassID] = roster
	return nil
}

func (m *MockRosterRepository) GetByClassID(ctx context.Context, classID string) (*domain.ClassRoster, error) {
	if m.GetByClassIDFunc != nil {
		return m.GetByClassIDFunc(ctx, classID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rosters[classID]; ok {
		return r, nil
	}
	return nil, domain.ErrClassNotFound
}

func (m *MockRosterRepository) IncrementCount(ctx context.Context, tx usecase.Transaction, classID string, delta int64) error {
	if m.IncrementCountFunc != nil {
		return m.IncrementCountFunc(ctx, tx, classID, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rosters[classID]
	if !ok {
		return domain.ErrClassNotFound
	}
	r.EnrolledCount += delta
	return nil
}

func (m *MockRosterRepository) List(ctx context.Context, limit, offset int) ([]*domain.ClassRoster, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rosters []*domain.ClassRoster
	for _, r := range m.rosters {
		rosters = append(rosters, r)
	}
	return rosters, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", domain.ErrFeeEntryNotFound
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mu    sync.Mutex
	calls []NotifierCall

	NotifyBalanceChangedFunc func(ctx context.Context, studentID string, newBalance decimal.Decimal, newStatus domain.TuitionStatus)
}

// NotifierCall records one notification.
type NotifierCall struct {
	StudentID  string
	NewBalance decimal.Decimal
	NewStatus  domain.TuitionStatus
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyBalanceChanged(ctx context.Context, studentID string, newBalance decimal.Decimal, newStatus domain.TuitionStatus) {
	if m.NotifyBalanceChangedFunc != nil {
		m.NotifyBalanceChangedFunc(ctx, studentID, newBalance, newStatus)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, NotifierCall{StudentID: studentID, NewBalance: newBalance, NewStatus: newStatus})
}

// Calls returns the recorded notifications.
func (m *MockNotifier) Calls() []NotifierCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NotifierCall(nil), m.calls...)
}
