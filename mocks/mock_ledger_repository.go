package mocks

import (
	"context"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a testify mock of domain.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

func NewMockLedgerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLedgerRepository {
	m := &MockLedgerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLedgerRepository) CreateAccount(ctx context.Context, name, email, passwordHash string, role domain.Role, balance decimal.Decimal) (int64, error) {
	args := m.Called(ctx, name, email, passwordHash, role, balance)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockLedgerRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	acc, _ := args.Get(0).(*domain.Account)
	return acc, args.Error(1)
}

func (m *MockLedgerRepository) ImportBatch(ctx context.Context, candidates []domain.Candidate) (int, error) {
	args := m.Called(ctx, candidates)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) Transfer(ctx context.Context, senderID, receiverID int64, amount decimal.Decimal, txType domain.TransactionType) (int64, error) {
	args := m.Called(ctx, senderID, receiverID, amount, txType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	txs, _ := args.Get(0).([]domain.Transaction)
	return txs, args.Error(1)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *MockLedgerRepository) GetByIDIndexed(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *MockLedgerRepository) GetByPrincipal(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	txs, _ := args.Get(0).([]domain.Transaction)
	return txs, args.Error(1)
}

func (m *MockLedgerRepository) UpdateType(ctx context.Context, id int64, txType domain.TransactionType) (*domain.Transaction, error) {
	args := m.Called(ctx, id, txType)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}
