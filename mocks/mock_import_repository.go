package mocks

import (
	"context"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockImportRepository is a testify mock of domain.ImportRepository.
type MockImportRepository struct {
	mock.Mock
}

func NewMockImportRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImportRepository {
	m := &MockImportRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockImportRepository) CreateImport(ctx context.Context, importID string) error {
	return m.Called(ctx, importID).Error(0)
}

func (m *MockImportRepository) GetImport(ctx context.Context, importID string) (*domain.Import, error) {
	args := m.Called(ctx, importID)
	imp, _ := args.Get(0).(*domain.Import)
	return imp, args.Error(1)
}

func (m *MockImportRepository) CompleteImport(ctx context.Context, importID string, stats domain.ImportStats) error {
	return m.Called(ctx, importID, stats).Error(0)
}

func (m *MockImportRepository) FailImport(ctx context.Context, importID string, reason string) error {
	return m.Called(ctx, importID, reason).Error(0)
}

func (m *MockImportRepository) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockImportRepository) MarkEventProcessed(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}
