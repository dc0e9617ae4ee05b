package mocks

import (
	"context"
	"io"

	"github.com/grachmannico95/momo-ledger/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockXMLProcessor is a testify mock of service.XMLProcessorInterface.
type MockXMLProcessor struct {
	mock.Mock
}

func NewMockXMLProcessor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockXMLProcessor {
	m := &MockXMLProcessor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockXMLProcessor) ProcessStream(ctx context.Context, importID string, reader io.Reader) (domain.ImportStats, error) {
	args := m.Called(ctx, importID, reader)
	return args.Get(0).(domain.ImportStats), args.Error(1)
}
