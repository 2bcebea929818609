package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
)

// MockAnalytics simula el repositorio analítico (ClickHouse).
type MockAnalytics struct {
	mock.Mock
}

var _ invoiceDomain.AnalyticsRepository = (*MockAnalytics)(nil)

func (m *MockAnalytics) LogBatch(ctx context.Context, eventType string, invoices []invoiceDomain.Invoice) error {
	args := m.Called(ctx, eventType, invoices)
	return args.Error(0)
}
