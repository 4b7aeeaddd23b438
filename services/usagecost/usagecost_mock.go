package usagecost

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockUsageCostService struct {
	mock.Mock
}

func (m *MockUsageCostService) RecordExplainUsage(
	ctx context.Context,
	inputTokens, outputTokens int,
) (decimal.Decimal, error) {
	args := m.Called(ctx, inputTokens, outputTokens)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUsageCostService) TotalCost() decimal.Decimal {
	args := m.Called()
	return args.Get(0).(decimal.Decimal)
}
