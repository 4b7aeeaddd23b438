package usagecost

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExplainUsage_SonnetPricing(t *testing.T) {
	service := NewUsageCostService("claude-3-5-sonnet-20241022")

	cost, err := service.RecordExplainUsage(context.Background(), 1000, 1000)
	require.NoError(t, err)

	// 1K input at $0.003 + 1K output at $0.015
	assert.True(t, cost.Equal(decimal.NewFromFloat(0.018)), "cost = %s", cost)
}

func TestRecordExplainUsage_HaikuPricing(t *testing.T) {
	service := NewUsageCostService("claude-3-haiku-20240307")

	cost, err := service.RecordExplainUsage(context.Background(), 2000, 1000)
	require.NoError(t, err)

	// 2K input at $0.00025 + 1K output at $0.00125
	assert.True(t, cost.Equal(decimal.NewFromFloat(0.00175)), "cost = %s", cost)
}

func TestRecordExplainUsage_AccumulatesTotals(t *testing.T) {
	service := NewUsageCostService("claude-3-5-sonnet-20241022")

	_, err := service.RecordExplainUsage(context.Background(), 1000, 1000)
	require.NoError(t, err)
	_, err = service.RecordExplainUsage(context.Background(), 1000, 1000)
	require.NoError(t, err)

	assert.True(t, service.TotalCost().Equal(decimal.NewFromFloat(0.036)), "total = %s", service.TotalCost())

	inputTokens, outputTokens := service.TotalTokens()
	assert.Equal(t, 2000, inputTokens)
	assert.Equal(t, 2000, outputTokens)
}

func TestRecordExplainUsage_NegativeTokensRejected(t *testing.T) {
	service := NewUsageCostService("claude-3-5-sonnet-20241022")

	_, err := service.RecordExplainUsage(context.Background(), -1, 0)
	assert.Error(t, err)
	assert.True(t, service.TotalCost().IsZero())
}

func TestEstimateCost_UnknownModelDefaultsToSonnetRates(t *testing.T) {
	service := NewUsageCostService("some-future-model")

	cost := service.EstimateCost(1000, 0)
	assert.True(t, cost.Equal(decimal.NewFromFloat(0.003)), "cost = %s", cost)
}
