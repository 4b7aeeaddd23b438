package usagecost

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
)

// Claude API pricing per 1K tokens (approximate)
const (
	ClaudeHaikuInputCostPer1K   = 0.00025 // $0.25 per 1M tokens
	ClaudeHaikuOutputCostPer1K  = 0.00125 // $1.25 per 1M tokens
	ClaudeSonnetInputCostPer1K  = 0.003   // $3.00 per 1M tokens
	ClaudeSonnetOutputCostPer1K = 0.015   // $15.00 per 1M tokens
	ClaudeOpusInputCostPer1K    = 0.015   // $15.00 per 1M tokens
	ClaudeOpusOutputCostPer1K   = 0.075   // $75.00 per 1M tokens
)

// UsageCostServiceImpl keeps in-memory running totals of explainer token
// usage and estimated cost. Totals reset on process restart - the agent is
// stateless between deployments and this is operational telemetry, not
// billing.
type UsageCostServiceImpl struct {
	model anthropic.Model

	mutex             sync.Mutex
	totalInputTokens  int
	totalOutputTokens int
	totalCost         decimal.Decimal
}

func NewUsageCostService(model anthropic.Model) *UsageCostServiceImpl {
	return &UsageCostServiceImpl{
		model:     model,
		totalCost: decimal.Zero,
	}
}

func (s *UsageCostServiceImpl) RecordExplainUsage(
	ctx context.Context,
	inputTokens, outputTokens int,
) (decimal.Decimal, error) {
	log.Printf("📋 Starting to record explain usage: input=%d, output=%d tokens", inputTokens, outputTokens)

	if inputTokens < 0 || outputTokens < 0 {
		return decimal.Zero, fmt.Errorf("token counts cannot be negative")
	}

	cost := s.EstimateCost(inputTokens, outputTokens)

	s.mutex.Lock()
	s.totalInputTokens += inputTokens
	s.totalOutputTokens += outputTokens
	s.totalCost = s.totalCost.Add(cost)
	total := s.totalCost
	s.mutex.Unlock()

	log.Printf("📋 Completed successfully - recorded usage cost $%s (running total $%s)",
		cost.StringFixed(6), total.StringFixed(6))
	return cost, nil
}

// EstimateCost prices the given token counts using per-1K rates for the
// configured model family
func (s *UsageCostServiceImpl) EstimateCost(inputTokens, outputTokens int) decimal.Decimal {
	inputRate, outputRate := ratesForModel(s.model)

	perThousand := decimal.NewFromInt(1000)
	inputCost := decimal.NewFromInt(int64(inputTokens)).Mul(inputRate).Div(perThousand)
	outputCost := decimal.NewFromInt(int64(outputTokens)).Mul(outputRate).Div(perThousand)

	return inputCost.Add(outputCost)
}

// TotalCost returns the running estimated cost since process start
func (s *UsageCostServiceImpl) TotalCost() decimal.Decimal {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.totalCost
}

// TotalTokens returns the running input and output token totals
func (s *UsageCostServiceImpl) TotalTokens() (int, int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.totalInputTokens, s.totalOutputTokens
}

func ratesForModel(model anthropic.Model) (decimal.Decimal, decimal.Decimal) {
	name := strings.ToLower(string(model))
	switch {
	case strings.Contains(name, "haiku"):
		return decimal.NewFromFloat(ClaudeHaikuInputCostPer1K), decimal.NewFromFloat(ClaudeHaikuOutputCostPer1K)
	case strings.Contains(name, "opus"):
		return decimal.NewFromFloat(ClaudeOpusInputCostPer1K), decimal.NewFromFloat(ClaudeOpusOutputCostPer1K)
	default:
		return decimal.NewFromFloat(ClaudeSonnetInputCostPer1K), decimal.NewFromFloat(ClaudeSonnetOutputCostPer1K)
	}
}
