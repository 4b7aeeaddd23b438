package services

import (
	"context"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"codehelper/models"
)

// CommandsService classifies an inbound message and executes the resulting
// command. ProcessMessage is total: it always returns a well-formed result
// and never propagates a collaborator fault.
type CommandsService interface {
	ProcessMessage(ctx context.Context, message string) *models.ExecutionResult
}

// InteractionsService records handled requests for operational inspection
type InteractionsService interface {
	RecordInteraction(ctx context.Context, interaction *models.Interaction) error
	GetInteractionByID(ctx context.Context, id string) (mo.Option[*models.Interaction], error)
	GetRecentInteractions(ctx context.Context, limit int) ([]*models.Interaction, error)
}

// UsageCostService accounts for explainer collaborator token usage
type UsageCostService interface {
	RecordExplainUsage(ctx context.Context, inputTokens, outputTokens int) (decimal.Decimal, error)
	TotalCost() decimal.Decimal
}
