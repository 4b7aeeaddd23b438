package interactions

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"codehelper/models"
)

// UnconfiguredInteractionsService stands in when no database is configured.
// Recording is best-effort by contract, so it silently drops records;
// lookups report the missing configuration.
type UnconfiguredInteractionsService struct{}

func NewUnconfiguredInteractionsService() *UnconfiguredInteractionsService {
	return &UnconfiguredInteractionsService{}
}

func (s *UnconfiguredInteractionsService) RecordInteraction(
	ctx context.Context,
	interaction *models.Interaction,
) error {
	return nil
}

func (s *UnconfiguredInteractionsService) GetInteractionByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Interaction], error) {
	return mo.None[*models.Interaction](), fmt.Errorf("interactions store is not configured")
}

func (s *UnconfiguredInteractionsService) GetRecentInteractions(
	ctx context.Context,
	limit int,
) ([]*models.Interaction, error) {
	return nil, fmt.Errorf("interactions store is not configured")
}
