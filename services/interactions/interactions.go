package interactions

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"codehelper/core"
	"codehelper/db"
	"codehelper/models"
)

const maxStoredTextLength = 10000

type InteractionsServiceImpl struct {
	interactionsRepo *db.PostgresInteractionsRepository
}

func NewInteractionsService(repo *db.PostgresInteractionsRepository) *InteractionsServiceImpl {
	return &InteractionsServiceImpl{interactionsRepo: repo}
}

func (s *InteractionsServiceImpl) RecordInteraction(
	ctx context.Context,
	interaction *models.Interaction,
) error {
	log.Printf("📋 Starting to record %s interaction: %s", interaction.CommandKind, interaction.ID)

	if !core.IsValidID(interaction.ID) {
		return fmt.Errorf("interaction ID must be a valid prefixed ULID")
	}
	if interaction.CommandKind == "" {
		return fmt.Errorf("command kind cannot be empty")
	}
	if len(interaction.Message) > maxStoredTextLength {
		interaction.Message = interaction.Message[:maxStoredTextLength]
	}
	if len(interaction.ResponseText) > maxStoredTextLength {
		interaction.ResponseText = interaction.ResponseText[:maxStoredTextLength]
	}

	if err := s.interactionsRepo.InsertInteraction(ctx, interaction); err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}

	log.Printf("📋 Completed successfully - recorded interaction: %s", interaction.ID)
	return nil
}

func (s *InteractionsServiceImpl) GetInteractionByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Interaction], error) {
	log.Printf("📋 Starting to get interaction by ID: %s", id)

	if !core.IsValidID(id) {
		return mo.None[*models.Interaction](), fmt.Errorf("interaction ID must be a valid prefixed ULID")
	}

	interaction, err := s.interactionsRepo.GetInteractionByID(ctx, id)
	if err != nil {
		return mo.None[*models.Interaction](), fmt.Errorf("failed to get interaction: %w", err)
	}

	if interaction == nil {
		log.Printf("📋 Completed successfully - no interaction found with ID: %s", id)
		return mo.None[*models.Interaction](), nil
	}

	log.Printf("📋 Completed successfully - retrieved interaction: %s", id)
	return mo.Some(interaction), nil
}

func (s *InteractionsServiceImpl) GetRecentInteractions(
	ctx context.Context,
	limit int,
) ([]*models.Interaction, error) {
	log.Printf("📋 Starting to get %d recent interactions", limit)

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	interactions, err := s.interactionsRepo.GetRecentInteractions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent interactions: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d interactions", len(interactions))
	return interactions, nil
}
