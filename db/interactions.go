package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"codehelper/models"
)

type PostgresInteractionsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for the interactions table
var interactionColumns = []string{
	"id",
	"command_kind",
	"message",
	"response_text",
	"is_error",
	"duration_ms",
	"created_at",
}

func NewPostgresInteractionsRepository(db *sqlx.DB, schema string) *PostgresInteractionsRepository {
	return &PostgresInteractionsRepository{db: db, schema: schema}
}

func (r *PostgresInteractionsRepository) InsertInteraction(
	ctx context.Context,
	interaction *models.Interaction,
) error {
	returningStr := strings.Join(interactionColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.interactions (id, command_kind, message, response_text, is_error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		r.schema, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		interaction.ID,
		interaction.CommandKind,
		interaction.Message,
		interaction.ResponseText,
		interaction.IsError,
		interaction.DurationMS,
	).StructScan(interaction)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	return nil
}

func (r *PostgresInteractionsRepository) GetInteractionByID(
	ctx context.Context,
	id string,
) (*models.Interaction, error) {
	returningStr := strings.Join(interactionColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.interactions
		WHERE id = $1`,
		returningStr, r.schema)

	interaction := &models.Interaction{}
	err := r.db.QueryRowxContext(ctx, query, id).StructScan(interaction)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return nil, nil // Interaction not found
		}
		return nil, fmt.Errorf("failed to get interaction by ID: %w", err)
	}

	return interaction, nil
}

func (r *PostgresInteractionsRepository) GetRecentInteractions(
	ctx context.Context,
	limit int,
) ([]*models.Interaction, error) {
	returningStr := strings.Join(interactionColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.interactions
		ORDER BY created_at DESC
		LIMIT $1`,
		returningStr, r.schema)

	interactions := []*models.Interaction{}
	if err := r.db.SelectContext(ctx, &interactions, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent interactions: %w", err)
	}

	return interactions, nil
}
