package interactions

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"codehelper/models"
)

type MockInteractionsService struct {
	mock.Mock
}

func (m *MockInteractionsService) RecordInteraction(
	ctx context.Context,
	interaction *models.Interaction,
) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionsService) GetInteractionByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Interaction], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Interaction]), args.Error(1)
}

func (m *MockInteractionsService) GetRecentInteractions(
	ctx context.Context,
	limit int,
) ([]*models.Interaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Interaction), args.Error(1)
}
