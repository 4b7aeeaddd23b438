package commands

import (
	"context"

	"github.com/stretchr/testify/mock"

	"codehelper/models"
)

type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) ProcessMessage(ctx context.Context, message string) *models.ExecutionResult {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.ExecutionResult)
}
