package clients

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockExplainerClient struct {
	mock.Mock
}

func (m *MockExplainerClient) GenerateExplanation(ctx context.Context, code string) (*ExplanationResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExplanationResponse), args.Error(1)
}

type MockSandboxClient struct {
	mock.Mock
}

func (m *MockSandboxClient) RunSnippet(ctx context.Context, code string) (*SandboxResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SandboxResult), args.Error(1)
}
