package commands

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"codehelper/clients"
	"codehelper/models"
	usagecostservice "codehelper/services/usagecost"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantKind    models.CommandKind
		wantPayload string
	}{
		{
			name:        "explain with payload",
			message:     "explain: def f(): pass",
			wantKind:    models.CommandExplain,
			wantPayload: "def f(): pass",
		},
		{
			name:        "keyword is case-insensitive",
			message:     "EXPLAIN: x = 1",
			wantKind:    models.CommandExplain,
			wantPayload: "x = 1",
		},
		{
			name:        "format with leading whitespace around message",
			message:     "  format:   print('hi')",
			wantKind:    models.CommandFormat,
			wantPayload: "print('hi')",
		},
		{
			name:        "run with no space after colon",
			message:     "run:1/0",
			wantKind:    models.CommandRun,
			wantPayload: "1/0",
		},
		{
			name:        "space between keyword and colon",
			message:     " run : ls",
			wantKind:    models.CommandRun,
			wantPayload: "ls",
		},
		{
			name:        "trailing whitespace in payload is preserved",
			message:     "format: print('hi')  ",
			wantKind:    models.CommandFormat,
			wantPayload: "print('hi')  ",
		},
		{
			name:        "trailing newline in payload is preserved",
			message:     "run: x = 1\n",
			wantKind:    models.CommandRun,
			wantPayload: "x = 1\n",
		},
		{
			name:        "missing payload yields empty string",
			message:     "explain:",
			wantKind:    models.CommandExplain,
			wantPayload: "",
		},
		{
			name:        "no colon yields unknown with raw message",
			message:     "foo bar",
			wantKind:    models.CommandUnknown,
			wantPayload: "foo bar",
		},
		{
			name:        "unrecognized keyword yields unknown with raw message",
			message:     "summarize: x",
			wantKind:    models.CommandUnknown,
			wantPayload: "summarize: x",
		},
		{
			name:        "keyword must match exactly",
			message:     "explain me: x",
			wantKind:    models.CommandUnknown,
			wantPayload: "explain me: x",
		},
		{
			name:        "empty message yields unknown",
			message:     "",
			wantKind:    models.CommandUnknown,
			wantPayload: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCommand(tt.message)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantPayload, got.Payload)
		})
	}
}

func newServiceWithoutExplainer(sandboxClient clients.SandboxClient) *CommandsServiceImpl {
	return NewCommandsService(
		mo.None[clients.ExplainerClient](),
		sandboxClient,
		nil,
		time.Second,
	)
}

func TestCommandsService_ProcessMessage_Format_WrapsCodeInFence(t *testing.T) {
	service := newServiceWithoutExplainer(&clients.MockSandboxClient{})

	result := service.ProcessMessage(context.Background(), "format: print('hi')")

	assert.Equal(t, "```print('hi')```", result.Text)
	assert.False(t, result.IsError)
}

func TestCommandsService_ProcessMessage_Format_KeepsSnippetVerbatim(t *testing.T) {
	service := newServiceWithoutExplainer(&clients.MockSandboxClient{})

	result := service.ProcessMessage(context.Background(), "format: x = 1\n")

	assert.Equal(t, "```x = 1\n```", result.Text)
	assert.False(t, result.IsError)
}

func TestCommandsService_ExecuteCommand_Format_EmptyPayload(t *testing.T) {
	service := newServiceWithoutExplainer(&clients.MockSandboxClient{})

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandFormat, Payload: ""})

	assert.Equal(t, "``````", result.Text)
	assert.False(t, result.IsError)
}

func TestCommandsService_ProcessMessage_Unknown_ReturnsHelpText(t *testing.T) {
	service := newServiceWithoutExplainer(&clients.MockSandboxClient{})

	result := service.ProcessMessage(context.Background(), "foo bar")

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text, "explain:")
	assert.Contains(t, result.Text, "format:")
	assert.Contains(t, result.Text, "run:")
}

func TestCommandsService_ExecuteCommand_Explain_EmptyPayloadReturnsGuidance(t *testing.T) {
	service := newServiceWithoutExplainer(&clients.MockSandboxClient{})

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandExplain, Payload: ""})

	assert.False(t, result.IsError)
	assert.NotEmpty(t, result.Text)
}

func TestCommandsService_ExecuteCommand_Explain_HeuristicIsDeterministic(t *testing.T) {
	service := newServiceWithoutExplainer(&clients.MockSandboxClient{})
	cmd := models.Command{Kind: models.CommandExplain, Payload: "for i in range(3):\n    print(i)"}

	first := service.ExecuteCommand(context.Background(), cmd)
	second := service.ExecuteCommand(context.Background(), cmd)

	assert.False(t, first.IsError)
	assert.NotEmpty(t, first.Text)
	assert.Equal(t, first.Text, second.Text)
}

func TestCommandsService_ExecuteCommand_Explain_DelegatesToCollaborator(t *testing.T) {
	mockExplainer := &clients.MockExplainerClient{}
	mockUsageCost := &usagecostservice.MockUsageCostService{}
	service := NewCommandsService(
		mo.Some[clients.ExplainerClient](mockExplainer),
		&clients.MockSandboxClient{},
		mockUsageCost,
		time.Second,
	)

	mockExplainer.On("GenerateExplanation", mock.Anything, "print('hi')").Return(&clients.ExplanationResponse{
		Text:         "It prints the string hi.",
		InputTokens:  120,
		OutputTokens: 40,
	}, nil)
	mockUsageCost.On("RecordExplainUsage", mock.Anything, 120, 40).Return(decimal.NewFromFloat(0.001), nil)

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandExplain, Payload: "print('hi')"})

	assert.False(t, result.IsError)
	assert.Equal(t, "It prints the string hi.", result.Text)
	mockExplainer.AssertExpectations(t)
	mockUsageCost.AssertExpectations(t)
}

func TestCommandsService_ExecuteCommand_Explain_CollaboratorFailureIsCaught(t *testing.T) {
	mockExplainer := &clients.MockExplainerClient{}
	mockUsageCost := &usagecostservice.MockUsageCostService{}
	service := NewCommandsService(
		mo.Some[clients.ExplainerClient](mockExplainer),
		&clients.MockSandboxClient{},
		mockUsageCost,
		time.Second,
	)

	mockExplainer.On("GenerateExplanation", mock.Anything, "x = 1").Return(nil, fmt.Errorf("request timed out"))

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandExplain, Payload: "x = 1"})

	assert.True(t, result.IsError)
	assert.NotEmpty(t, result.Text)
	mockUsageCost.AssertNotCalled(t, "RecordExplainUsage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommandsService_ExecuteCommand_Run_ReportsStdout(t *testing.T) {
	mockSandbox := &clients.MockSandboxClient{}
	service := newServiceWithoutExplainer(mockSandbox)

	mockSandbox.On("RunSnippet", mock.Anything, "print('hi')").Return(&clients.SandboxResult{
		Stdout:   "hi\n",
		ExitCode: 0,
	}, nil)

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandRun, Payload: "print('hi')"})

	assert.False(t, result.IsError)
	assert.Equal(t, "hi\n", result.Text)
}

func TestCommandsService_ExecuteCommand_Run_EmptyOutputPlaceholder(t *testing.T) {
	mockSandbox := &clients.MockSandboxClient{}
	service := newServiceWithoutExplainer(mockSandbox)

	mockSandbox.On("RunSnippet", mock.Anything, "x = 1").Return(&clients.SandboxResult{ExitCode: 0}, nil)

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandRun, Payload: "x = 1"})

	assert.False(t, result.IsError)
	assert.Equal(t, "(no output)", result.Text)
}

func TestCommandsService_ExecuteCommand_Run_EvaluationFaultIsError(t *testing.T) {
	mockSandbox := &clients.MockSandboxClient{}
	service := newServiceWithoutExplainer(mockSandbox)

	mockSandbox.On("RunSnippet", mock.Anything, "1/0").Return(&clients.SandboxResult{
		Stderr:   "ZeroDivisionError: division by zero",
		ExitCode: 1,
	}, nil)

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandRun, Payload: "1/0"})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text, "ZeroDivisionError")
}

func TestCommandsService_ExecuteCommand_Run_TimeoutIsError(t *testing.T) {
	mockSandbox := &clients.MockSandboxClient{}
	service := newServiceWithoutExplainer(mockSandbox)

	mockSandbox.On("RunSnippet", mock.Anything, "while True: pass").Return(&clients.SandboxResult{
		TimedOut: true,
		ExitCode: -1,
	}, nil)

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandRun, Payload: "while True: pass"})

	assert.True(t, result.IsError)
	assert.NotEmpty(t, result.Text)
}

func TestCommandsService_ExecuteCommand_Run_LaunchFailureIsCaught(t *testing.T) {
	mockSandbox := &clients.MockSandboxClient{}
	service := newServiceWithoutExplainer(mockSandbox)

	mockSandbox.On("RunSnippet", mock.Anything, "print('hi')").Return(nil, fmt.Errorf("no interpreter"))

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandRun, Payload: "print('hi')"})

	assert.True(t, result.IsError)
	assert.NotEmpty(t, result.Text)
}

func TestCommandsService_ExecuteCommand_Run_TruncatedOutputNoted(t *testing.T) {
	mockSandbox := &clients.MockSandboxClient{}
	service := newServiceWithoutExplainer(mockSandbox)

	mockSandbox.On("RunSnippet", mock.Anything, "spam()").Return(&clients.SandboxResult{
		Stdout:    "aaaa",
		ExitCode:  0,
		Truncated: true,
	}, nil)

	result := service.ExecuteCommand(context.Background(), models.Command{Kind: models.CommandRun, Payload: "spam()"})

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text, "[output truncated]")
}
