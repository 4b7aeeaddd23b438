package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"codehelper/clients"
	"codehelper/core"
)

const explainSystemPrompt = "You are a code assistant. Explain the code snippet " +
	"you are given in plain language for a developer. Describe what it does, " +
	"mention notable constructs, and keep the explanation short."

const maxCompletionTokens = 1024

// AnthropicExplainerClient implements clients.ExplainerClient using the
// Anthropic Messages API
type AnthropicExplainerClient struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicExplainerClient creates a new Anthropic-backed explainer client
func NewAnthropicExplainerClient(apiKey string, model anthropic.Model) *AnthropicExplainerClient {
	return &AnthropicExplainerClient{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(30*time.Second),
		),
		model: model,
	}
}

// GenerateExplanation requests a single plain-language explanation for the
// given code snippet. The caller controls the deadline via ctx.
func (c *AnthropicExplainerClient) GenerateExplanation(
	ctx context.Context,
	code string,
) (*clients.ExplanationResponse, error) {
	prompt := fmt.Sprintf("Explain the following code:\n\n%s", code)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxCompletionTokens,
		System: []anthropic.TextBlockParam{
			{Text: explainSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("empty completion in response")
	}

	inputTokens := int(message.Usage.InputTokens)
	outputTokens := int(message.Usage.OutputTokens)
	if inputTokens == 0 {
		inputTokens = core.EstimateTokens(explainSystemPrompt + " " + prompt)
	}
	if outputTokens == 0 {
		outputTokens = core.EstimateTokens(text)
	}

	return &clients.ExplanationResponse{
		Text:         text,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}, nil
}
