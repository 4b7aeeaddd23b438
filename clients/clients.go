package clients

import (
	"context"
	"time"
)

// ExplanationResponse is a single text completion from the explainer collaborator
type ExplanationResponse struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// ExplainerClient generates a plain-language explanation for a code snippet.
// Implementations must honor the context deadline.
type ExplainerClient interface {
	GenerateExplanation(ctx context.Context, code string) (*ExplanationResponse, error)
}

// SandboxResult captures the outcome of evaluating a snippet.
// A fault during evaluation (nonzero exit, timeout) is reported here,
// not as an error - errors are reserved for failures to launch at all.
type SandboxResult struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	TimedOut  bool
	Truncated bool
	Duration  time.Duration
}

// SandboxClient executes a snippet in an isolated environment with its own
// resource and time bounds. It must return even when the snippet fails.
type SandboxClient interface {
	RunSnippet(ctx context.Context, code string) (*SandboxResult, error)
}
