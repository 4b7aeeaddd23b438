package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/samber/mo"

	"codehelper/clients"
	"codehelper/models"
	"codehelper/services"
	"codehelper/utils"
)

const DefaultCollaboratorTimeout = 30 * time.Second

const helpText = "I didn't recognize that command. I can help you with:\n" +
	"• explain: <code> - explain what a code snippet does\n" +
	"• format: <code> - wrap a snippet in a fenced code block\n" +
	"• run: <code> - run a small snippet and show its output"

const explainGuidanceText = "Please provide a code snippet after the explain: prefix, " +
	"for example: explain: for i in range(3): print(i)"

const explainUnavailableText = "Sorry, I couldn't generate an explanation right now. " +
	"The explanation service is unavailable - please try again later."

const runUnavailableText = "Sorry, I couldn't run that snippet right now. " +
	"The evaluation service is unavailable - please try again later."

type CommandsServiceImpl struct {
	explainerClient     mo.Option[clients.ExplainerClient]
	sandboxClient       clients.SandboxClient
	usageCostService    services.UsageCostService
	collaboratorTimeout time.Duration
}

// NewCommandsService creates the command dispatch core. The explainer
// collaborator is an optional capability selected once at process start;
// mo.None means explain requests use the local heuristic.
func NewCommandsService(
	explainerClient mo.Option[clients.ExplainerClient],
	sandboxClient clients.SandboxClient,
	usageCostService services.UsageCostService,
	collaboratorTimeout time.Duration,
) *CommandsServiceImpl {
	if collaboratorTimeout <= 0 {
		collaboratorTimeout = DefaultCollaboratorTimeout
	}
	return &CommandsServiceImpl{
		explainerClient:     explainerClient,
		sandboxClient:       sandboxClient,
		usageCostService:    usageCostService,
		collaboratorTimeout: collaboratorTimeout,
	}
}

// ParseCommand classifies an inbound message into a Command. Parsing is
// total: every message maps to exactly one variant, falling back to
// CommandUnknown when no recognized prefix precedes the first colon.
func ParseCommand(message string) models.Command {
	// Only leading whitespace is stripped; the payload keeps its trailing
	// whitespace so format/run receive the snippet verbatim
	trimmed := strings.TrimLeftFunc(message, unicode.IsSpace)

	idx := strings.IndexByte(trimmed, ':')
	if idx < 0 {
		return models.Command{Kind: models.CommandUnknown, Payload: message}
	}

	keyword := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
	payload := strings.TrimLeftFunc(trimmed[idx+1:], unicode.IsSpace)

	switch keyword {
	case "explain":
		return models.Command{Kind: models.CommandExplain, Payload: payload}
	case "format":
		return models.Command{Kind: models.CommandFormat, Payload: payload}
	case "run":
		return models.Command{Kind: models.CommandRun, Payload: payload}
	default:
		return models.Command{Kind: models.CommandUnknown, Payload: message}
	}
}

// ProcessMessage classifies and executes a single inbound message
func (s *CommandsServiceImpl) ProcessMessage(ctx context.Context, message string) *models.ExecutionResult {
	cmd := ParseCommand(message)
	log.Printf("📋 Starting to process %s command: %s", cmd.Kind, utils.TruncateString(utils.FirstLine(message), 80))

	result := s.ExecuteCommand(ctx, cmd)

	log.Printf("📋 Completed successfully - %s command handled (is_error=%t)", cmd.Kind, result.IsError)
	return result
}

// ExecuteCommand produces a text result for a classified command. Every
// branch is total: collaborator faults are converted into an error-flagged
// result, never propagated.
func (s *CommandsServiceImpl) ExecuteCommand(ctx context.Context, cmd models.Command) *models.ExecutionResult {
	switch cmd.Kind {
	case models.CommandFormat:
		return s.executeFormat(cmd.Payload)
	case models.CommandExplain:
		return s.executeExplain(ctx, cmd.Payload)
	case models.CommandRun:
		return s.executeRun(ctx, cmd.Payload)
	case models.CommandUnknown:
		return &models.ExecutionResult{Text: helpText, IsError: false}
	default:
		// unreachable for parsed commands; treat as unknown
		return &models.ExecutionResult{Text: helpText, IsError: false}
	}
}

func (s *CommandsServiceImpl) executeFormat(code string) *models.ExecutionResult {
	return &models.ExecutionResult{
		Text:    "```" + code + "```",
		IsError: false,
	}
}

func (s *CommandsServiceImpl) executeExplain(ctx context.Context, code string) *models.ExecutionResult {
	if strings.TrimSpace(code) == "" {
		return &models.ExecutionResult{Text: explainGuidanceText, IsError: false}
	}

	if !s.explainerClient.IsPresent() {
		return &models.ExecutionResult{Text: ExplainHeuristically(code), IsError: false}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.collaboratorTimeout)
	defer cancel()

	response, err := s.explainerClient.MustGet().GenerateExplanation(callCtx, code)
	if err != nil {
		log.Printf("❌ Explainer collaborator failed: %v", err)
		return &models.ExecutionResult{Text: explainUnavailableText, IsError: true}
	}

	if s.usageCostService != nil {
		if _, err := s.usageCostService.RecordExplainUsage(ctx, response.InputTokens, response.OutputTokens); err != nil {
			log.Printf("⚠️ Failed to record explain usage: %v", err)
		}
	}

	return &models.ExecutionResult{Text: response.Text, IsError: false}
}

func (s *CommandsServiceImpl) executeRun(ctx context.Context, code string) *models.ExecutionResult {
	callCtx, cancel := context.WithTimeout(ctx, s.collaboratorTimeout)
	defer cancel()

	result, err := s.sandboxClient.RunSnippet(callCtx, code)
	if err != nil {
		log.Printf("❌ Sandbox collaborator failed: %v", err)
		return &models.ExecutionResult{Text: runUnavailableText, IsError: true}
	}

	if result.TimedOut {
		return &models.ExecutionResult{
			Text:    "Execution timed out. The snippet was stopped before it finished.",
			IsError: true,
		}
	}

	if result.ExitCode != 0 {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = fmt.Sprintf("exit code %d", result.ExitCode)
		}
		return &models.ExecutionResult{
			Text:    "Execution failed:\n" + detail,
			IsError: true,
		}
	}

	output := result.Stdout
	if strings.TrimSpace(output) == "" {
		output = "(no output)"
	}
	if result.Truncated {
		output += "\n[output truncated]"
	}
	return &models.ExecutionResult{Text: output, IsError: false}
}
