package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"codehelper/clients"
)

const (
	DefaultTimeout        = 5 * time.Second
	DefaultMaxOutputBytes = 64 * 1024
)

// Config controls how snippets are evaluated
type Config struct {
	Interpreter     string        // interpreter binary, e.g. "python3"
	InterpreterArgs []string      // args before the snippet, e.g. ["-I", "-c"]
	Timeout         time.Duration // wall-clock bound per evaluation
	MaxOutputBytes  int           // cap on captured stdout/stderr, each
}

// SubprocessSandboxClient implements clients.SandboxClient by evaluating the
// snippet in a separate interpreter process: stripped environment, temp
// working directory, wall-clock timeout (process killed on expiry) and
// capped captured output. The interface is the isolation boundary - a
// container-backed implementation can replace this one without touching
// the executor.
type SubprocessSandboxClient struct {
	config Config
}

// NewSubprocessSandboxClient creates a sandbox client, filling in defaults
// for any zero-valued config field
func NewSubprocessSandboxClient(config Config) *SubprocessSandboxClient {
	if config.Interpreter == "" {
		config.Interpreter = "python3"
		config.InterpreterArgs = []string{"-I", "-c"}
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxOutputBytes <= 0 {
		config.MaxOutputBytes = DefaultMaxOutputBytes
	}
	return &SubprocessSandboxClient{config: config}
}

// RunSnippet evaluates code and captures its output. Evaluation faults
// (nonzero exit, timeout) are reported in the result; an error is returned
// only when the interpreter process could not be launched at all.
func (c *SubprocessSandboxClient) RunSnippet(ctx context.Context, code string) (*clients.SandboxResult, error) {
	log.Printf("📋 Starting to run snippet (%d bytes) with interpreter: %s", len(code), c.config.Interpreter)

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	args := append(append([]string{}, c.config.InterpreterArgs...), code)
	cmd := exec.CommandContext(runCtx, c.config.Interpreter, args...)
	cmd.Env = []string{}
	cmd.Dir = os.TempDir()
	cmd.WaitDelay = 2 * time.Second

	stdout := newCappedBuffer(c.config.MaxOutputBytes)
	stderr := newCappedBuffer(c.config.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	result := &clients.SandboxResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: stdout.Capped() || stderr.Capped(),
		Duration:  duration,
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		log.Printf("⚠️ Snippet evaluation timed out after %v", c.config.Timeout)
		return result, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			log.Printf("📋 Completed successfully - snippet exited with code %d in %v", result.ExitCode, duration)
			return result, nil
		}
		return nil, fmt.Errorf("failed to launch sandbox process: %w", runErr)
	}

	log.Printf("📋 Completed successfully - snippet ran in %v", duration)
	return result, nil
}
