package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"video-splitter/internal/logging"
	"video-splitter/internal/metrics"
)

// Runner starts an external tool and waits for it. It returns the tool's
// stdout; a non-zero exit is reported as an error carrying stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools as child processes.
type ExecRunner struct {
	// Timeout caps a single invocation. Zero means the invocation is bounded
	// only by the caller's context.
	Timeout time.Duration
}

// ExitError describes a tool that ran but failed.
type ExitError struct {
	Tool   string
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error { return e.Err }

const (
	maxStderr = 2048
	// waitDelay bounds how long Run waits for output pipes after the tool
	// is killed.
	waitDelay = 2 * time.Second
)

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug("exec: %s %s", name, strings.Join(args, " "))

	metrics.ToolInvocationsInProgress.Inc()
	err := cmd.Run()
	metrics.ToolInvocationsInProgress.Dec()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", name, ctxErr)
		}
		return nil, &ExitError{Tool: name, Err: err, Stderr: tail(stderr.String(), maxStderr)}
	}

	return stdout.Bytes(), nil
}

// tail keeps the last n bytes of s; ffmpeg puts the useful line at the end.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// track records one tool operation in the tool metrics.
func track(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ToolInvocationsTotal.WithLabelValues(op, status).Inc()
	metrics.ToolInvocationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return err
}
