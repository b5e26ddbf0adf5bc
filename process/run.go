package process

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/observability"
)

// Executor runs external commands. Adapter and Runner implement it; tests
// substitute fakes.
type Executor interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, cmd Command) (*Result, error)

// Run calls f.
func (f ExecutorFunc) Run(ctx context.Context, cmd Command) (*Result, error) { return f(ctx, cmd) }

// Run executes a subprocess and waits for it to complete.
//
// Errors are AppErrors: PROCESS_SPAWN_FAILED when the binary cannot be
// started, TIMEOUT when cmd.Timeout or the caller's deadline expires,
// PROCESS_EXIT_NONZERO (returned together with the Result) when the tool
// exits with a non-zero status. A cancelled process group gets SIGTERM and,
// after the grace period, SIGKILL.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	tool := cmd.ToolName()
	if cmd.Binary == "" {
		return nil, errors.InvalidInput("binary", "process binary is required")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanProcess)
	defer span.End()
	span.SetAttributes(attribute.String(observability.AttrTool, tool))

	runCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}

	c := exec.CommandContext(runCtx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}

	cleanup := prepare(c, gracePeriod)
	defer cleanup()

	log := logger.Get("process").WithContext(ctx)
	start := time.Now()
	if err := c.Start(); err != nil {
		log.Debug("process spawn failed", logger.MergeWithError(logger.Fields(logger.FieldTool, tool), err))
		appErr := errors.ProcessSpawnFailed(tool, err)
		observability.SetSpanError(ctx, appErr)
		return &Result{ExitCode: -1}, appErr
	}
	err := c.Wait()
	duration := time.Since(start)

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: duration,
	}

	observability.SetSpanAttribute(ctx, observability.AttrExitCode, result.ExitCode)
	fields := logger.DurationFields("process.run", duration)
	fields[logger.FieldTool] = tool
	fields[logger.FieldExitCode] = result.ExitCode

	if err = classify(ctx, runCtx, tool, result, err); err != nil {
		observability.SetSpanError(ctx, err)
		fields["code"] = string(errors.CodeOf(err))
		log.Debug("process failed", fields)
		return result, err
	}
	log.Debug("process finished", fields)
	return result, nil
}

// classify turns the Wait error into an AppError.
func classify(parent, runCtx context.Context, tool string, result *Result, err error) error {
	if ctxErr := runCtx.Err(); ctxErr != nil {
		// A deadline owned by the command or by the caller is a timeout; a
		// plain cancellation by the caller is not.
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			return errors.Timeout(tool).WithCause(ctxErr)
		}
		return errors.Internal(parent.Err())
	}
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.NonZeroExit(tool, result.ExitCode, result.Stderr).WithCause(err)
	}
	if stderrors.Is(err, exec.ErrWaitDelay) && result.ExitCode == 0 {
		// The tool exited cleanly but left a child holding its output open.
		return nil
	}
	return errors.Internal(err)
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}

// LookPath reports whether binary resolves to an executable.
func LookPath(binary string) bool {
	if binary == "" {
		return false
	}
	_, err := exec.LookPath(binary)
	return err == nil
}
