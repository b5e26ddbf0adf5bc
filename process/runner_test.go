//go:build !windows

package process_test

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/resilience"
)

func TestAdapterAppliesDefaults(t *testing.T) {
	a := process.NewAdapter(process.Config{Name: "ocr", Timeout: 100 * time.Millisecond, GracePeriod: 100 * time.Millisecond})
	if a.Name() != "ocr" || !a.IsAvailable(context.Background()) {
		t.Fatal("unexpected adapter identity")
	}

	_, err := a.Execute(context.Background(), process.Command{Binary: "sleep", Args: []string{"5"}})
	if errors.CodeOf(err) != errors.ErrCodeTimeout {
		t.Fatalf("expected the adapter timeout to apply, got %v", err)
	}

	// A command-level timeout wins over the adapter default.
	res, err := a.Run(context.Background(), process.Command{Binary: "sleep", Args: []string{"0.2"}, Timeout: 2 * time.Second})
	if err != nil || res.ExitCode != 0 {
		t.Fatalf("expected success with a longer command timeout, got %v", err)
	}
}

func TestRunnerPlain(t *testing.T) {
	runner := process.NewRunner(process.Config{Name: "echo"}, provider.ResilienceConfig{})
	result, err := runner.Run(context.Background(), process.Command{Binary: "echo", Args: []string{"hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Stdout) != "hello\n" {
		t.Fatalf("expected 'hello\\n', got %q", result.Stdout)
	}
	if runner.Name() != "echo" {
		t.Errorf("Name = %q", runner.Name())
	}
}

func TestRunnerNonZeroExitIsNotRetried(t *testing.T) {
	script := writeScript(t, "count.sh", `echo x >> "$0.calls"; exit 1`)
	runner := process.NewRunner(process.Config{Name: "count"}, provider.ResilienceConfig{
		Retry: &resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, BackoffFactor: 1.0},
	})

	_, err := runner.Run(context.Background(), process.Command{Binary: script})
	if errors.CodeOf(err) != errors.ErrCodeProcessExitNonZero {
		t.Fatalf("expected PROCESS_EXIT_NONZERO, got %v", err)
	}
	if n := countLines(t, script+".calls"); n != 1 {
		t.Fatalf("a deterministic tool failure must run once, ran %d times", n)
	}
}

func TestRunnerCircuitBreakerTrips(t *testing.T) {
	runner := process.NewRunner(process.Config{Name: "false"}, provider.ResilienceConfig{
		CircuitBreaker: &resilience.CircuitBreakerConfig{
			Name:             "test-proc-cb",
			MaxFailures:      2,
			Timeout:          time.Second,
			HalfOpenMaxCalls: 1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := runner.Run(context.Background(), process.Command{Binary: "false"}); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	_, err := runner.Run(context.Background(), process.Command{Binary: "false"})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeServiceUnavailable {
		t.Fatalf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
	if !stderrors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen in cause chain, got %v", err)
	}
}

func TestRunnerSuccessDoesNotTripBreaker(t *testing.T) {
	runner := process.NewRunner(process.Config{Name: "echo"}, provider.ResilienceConfig{
		CircuitBreaker: &resilience.CircuitBreakerConfig{Name: "test-proc-success", MaxFailures: 3, Timeout: time.Second},
	})
	for i := 0; i < 5; i++ {
		result, err := runner.Run(context.Background(), process.Command{Binary: "echo", Args: []string{"ok"}})
		if err != nil || result.ExitCode != 0 {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestRunnerWithMiddleware(t *testing.T) {
	var seen []string
	record := func(inner provider.RequestResponse[process.Command, *process.Result]) provider.RequestResponse[process.Command, *process.Result] {
		return provider.NewFunc(inner.Name(), func(ctx context.Context, cmd process.Command) (*process.Result, error) {
			seen = append(seen, cmd.ToolName())
			return inner.Execute(ctx, cmd)
		})
	}
	runner := process.NewRunner(process.Config{Name: "tools"}, provider.ResilienceConfig{},
		provider.WithLogging[process.Command, *process.Result](logger.NewDefault("test")),
		record,
	)

	if _, err := runner.Run(context.Background(), process.Command{Tool: "espeak", Binary: "true"}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != "espeak" {
		t.Fatalf("middleware not applied: %v", seen)
	}
}

func TestExecutorFunc(t *testing.T) {
	var exec process.Executor = process.ExecutorFunc(func(_ context.Context, cmd process.Command) (*process.Result, error) {
		return &process.Result{Stdout: []byte(cmd.Binary)}, nil
	})
	res, err := exec.Run(context.Background(), process.Command{Binary: "say"})
	if err != nil || res.Output() != "say" {
		t.Fatalf("got %v, %v", res, err)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Count(string(data), "\n")
}
