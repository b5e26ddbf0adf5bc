package capture

import (
	"context"
	"encoding/base64"
	"os"
	"sync"
	"testing"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/scratch"
)

// fileCapturer writes a fixed payload to the requested path.
type fileCapturer struct {
	payload []byte
	err     error
	paths   []string
}

func (f *fileCapturer) Name() string                       { return "fake" }
func (f *fileCapturer) IsAvailable(_ context.Context) bool { return true }
func (f *fileCapturer) CaptureTo(_ context.Context, _ Region, path string) error {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, f.payload, 0o600)
}

func TestCaptureReturnsBase64(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0x10}
	fc := &fileCapturer{payload: payload}
	svc := NewService(fc, scratch.New(scratch.Config{Dir: t.TempDir()}))

	got, err := svc.Capture(context.Background(), Region{X: 1, Y: 2, Width: 3, Height: 4})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if got != base64.StdEncoding.EncodeToString(payload) {
		t.Errorf("Capture = %q", got)
	}
	decoded, err := base64.StdEncoding.DecodeString(got)
	if err != nil || string(decoded) != string(payload) {
		t.Errorf("round trip mismatch: %v %v", decoded, err)
	}
	if _, err := os.Stat(fc.paths[0]); !os.IsNotExist(err) {
		t.Error("unique scratch file should be removed after capture")
	}
}

func TestCaptureValidation(t *testing.T) {
	svc := NewService(&fileCapturer{payload: []byte("x")}, scratch.New(scratch.Config{Dir: t.TempDir()}))

	tests := []struct {
		name   string
		region Region
		ok     bool
	}{
		{"positive", Region{Width: 1, Height: 1}, true},
		{"negative origin", Region{X: -1920, Y: -10, Width: 100, Height: 100}, true},
		{"zero width", Region{Width: 0, Height: 1}, false},
		{"negative height", Region{Width: 1, Height: -5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Capture(context.Background(), tt.region)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && errors.CodeOf(err) != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestCaptureErrors(t *testing.T) {
	tests := []struct {
		name string
		fc   *fileCapturer
		code errors.ErrorCode
	}{
		{"tool failed", &fileCapturer{err: errors.NonZeroExit("screencapture", 1, []byte("denied"))}, errors.ErrCodeProcessExitNonZero},
		{"tool missing", &fileCapturer{err: errors.ProcessSpawnFailed("screencapture", os.ErrNotExist)}, errors.ErrCodeProcessSpawnFailed},
		{"empty file", &fileCapturer{payload: []byte{}}, errors.ErrCodeIOFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.fc, scratch.New(scratch.Config{Dir: t.TempDir()}))
			got, err := svc.Capture(context.Background(), Region{Width: 1, Height: 1})
			if errors.CodeOf(err) != tt.code {
				t.Fatalf("code = %q, want %q", errors.CodeOf(err), tt.code)
			}
			if got != "" {
				t.Errorf("failed capture returned data %q", got)
			}
		})
	}
}

func TestCaptureToolExitsCleanlyWithoutFile(t *testing.T) {
	svc := NewService(noFileCapturer{}, scratch.New(scratch.Config{Dir: t.TempDir()}))
	_, err := svc.Capture(context.Background(), Region{Width: 1, Height: 1})
	if errors.CodeOf(err) != errors.ErrCodeIOFailure {
		t.Errorf("expected IO_FAILURE, got %v", err)
	}
}

type noFileCapturer struct{}

func (noFileCapturer) Name() string                                    { return "nofile" }
func (noFileCapturer) IsAvailable(context.Context) bool                { return true }
func (noFileCapturer) CaptureTo(context.Context, Region, string) error { return nil }

// barrierCapturer writes its payload and waits until every concurrent capture
// has written before returning, so all reads happen after all writes.
type barrierCapturer struct {
	wrote *sync.WaitGroup
}

func (b barrierCapturer) Name() string                     { return "barrier" }
func (b barrierCapturer) IsAvailable(context.Context) bool { return true }
func (b barrierCapturer) CaptureTo(ctx context.Context, r Region, path string) error {
	// The region width doubles as the payload so each caller knows what it wrote.
	err := os.WriteFile(path, []byte(formatNum(r.Width)), 0o600)
	b.wrote.Done()
	b.wrote.Wait()
	return err
}

func concurrentCaptures(t *testing.T, shared bool) (mismatches int) {
	t.Helper()
	const n = 4
	var wrote sync.WaitGroup
	wrote.Add(n)
	svc := NewService(barrierCapturer{wrote: &wrote}, scratch.New(scratch.Config{Dir: t.TempDir(), Shared: shared}))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(width float64) {
			defer wg.Done()
			got, err := svc.Capture(context.Background(), Region{Width: width, Height: 1})
			want := base64.StdEncoding.EncodeToString([]byte(formatNum(width)))
			if err != nil || got != want {
				mu.Lock()
				mismatches++
				mu.Unlock()
			}
		}(float64(i))
	}
	wg.Wait()
	return mismatches
}

func TestConcurrentCapturesSharedPathCorrupts(t *testing.T) {
	if got := concurrentCaptures(t, true); got == 0 {
		t.Error("expected concurrent captures on a shared path to observe each other's data")
	}
}

func TestConcurrentCapturesUniquePathsIsolated(t *testing.T) {
	if got := concurrentCaptures(t, false); got != 0 {
		t.Errorf("%d captures saw foreign data with unique paths", got)
	}
}
