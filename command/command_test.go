package command

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/ocr"
	"github.com/kbukum/babelink/permission"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/scratch"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/sysinfo"
	"github.com/kbukum/babelink/translation"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-image")

type fakeCapturer struct {
	mu      sync.Mutex
	regions []capture.Region
}

func (f *fakeCapturer) Name() string                     { return "fake-capture" }
func (f *fakeCapturer) IsAvailable(context.Context) bool { return true }
func (f *fakeCapturer) CaptureTo(_ context.Context, r capture.Region, path string) error {
	f.mu.Lock()
	f.regions = append(f.regions, r)
	f.mu.Unlock()
	return os.WriteFile(path, pngBytes, 0o600)
}

type fakeTranslator struct {
	available bool
	got       []translation.Request
}

func (f *fakeTranslator) Name() string                     { return "fake-translate" }
func (f *fakeTranslator) IsAvailable(context.Context) bool { return f.available }
func (f *fakeTranslator) Translate(_ context.Context, req translation.Request) (string, error) {
	f.got = append(f.got, req)
	return "[" + req.To + "] " + req.Text, nil
}

type fakeSynth struct {
	mu   sync.Mutex
	said []string
	v    []speech.VoiceSettings
}

func (f *fakeSynth) Name() string                     { return "fake-speech" }
func (f *fakeSynth) IsAvailable(context.Context) bool { return true }
func (f *fakeSynth) Speak(_ context.Context, text string, v speech.VoiceSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, text)
	f.v = append(f.v, v)
	return nil
}

type fixture struct {
	svc   *Service
	cap   *fakeCapturer
	tr    *fakeTranslator
	synth *fakeSynth
	ocr   []process.Command
}

// newFixture wires every command to in-memory fakes. OCR runs the real
// tesseract engine against an executor that echoes "recognized"; its
// binary path does not exist, so the engine reports itself unavailable.
func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{cap: &fakeCapturer{}, tr: &fakeTranslator{available: true}, synth: &fakeSynth{}}
	arena := scratch.New(scratch.Config{Dir: t.TempDir()})

	var mu sync.Mutex
	exec := process.ExecutorFunc(func(_ context.Context, cmd process.Command) (*process.Result, error) {
		mu.Lock()
		f.ocr = append(f.ocr, cmd)
		mu.Unlock()
		return &process.Result{Stdout: []byte("recognized\n")}, nil
	})
	engines, err := ocr.NewEngines(context.Background(), exec, ocr.Config{Binary: filepath.Join(t.TempDir(), "tesseract")})
	if err != nil {
		t.Fatal(err)
	}

	f.svc = NewService(Deps{
		Capture:     capture.NewService(f.cap, arena),
		OCR:         ocr.NewService(engines, arena, ocr.Config{SkipFormatCheck: true}),
		Translation: translation.NewService(f.tr),
		Speech:      speech.NewService(f.synth, speech.Config{}),
		Permission:  permission.NewChecker("linux", nil, permission.Config{}),
		SysInfo:     sysinfo.NewFor("linux", "amd64", nil, sysinfo.Config{DisableHostFacts: true}),
	})
	return f
}

func b64(data []byte) string { return base64.StdEncoding.EncodeToString(data) }
