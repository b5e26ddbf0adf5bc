package app

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/babelink/bootstrap"
	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/command"
	"github.com/kbukum/babelink/config"
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/translation"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Name != "babelink" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Server.Addr() != "127.0.0.1:7421" {
		t.Errorf("addr = %q", cfg.Server.Addr())
	}
	if cfg.Speech.Timeout != 5*time.Minute || cfg.OCR.Timeout != time.Minute || cfg.Capture.Timeout != 30*time.Second {
		t.Errorf("tool timeouts = %v %v %v", cfg.Speech.Timeout, cfg.OCR.Timeout, cfg.Capture.Timeout)
	}
	if cfg.Permission.Timeout != 5*time.Second || cfg.SysInfo.Timeout != 20*time.Second {
		t.Errorf("probe timeouts = %v %v", cfg.Permission.Timeout, cfg.SysInfo.Timeout)
	}
	if cfg.Translation.Timeout != 30*time.Second {
		t.Errorf("translation timeout = %v", cfg.Translation.Timeout)
	}
	if cfg.Scratch.Dir != os.TempDir() || cfg.Scratch.Shared {
		t.Errorf("scratch = %+v", cfg.Scratch)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown command policy", func(c *Config) { c.Commands = map[string]command.Policy{"rm_rf": {}} }},
		{"negative command timeout", func(c *Config) { c.Commands = map[string]command.Policy{command.SpeakText: {Timeout: -1}} }},
		{"missing scratch dir", func(c *Config) { c.Scratch.Dir = "/definitely/not/here" }},
		{"negative speech queue", func(c *Config) { c.Speech.MaxConcurrent = -1 }},
		{"bad port", func(c *Config) { c.Server.Port = 99999 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	yml := `
name: babelink
environment: development
server:
  port: 9000
speech:
  max_concurrent: 1
commands:
  extract_text:
    timeout: 90s
translation:
  url: https://example.invalid
`
	if err := os.WriteFile(file, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BABELINK_TRANSLATION_URL", "https://override.invalid")
	t.Setenv("BABELINK_SCRATCH_SHARED", "true")

	cfg, err := Load(config.WithConfigFile(file), config.WithEnvFile(filepath.Join(dir, "none.env")))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9000 || cfg.Speech.MaxConcurrent != 1 {
		t.Errorf("yaml values not loaded: %+v %+v", cfg.Server, cfg.Speech)
	}
	if cfg.Commands[command.ExtractText].Timeout != 90*time.Second {
		t.Errorf("command policy = %+v", cfg.Commands)
	}
	if cfg.Translation.URL != "https://override.invalid" {
		t.Errorf("env override lost: %q", cfg.Translation.URL)
	}
	if !cfg.Scratch.Shared {
		t.Error("BABELINK_SCRATCH_SHARED not applied")
	}
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	cfg := &Config{}
	cfg.Scratch.Dir = t.TempDir()
	cfg.Server.Port = port
	cfg.ApplyDefaults()
	return cfg
}

func TestBuildServiceUnsupportedPlatform(t *testing.T) {
	cfg := testConfig(t)
	svc := BuildService(context.Background(), "plan9", "amd64", NewExecutor(cfg, nil), cfg)

	_, err := svc.CaptureScreen(context.Background(), capture.Region{Width: 10, Height: 10})
	if errors.CodeOf(err) != errors.ErrCodeUnsupportedPlatform {
		t.Errorf("capture code = %q", errors.CodeOf(err))
	}
	if err := svc.SpeakText(context.Background(), "hi", speech.VoiceSettings{}); errors.CodeOf(err) != errors.ErrCodeUnsupportedPlatform {
		t.Errorf("speech code = %q", errors.CodeOf(err))
	}

	perms, err := svc.CheckPermissions(context.Background())
	if err != nil || !perms["screen_capture"] || !perms["microphone"] {
		t.Errorf("permissions = %v, %v", perms, err)
	}
	info, err := svc.GetSystemInfo(context.Background())
	if err != nil || info["platform"] != "plan9" || info["arch"] != "x86_64" {
		t.Errorf("system info = %v, %v", info, err)
	}
}

func TestBuildServiceLinux(t *testing.T) {
	cfg := testConfig(t)
	cfg.Translation.APIKey = ""
	t.Setenv("IBM_WATSON_API_KEY", "")
	svc := BuildService(context.Background(), "linux", "arm64", NewExecutor(cfg, nil), cfg)

	names := map[string]string{}
	for _, b := range svc.Backends(context.Background()) {
		names[b.Command] = b.Provider.Name()
	}
	want := map[string]string{
		command.CaptureScreen: "gnome-screenshot",
		command.ExtractText:   "tesseract",
		command.TranslateText: "watson",
		command.SpeakText:     "espeak",
	}
	for k, v := range want {
		if names[k] != v {
			t.Errorf("%s backend = %q, want %q", k, names[k], v)
		}
	}

	_, err := svc.TranslateText(context.Background(), translation.Request{Text: "hello", From: "en", To: "de"})
	if errors.CodeOf(err) != errors.ErrCodeMissingConfiguration {
		t.Errorf("translate without key: %v", err)
	}
}

func TestNewRegistersComponents(t *testing.T) {
	cfg := testConfig(t)
	b, err := NewFor(context.Background(), "linux", "amd64", cfg,
		bootstrap.WithLogger(logger.NewDefault("test")),
		bootstrap.WithSummaryOutput(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, h := range b.Components.HealthAll(context.Background()) {
		names = append(names, h.Name)
	}
	if want := []string{"telemetry", "commands", "http-server"}; !slices.Equal(names, want) {
		t.Errorf("components = %v, want %v", names, want)
	}
	if len(b.Summary.Commands()) != 4 {
		t.Errorf("tracked commands = %v", b.Summary.Commands())
	}
	if got := b.Dispatcher.Commands(); len(got) != len(command.Names) {
		t.Errorf("dispatcher commands = %v", got)
	}
}

func TestRunTaskServesCommands(t *testing.T) {
	cfg := testConfig(t)
	b, err := NewFor(context.Background(), "linux", "amd64", cfg,
		bootstrap.WithLogger(logger.NewDefault("test")),
		bootstrap.WithSummaryOutput(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	err = b.RunTask(context.Background(), func(ctx context.Context) error {
		got, err := b.Dispatcher.Invoke(ctx, command.GetSystemInfo, nil)
		if err != nil {
			return err
		}
		if got.(map[string]string)["platform"] != "linux" {
			t.Errorf("system info = %v", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
