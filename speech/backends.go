package speech

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/babelink/process"
)

// Backend names.
const (
	BackendSay    = "say"
	BackendESpeak = "espeak"
	BackendSAPI   = "sapi"
)

type tool struct {
	exec    process.Executor
	binary  string
	timeout time.Duration
}

func newTool(exec process.Executor, cfg Config, binary string) tool {
	cfg.ApplyDefaults()
	if cfg.Binary != "" {
		binary = cfg.Binary
	}
	return tool{exec: exec, binary: binary, timeout: cfg.Timeout}
}

func (t tool) run(ctx context.Context, name string, args ...string) error {
	_, err := t.exec.Run(ctx, process.Command{Tool: name, Binary: t.binary, Args: args, Timeout: t.timeout})
	return err
}

// Say speaks with the macOS say command.
type Say struct{ tool }

// NewSay creates the macOS synthesizer.
func NewSay(exec process.Executor, cfg Config) *Say {
	return &Say{newTool(exec, cfg, "say")}
}

func (s *Say) Name() string                       { return BackendSay }
func (s *Say) IsAvailable(_ context.Context) bool { return process.LookPath(s.binary) }

// Speak runs say -v <voice> -r <wpm> <text>.
func (s *Say) Speak(ctx context.Context, text string, v VoiceSettings) error {
	v = v.Normalize()
	return s.run(ctx, "TTS", "-v", sayVoice(v.Gender), "-r", strconv.Itoa(sayRate(v.Speed)), text)
}

func sayVoice(gender string) string {
	if gender == GenderMale {
		return "Alex"
	}
	return "Samantha"
}

// sayRate converts a speed multiplier to words per minute.
func sayRate(speed float64) int { return int(speed * 200) }

// ESpeak speaks with espeak.
type ESpeak struct{ tool }

// NewESpeak creates the Linux synthesizer.
func NewESpeak(exec process.Executor, cfg Config) *ESpeak {
	return &ESpeak{newTool(exec, cfg, "espeak")}
}

func (e *ESpeak) Name() string                       { return BackendESpeak }
func (e *ESpeak) IsAvailable(_ context.Context) bool { return process.LookPath(e.binary) }

// Speak runs espeak -s <wpm> -v <lang>+<m|f> <text>.
func (e *ESpeak) Speak(ctx context.Context, text string, v VoiceSettings) error {
	v = v.Normalize()
	return e.run(ctx, "TTS", "-s", strconv.Itoa(espeakRate(v.Speed)), "-v", espeakVoice(v.Language, v.Gender), text)
}

func espeakVoice(language, gender string) string {
	if gender == GenderMale {
		return language + "+m"
	}
	return language + "+f"
}

// espeakRate converts a speed multiplier to words per minute.
func espeakRate(speed float64) int { return int(speed * 175) }

// SAPI speaks with System.Speech through powershell -Command.
type SAPI struct{ tool }

// NewSAPI creates the Windows synthesizer.
func NewSAPI(exec process.Executor, cfg Config) *SAPI {
	return &SAPI{newTool(exec, cfg, "powershell")}
}

func (s *SAPI) Name() string                       { return BackendSAPI }
func (s *SAPI) IsAvailable(_ context.Context) bool { return process.LookPath(s.binary) }

// Speak runs the SAPI script with the text embedded as a single-quoted string.
func (s *SAPI) Speak(ctx context.Context, text string, v VoiceSettings) error {
	v = v.Normalize()
	return s.run(ctx, "PowerShell TTS", "-Command", sapiScript(text, sapiRate(v.Speed)))
}

const speakScript = `
Add-Type -AssemblyName System.Speech
$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer
$synth.Rate = %d
$synth.Volume = 100
$synth.Speak('%s')
`

func sapiScript(text string, rate int) string {
	return fmt.Sprintf(speakScript, rate, strings.ReplaceAll(text, "'", "''"))
}

// sapiRate maps a speed multiplier onto the SAPI range [-10, 10], 1.0 being 0.
func sapiRate(speed float64) int {
	return min(max(int(speed*5)-5, -10), 10)
}
