package command

import (
	"context"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/ocr"
	"github.com/kbukum/babelink/permission"
	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/sysinfo"
	"github.com/kbukum/babelink/translation"
)

// Command names as invoked by the front-end.
const (
	CaptureScreen    = "capture_screen"
	ExtractText      = "extract_text"
	TranslateText    = "translate_text"
	SpeakText        = "speak_text"
	CheckPermissions = "check_permissions"
	GetSystemInfo    = "get_system_info"
)

// Names lists every command in a stable order.
var Names = []string{CaptureScreen, ExtractText, TranslateText, SpeakText, CheckPermissions, GetSystemInfo}

// Deps are the capability services behind the commands. A nil service makes
// its command fail with the matching entry of SetupErrors.
type Deps struct {
	Capture     *capture.Service
	OCR         *ocr.Service
	Translation *translation.Service
	Speech      *speech.Service
	Permission  *permission.Checker
	SysInfo     *sysinfo.Collector
	// SetupErrors holds, per command name, why its service could not be built.
	SetupErrors map[string]error
}

// Service owns the capability services.
type Service struct {
	deps Deps
}

// NewService creates a Service.
func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

func (s *Service) unavailable(name string) error {
	if err := s.deps.SetupErrors[name]; err != nil {
		return err
	}
	return errors.ServiceUnavailable(name + " command")
}

// CaptureScreen grabs region and returns it as a base64 PNG.
func (s *Service) CaptureScreen(ctx context.Context, region capture.Region) (string, error) {
	if s.deps.Capture == nil {
		return "", s.unavailable(CaptureScreen)
	}
	return s.deps.Capture.Capture(ctx, region)
}

// ExtractText runs OCR on a base64 image.
func (s *Service) ExtractText(ctx context.Context, imageBase64 string) (string, error) {
	if s.deps.OCR == nil {
		return "", s.unavailable(ExtractText)
	}
	return s.deps.OCR.ExtractText(ctx, imageBase64)
}

// TranslateText translates req.Text from req.From to req.To.
func (s *Service) TranslateText(ctx context.Context, req translation.Request) (string, error) {
	if s.deps.Translation == nil {
		return "", s.unavailable(TranslateText)
	}
	return s.deps.Translation.TranslateText(ctx, req)
}

// SpeakText speaks text and returns once playback ends.
func (s *Service) SpeakText(ctx context.Context, text string, v speech.VoiceSettings) error {
	if s.deps.Speech == nil {
		return s.unavailable(SpeakText)
	}
	return s.deps.Speech.SpeakText(ctx, text, v)
}

// CheckPermissions reports screen capture and microphone permissions.
func (s *Service) CheckPermissions(ctx context.Context) (map[string]bool, error) {
	if s.deps.Permission == nil {
		return nil, s.unavailable(CheckPermissions)
	}
	return s.deps.Permission.Check(ctx), nil
}

// GetSystemInfo reports platform, architecture and host facts.
func (s *Service) GetSystemInfo(ctx context.Context) (map[string]string, error) {
	if s.deps.SysInfo == nil {
		return nil, s.unavailable(GetSystemInfo)
	}
	return s.deps.SysInfo.Collect(ctx)
}

// Backend is the external provider a command depends on.
type Backend struct {
	Command  string
	Provider provider.Provider
}

// Backends returns the swappable backends in use, in command order. OCR
// reports the engine the selector would pick right now.
func (s *Service) Backends(ctx context.Context) []Backend {
	var out []Backend
	if s.deps.Capture != nil {
		out = append(out, Backend{CaptureScreen, s.deps.Capture.Capturer()})
	}
	if s.deps.OCR != nil {
		if e, err := s.deps.OCR.Engine(ctx); err == nil {
			out = append(out, Backend{ExtractText, e})
		}
	}
	if s.deps.Translation != nil {
		out = append(out, Backend{TranslateText, s.deps.Translation.Translator()})
	}
	if s.deps.Speech != nil {
		out = append(out, Backend{SpeakText, s.deps.Speech.Synthesizer()})
	}
	return out
}
