package command

import (
	"bytes"
	"encoding/json"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/translation"
	"github.com/kbukum/babelink/util"
)

// Arguments arrive either nested under the parameter name, as the Rust-style
// command signatures declare them ({"region": {...}}), or flat, as the
// front-end sends them ({"x": .., "y": ..}). Both are accepted.

func decodeArgs(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.DecodeFailure("command arguments", err)
	}
	return nil
}

// nested returns the object under key when present, else raw itself.
func nested(raw json.RawMessage, key string) (json.RawMessage, error) {
	var outer map[string]json.RawMessage
	if err := decodeArgs(raw, &outer); err != nil {
		return nil, err
	}
	if inner, ok := outer[key]; ok {
		return inner, nil
	}
	return raw, nil
}

func captureArgs(raw json.RawMessage) (capture.Region, error) {
	var r capture.Region
	body, err := nested(raw, "region")
	if err != nil {
		return r, err
	}
	return r, decodeArgs(body, &r)
}

type extractArgs struct {
	ImageBase64 string `json:"imageBase64"`
	ImageSnake  string `json:"image_base64"`
	Image       string `json:"image"`
}

func extractTextArgs(raw json.RawMessage) (string, error) {
	var a extractArgs
	if err := decodeArgs(raw, &a); err != nil {
		return "", err
	}
	return util.Coalesce(a.ImageBase64, a.ImageSnake, a.Image), nil
}

func translateArgs(raw json.RawMessage) (translation.Request, error) {
	var req translation.Request
	body, err := nested(raw, "request")
	if err != nil {
		return req, err
	}
	return req, decodeArgs(body, &req)
}

type speakArgs struct {
	Text     string                `json:"text"`
	Settings *speech.VoiceSettings `json:"settings"`
	speech.VoiceSettings
}

type speakRequest struct {
	Text  string
	Voice speech.VoiceSettings
}

func speakTextArgs(raw json.RawMessage) (speakRequest, error) {
	var a speakArgs
	if err := decodeArgs(raw, &a); err != nil {
		return speakRequest{}, err
	}
	if a.Settings != nil {
		return speakRequest{Text: a.Text, Voice: *a.Settings}, nil
	}
	return speakRequest{Text: a.Text, Voice: a.VoiceSettings}, nil
}

// noArgs accepts and ignores whatever arguments a parameterless command
// receives.
func noArgs(json.RawMessage) (struct{}, error) {
	return struct{}{}, nil
}
