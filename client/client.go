package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/command"
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/httpclient"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/translation"
)

// Defaults for reaching a local backend.
const (
	DefaultBaseURL = "http://127.0.0.1:7421"
	// DefaultTimeout covers the longest command, speech, plus slack.
	DefaultTimeout = 6 * time.Minute
)

// Config configures the client.
type Config struct {
	// BaseURL is the backend address.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Token is a bearer JWT, required when the backend has auth enabled.
	Token string `yaml:"token" mapstructure:"token"`
	// Timeout bounds each call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Client invokes backend commands.
type Client struct {
	http *httpclient.Adapter
}

// envelope is either {"data": ...} or {"error": {...}}.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *errors.ErrorBody `json:"error"`
}

// New creates a Client.
func New(cfg Config, opts ...httpclient.Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := httpclient.Config{Name: "babelink backend", BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}
	if cfg.Token != "" {
		hc.Auth = httpclient.BearerAuth(cfg.Token)
	}
	a, err := httpclient.New(hc, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: a}, nil
}

// unwrap turns the backend's error envelope back into the AppError it was
// built from.
func unwrap(resp *httpclient.TypedResponse[envelope], err error) (json.RawMessage, error) {
	if resp != nil && resp.Data.Error != nil {
		return nil, errors.FromResponse(errors.ErrorResponse{Error: *resp.Data.Error}, resp.StatusCode)
	}
	if err != nil {
		return nil, err
	}
	return resp.Data.Data, nil
}

// Invoke runs the command called name. args is JSON-encoded as the request
// body; nil sends an empty object. The raw "data" value is returned.
func (c *Client) Invoke(ctx context.Context, name string, args any) (json.RawMessage, error) {
	if args == nil {
		args = struct{}{}
	}
	return unwrap(httpclient.Post[envelope](c.http, ctx, "/invoke/"+name, args))
}

// Commands lists the commands the backend serves.
func (c *Client) Commands(ctx context.Context) ([]string, error) {
	raw, err := unwrap(httpclient.Get[envelope](c.http, ctx, "/commands"))
	if err != nil {
		return nil, err
	}
	var names []string
	return names, decode(raw, &names)
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.DecodeFailure("backend response", err)
	}
	return nil
}

func invokeAs[T any](c *Client, ctx context.Context, name string, args any) (T, error) {
	var out T
	raw, err := c.Invoke(ctx, name, args)
	if err != nil {
		return out, err
	}
	return out, decode(raw, &out)
}

// CaptureScreen returns the region as a base64 PNG.
func (c *Client) CaptureScreen(ctx context.Context, region capture.Region) (string, error) {
	return invokeAs[string](c, ctx, command.CaptureScreen, map[string]any{"region": region})
}

// ExtractText runs OCR on a base64 image.
func (c *Client) ExtractText(ctx context.Context, imageBase64 string) (string, error) {
	return invokeAs[string](c, ctx, command.ExtractText, map[string]string{"imageBase64": imageBase64})
}

// TranslateText translates req.
func (c *Client) TranslateText(ctx context.Context, req translation.Request) (string, error) {
	return invokeAs[string](c, ctx, command.TranslateText, map[string]any{"request": req})
}

// SpeakText speaks text and returns once playback ends.
func (c *Client) SpeakText(ctx context.Context, text string, v speech.VoiceSettings) error {
	_, err := c.Invoke(ctx, command.SpeakText, map[string]any{"text": text, "settings": v})
	return err
}

// CheckPermissions returns the permission flags.
func (c *Client) CheckPermissions(ctx context.Context) (map[string]bool, error) {
	return invokeAs[map[string]bool](c, ctx, command.CheckPermissions, nil)
}

// GetSystemInfo returns the system information map.
func (c *Client) GetSystemInfo(ctx context.Context) (map[string]string, error) {
	return invokeAs[map[string]string](c, ctx, command.GetSystemInfo, nil)
}
