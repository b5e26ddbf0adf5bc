package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/translation"
)

type call struct {
	path   string
	body   map[string]any
	bearer string
}

func stubBackend(t *testing.T, calls *[]call) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		*calls = append(*calls, call{path: r.URL.Path, body: body, bearer: r.Header.Get("Authorization")})

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/invoke/capture_screen":
			_, _ = w.Write([]byte(`{"data":"iVBORw0KGgo="}`))
		case "/invoke/extract_text", "/invoke/translate_text":
			_, _ = w.Write([]byte(`{"data":"hola"}`))
		case "/invoke/speak_text":
			_, _ = w.Write([]byte(`{"data":null}`))
		case "/invoke/check_permissions":
			_, _ = w.Write([]byte(`{"data":{"screen_capture":false,"microphone":true}}`))
		case "/invoke/get_system_info":
			_, _ = w.Write([]byte(`{"data":{"platform":"macos","arch":"aarch64"}}`))
		case "/commands":
			_, _ = w.Write([]byte(`{"data":["capture_screen","extract_text"]}`))
		case "/invoke/translate_missing_key":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":"MISSING_CONFIGURATION","message":"IBM Watson API key not found in environment","retryable":false,"details":{"setting":"IBM_WATSON_API_KEY"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Unknown command","retryable":false}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTypedCommands(t *testing.T) {
	var calls []call
	srv := stubBackend(t, &calls)
	c, err := New(Config{BaseURL: srv.URL, Token: "tok"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	img, err := c.CaptureScreen(ctx, capture.Region{X: 1, Y: 2, Width: 3, Height: 4})
	if err != nil || img != "iVBORw0KGgo=" {
		t.Errorf("CaptureScreen = %q, %v", img, err)
	}
	if text, err := c.ExtractText(ctx, img); err != nil || text != "hola" {
		t.Errorf("ExtractText = %q, %v", text, err)
	}
	if text, err := c.TranslateText(ctx, translation.Request{Text: "hi", From: "en", To: "es"}); err != nil || text != "hola" {
		t.Errorf("TranslateText = %q, %v", text, err)
	}
	if err := c.SpeakText(ctx, "hi", speech.VoiceSettings{Gender: "male", Speed: 1}); err != nil {
		t.Errorf("SpeakText: %v", err)
	}
	perms, err := c.CheckPermissions(ctx)
	if err != nil || !reflect.DeepEqual(perms, map[string]bool{"screen_capture": false, "microphone": true}) {
		t.Errorf("CheckPermissions = %v, %v", perms, err)
	}
	info, err := c.GetSystemInfo(ctx)
	if err != nil || info["platform"] != "macos" {
		t.Errorf("GetSystemInfo = %v, %v", info, err)
	}
	names, err := c.Commands(ctx)
	if err != nil || len(names) != 2 {
		t.Errorf("Commands = %v, %v", names, err)
	}

	region := calls[0].body["region"].(map[string]any)
	if region["width"] != 3.0 || region["x"] != 1.0 {
		t.Errorf("capture body = %v", calls[0].body)
	}
	if calls[1].body["imageBase64"] != "iVBORw0KGgo=" {
		t.Errorf("extract body = %v", calls[1].body)
	}
	if calls[2].body["request"].(map[string]any)["to"] != "es" {
		t.Errorf("translate body = %v", calls[2].body)
	}
	if calls[3].body["settings"].(map[string]any)["gender"] != "male" {
		t.Errorf("speak body = %v", calls[3].body)
	}
	for _, cl := range calls {
		if cl.bearer != "Bearer tok" {
			t.Errorf("%s: Authorization = %q", cl.path, cl.bearer)
		}
	}
}

func TestInvokeErrorEnvelope(t *testing.T) {
	var calls []call
	srv := stubBackend(t, &calls)
	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		code   errors.ErrorCode
		status int
	}{
		{"translate_missing_key", errors.ErrCodeMissingConfiguration, http.StatusInternalServerError},
		{"launch_rocket", errors.ErrCodeNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Invoke(context.Background(), tt.name, nil)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != tt.code || appErr.HTTPStatus != tt.status {
				t.Errorf("got %s/%d, want %s/%d", appErr.Code, appErr.HTTPStatus, tt.code, tt.status)
			}
		})
	}
	if calls[0].bearer != "" {
		t.Errorf("no token configured, got %q", calls[0].bearer)
	}
}

func TestInvokeBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.GetSystemInfo(context.Background())
	if errors.CodeOf(err) != errors.ErrCodeNetworkFailure {
		t.Errorf("code = %q (err %v)", errors.CodeOf(err), err)
	}
}
