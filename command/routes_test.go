package command

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/observability"
	"github.com/kbukum/babelink/server"
)

func newRouteServer(t *testing.T) *server.Server {
	t.Helper()
	return newRouteServerWith(t, server.Config{})
}

func newRouteServerWith(t *testing.T, cfg server.Config) *server.Server {
	t.Helper()
	cfg.ApplyDefaults()
	s, err := server.New(cfg, logger.NewDefault("test"))
	if err != nil {
		t.Fatal(err)
	}
	gin.SetMode(gin.TestMode)
	NewDispatcher(newFixture(t).svc, Options{}).RegisterRoutes(s)
	return s
}

func TestInvokeRoute(t *testing.T) {
	s := newRouteServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		want   string
	}{
		{"translate", "/invoke/translate_text", `{"text":"hi","from":"en","to":"fr"}`, http.StatusOK, `{"data":"[fr] hi"}`},
		{"speak returns null", "/invoke/speak_text", `{"text":"hi"}`, http.StatusOK, `{"data":null}`},
		{"permissions", "/invoke/check_permissions", ``, http.StatusOK, `"screen_capture":true`},
		{"unknown", "/invoke/format_disk", `{}`, http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"bad json", "/invoke/capture_screen", `{`, http.StatusBadRequest, `"code":"DECODE_FAILURE"`},
		{"invalid", "/invoke/capture_screen", `{"x":0,"y":0,"width":0,"height":5}`, http.StatusBadRequest, `"code":"INVALID_INPUT"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			if rr.Code != tt.status || !strings.Contains(rr.Body.String(), tt.want) {
				t.Errorf("got %d %s, want %d containing %s", rr.Code, rr.Body.String(), tt.status, tt.want)
			}
		})
	}
}

func TestInvokeRouteBodyTooLarge(t *testing.T) {
	s := newRouteServerWith(t, server.Config{MaxBodySize: "16B"})
	body := `{"image":"` + strings.Repeat("A", 64) + `"}`

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/invoke/extract_text", strings.NewReader(body)))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	for _, want := range []string{`"code":"INVALID_INPUT"`, "max_body_size"} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Errorf("body %s missing %s", rr.Body.String(), want)
		}
	}
}

func TestCommandsRoute(t *testing.T) {
	s := newRouteServer(t)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/commands", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != len(Names) || body.Data[0] != CaptureScreen {
		t.Errorf("commands = %v", body.Data)
	}
}

func TestInvokeRouteTracesInvocation(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	s := newRouteServer(t)
	req := httptest.NewRequest(http.MethodPost, "/invoke/format_disk", strings.NewReader(`{}`))
	req.Header.Set("X-Request-Id", "req-42")
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	var found bool
	for _, span := range exporter.GetSpans() {
		if span.Name != observability.SpanInvoke {
			continue
		}
		found = true
		attrs := map[attribute.Key]string{}
		for _, kv := range span.Attributes {
			attrs[kv.Key] = kv.Value.Emit()
		}
		if attrs[observability.AttrCommand] != "format_disk" || attrs[observability.AttrRequestID] != "req-42" || attrs[observability.AttrStatus] != "NOT_FOUND" {
			t.Errorf("span attributes = %v", attrs)
		}
	}
	if !found {
		t.Fatal("no invocation span recorded")
	}
}
