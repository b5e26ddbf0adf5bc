package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kbukum/babelink/errors"
)

type translatePayload struct {
	Text    []string `json:"text"`
	ModelID string   `json:"model_id"`
}

type translateResult struct {
	Translations []struct {
		Translation string `json:"translation"`
	} `json:"translations"`
}

func adapterFor(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	a, err := New(Config{Name: "Translation API", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestPost_DecodesJSON(t *testing.T) {
	a := adapterFor(t, func(w http.ResponseWriter, r *http.Request) {
		var in translatePayload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if r.Method != http.MethodPost || r.URL.Path != "/v3/translate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if in.ModelID != "en-de" || len(in.Text) != 1 {
			t.Errorf("unexpected payload %+v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":[{"translation":"hallo"}]}`))
	})

	resp, err := Post[translateResult](a, context.Background(), "/v3/translate",
		translatePayload{Text: []string{"hello"}, ModelID: "en-de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if len(resp.Data.Translations) != 1 || resp.Data.Translations[0].Translation != "hallo" {
		t.Errorf("unexpected data %+v", resp.Data)
	}
}

func TestGet_AppliesOptions(t *testing.T) {
	a := adapterFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.URL.Query().Get("version"); got != "2018-05-01" {
			t.Errorf("version = %q", got)
		}
		if got := r.Header.Get("X-Watson-Learning-Opt-Out"); got != "true" {
			t.Errorf("opt-out header = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`["en-de","en-fr"]`))
	})

	resp, err := Get[[]string](a, context.Background(), "/v3/models",
		WithQueryParam("version", "2018-05-01"),
		WithHeader("X-Watson-Learning-Opt-Out", "true"),
		WithRequestAuth(BearerAuth("tok")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("models = %v", resp.Data)
	}
}

func TestTypedCall_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   apperrors.ErrorCode
		wantStatus int
		wantData   bool
	}{
		{"client error keeps decoded body", http.StatusNotFound, `{"error":"model not found"}`, apperrors.ErrCodeUpstreamRejected, http.StatusNotFound, true},
		{"server error with text body", http.StatusBadGateway, "upstream down", apperrors.ErrCodeNetworkFailure, http.StatusBadGateway, false},
		{"undecodable success body", http.StatusOK, "<html>maintenance</html>", apperrors.ErrCodeDecodeFailure, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := adapterFor(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			resp, err := Post[map[string]string](a, context.Background(), "/v3/translate", nil)
			if got := apperrors.CodeOf(err); got != tt.wantCode {
				t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
			if tt.wantStatus != 0 && StatusCode(err) != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", StatusCode(err), tt.wantStatus)
			}
			if tt.wantData {
				if resp == nil || resp.Data["error"] != "model not found" {
					t.Errorf("expected the decoded error body, got %+v", resp)
				}
			} else if resp != nil {
				t.Errorf("expected nil response, got %+v", resp)
			}
		})
	}
}

func TestPost_UndecodableBodyIsBadGateway(t *testing.T) {
	a := adapterFor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := Post[translateResult](a, context.Background(), "/v3/translate", nil)
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("expected a 502 AppError, got %v", err)
	}
}

func TestPost_EmptySuccessBody(t *testing.T) {
	a := adapterFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := Post[translateResult](a, context.Background(), "/v3/translate", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent || resp.Data.Translations != nil {
		t.Errorf("unexpected response %+v", resp)
	}
}
