package httpclient

import (
	"net/http"
	"testing"
)

func TestCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  string
	}{
		{"bearer", BearerAuth("my-token"), "Bearer my-token"},
		{"empty bearer", BearerAuth(""), ""},
		{"watson api key", BasicAuth("apikey", "secret"), "Basic YXBpa2V5OnNlY3JldA=="},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "http://example.com/v3/translate", http.NoBody)
			if err != nil {
				t.Fatal(err)
			}
			if tt.creds != nil {
				tt.creds(req)
			}
			if got := req.Header.Get("Authorization"); got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}
