package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, cfg Config) *Service[*Claims] {
	t.Helper()
	svc, err := NewCommandService(cfg)
	if err != nil {
		t.Fatalf("NewCommandService: %v", err)
	}
	return svc
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Secret: "s"}
	cfg.ApplyDefaults()
	if cfg.Method != HS256 {
		t.Errorf("Method = %q", cfg.Method)
	}
	if cfg.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Secret: "s", Method: HS256}, false},
		{"hs512", Config{Secret: "s", Method: HS512}, false},
		{"missing secret", Config{Method: HS256}, true},
		{"rsa", Config{Secret: "s", Method: "RS256"}, true},
		{"negative ttl", Config{Secret: "s", Method: HS256, TokenTTL: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueAndParse(t *testing.T) {
	svc := newTestService(t, Config{Secret: "shared", Issuer: "babelink", Audience: []string{"babelink-server"}})

	token, err := svc.Issue(NewClaims("babelinkctl"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token %q is not a compact JWT", token)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "babelinkctl" || claims.Issuer != "babelink" {
		t.Errorf("claims = %+v", claims.RegisteredClaims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected time claims to be stamped")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != DefaultTokenTTL {
		t.Errorf("ttl = %v", got)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	a := newTestService(t, Config{Secret: "one"})
	b := newTestService(t, Config{Secret: "two"})

	token, err := a.Issue(NewClaims("ui"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestParse_Expired(t *testing.T) {
	svc := newTestService(t, Config{Secret: "s", TokenTTL: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.Issue(NewClaims("ui"))
	if err != nil {
		t.Fatal(err)
	}

	svc.now = time.Now
	_, err = svc.Parse(token)
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestParse_IssuerMismatch(t *testing.T) {
	issuer := newTestService(t, Config{Secret: "s", Issuer: "someone-else"})
	verifier := newTestService(t, Config{Secret: "s", Issuer: "babelink"})

	token, _ := issuer.Issue(NewClaims("ui"))
	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected issuer mismatch")
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestService(t, Config{Secret: "s", Method: HS256})
	other := gojwt.NewWithClaims(gojwt.SigningMethodHS512, NewClaims("ui"))
	token, err := other.SignedString([]byte("s"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Parse(token); err == nil {
		t.Fatal("expected algorithm mismatch")
	}
}

func TestParse_Garbage(t *testing.T) {
	svc := newTestService(t, Config{Secret: "s"})
	if _, err := svc.Parse("not-a-token"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidatorFunc(t *testing.T) {
	svc := newTestService(t, Config{Secret: "s"})
	token, _ := svc.Issue(NewClaims("ui"))

	v, err := svc.ValidatorFunc()(token)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	claims, ok := v.(*Claims)
	if !ok || claims.Subject != "ui" {
		t.Errorf("validator returned %#v", v)
	}
}

func TestNewService_InvalidConfig(t *testing.T) {
	if _, err := NewCommandService(Config{}); err == nil {
		t.Fatal("expected error without secret")
	}
}
