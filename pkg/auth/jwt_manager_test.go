package auth

import (
	"errors"
	"github.com/google/uuid"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	id := uuid.New()

	token, err := m.Generate(id)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, err := m.AccountID(token)
	if err != nil {
		t.Fatalf("account id: %v", err)
	}
	if got != id {
		t.Fatalf("account id = %s, want %s", got, id)
	}

	exp, err := m.Expiry(token)
	if err != nil {
		t.Fatal(err)
	}
	if d := time.Until(exp); d <= 0 || d > time.Hour {
		t.Fatalf("expiry in %v", d)
	}
}

func TestVerifyRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("other", time.Hour)
	expired := NewJWTManager("secret", -time.Minute)

	foreign, _ := other.Generate(uuid.New())
	stale, _ := expired.Generate(uuid.New())

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"expired":      stale,
		"garbage":      "not-a-jwt",
	} {
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := map[string]bool{
		"Bearer abc": true,
		"bearer abc": true,
		"Basic abc":  false,
		"Bearer":     false,
		"":           false,
	}
	for hdr, ok := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if hdr != "" {
			r.Header.Set("Authorization", hdr)
		}
		token, err := ExtractTokenFromHeader(r)
		if ok && (err != nil || token != "abc") {
			t.Errorf("%q: %q, %v", hdr, token, err)
		}
		if !ok && err == nil {
			t.Errorf("%q accepted", hdr)
		}
	}
}
