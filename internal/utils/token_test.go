package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken_Claims(t *testing.T) {
	at, err := NewAccessToken("test-secret", 42, "USER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "USER" {
		t.Errorf("role = %q, want USER", role)
	}
	if time.Until(at.Exp) > 16*time.Minute {
		t.Errorf("expiry too far out: %v", at.Exp)
	}
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "USER", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Errorf("raw length = %d, want 96 hex chars", len(rt.Raw))
	}
	if d := time.Until(rt.Exp); d < 6*24*time.Hour || d > 8*24*time.Hour {
		t.Errorf("expiry = %v, want about 7 days out", rt.Exp)
	}

	other, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if rt.Raw == other.Raw {
		t.Error("two refresh tokens generated the same raw value")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if h1 == HashRefreshRaw("abd") {
		t.Error("distinct inputs hashed to the same value")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
}

func TestNewPNR_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		pnr, err := NewPNR()
		if err != nil {
			t.Fatalf("NewPNR: %v", err)
		}
		if !strings.HasPrefix(pnr, "PNR") {
			t.Fatalf("pnr %q missing PNR prefix", pnr)
		}
		digits := strings.TrimPrefix(pnr, "PNR")
		if len(digits) != 10 {
			t.Fatalf("pnr %q has %d digits, want 10", pnr, len(digits))
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				t.Fatalf("pnr %q contains non-digit %q", pnr, r)
			}
		}
		seen[pnr] = true
	}
	// 100 draws from a 9e9 space colliding would indicate broken randomness.
	if len(seen) < 100 {
		t.Errorf("got %d distinct codes out of 100", len(seen))
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-bcrypt-hash", "hunter22") {
		t.Error("garbage hash accepted")
	}
}
