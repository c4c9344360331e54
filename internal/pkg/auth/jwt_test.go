package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "unit-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)

	access, refresh, expiresIn, err := svc.GenerateTokenPair("identity-1", "ana@example.com", "student")
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}
	if expiresIn != int(time.Hour.Seconds()) {
		t.Errorf("expected expiresIn %d, got %d", int(time.Hour.Seconds()), expiresIn)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.IdentityID != "identity-1" || claims.Email != "ana@example.com" || claims.Role != "student" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	access, _, _, err := svc.GenerateTokenPair("identity-1", "ana@example.com", "student")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected expired token error, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	access, _, _, err := newTestService(time.Hour).GenerateTokenPair("identity-1", "ana@example.com", "student")
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	if _, err := other.ValidateToken(access); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("unexpected token %q", token)
	}

	for _, header := range []string{"", "Bearer ", "Basic abc", "abc.def.ghi"} {
		if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("header %q: expected format error, got %v", header, err)
		}
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must differ from the password")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("expected the original password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected a wrong password to fail")
	}
}
