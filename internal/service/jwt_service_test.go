package service

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresIn, err := svc.IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expected expiry of 3600 seconds, got %d", expiresIn)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Subject != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Fatalf("expected access token type, got %s", claims.TokenType)
	}
}

func TestIssueTokenRejectsEmptyInput(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	if _, _, err := svc.IssueToken("  "); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for blank user id, got %v", err)
	}

	empty := NewJWTService("", time.Hour)
	if _, _, err := empty.IssueToken("user-1"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid without secret, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, _, err := issuer.IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseAccessToken(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid with mismatched secret, got %v", err)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, _, err := svc.IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.ParseAccessToken(tampered); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for tampered token, got %v", err)
	}
}

func TestParseExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Millisecond)
	token, _, err := svc.IssueToken("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}
