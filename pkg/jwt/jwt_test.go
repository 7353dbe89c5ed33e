package jwt

import (
	"testing"
	"time"

	"medical-appointment-api/config"

	"github.com/google/uuid"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "user@example.com", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a token ID")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "staff" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "user@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, RefreshToken)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testService().GenerateAccessToken(uuid.New(), "user@example.com", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTService(config.JWTConfig{
		Secret:       "different-secret",
		AccessExpiry: 15 * time.Minute,
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", "staff")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	if _, err := testService().ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for a malformed token")
	}
}
