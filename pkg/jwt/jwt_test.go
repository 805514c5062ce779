package jwt

import (
	"testing"
	"time"

	"smart-bed-allocation/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	hospitalID := uint(2)

	token, tokenID, err := svc.GenerateAccessToken(userID, "city_hospital_admin", 3, &hospitalID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tokenID == "" {
		t.Fatal("Expected non-empty token ID")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Username != "city_hospital_admin" {
		t.Errorf("Expected username city_hospital_admin, got %s", claims.Username)
	}
	if claims.RoleID != 3 {
		t.Errorf("Expected role ID 3, got %d", claims.RoleID)
	}
	if claims.HospitalID == nil || *claims.HospitalID != hospitalID {
		t.Errorf("Expected hospital ID %d, got %v", hospitalID, claims.HospitalID)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("Expected token type %s, got %s", AccessToken, claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Errorf("Expected token ID %s, got %s", tokenID, claims.TokenID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken(uuid.New(), "patient1", 2, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Minute})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})
	token, _, err := svc.GenerateAccessToken(uuid.New(), "patient1", 2, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("Expected validation to fail for expired token")
	}
}
