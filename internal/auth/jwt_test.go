package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Admin(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)

	token, err := manager.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("expected subject 'ops', got %q", claims.Subject)
	}
	if !claims.IsAdmin() {
		t.Errorf("expected admin role, got %q", claims.Role)
	}
	if time.Until(claims.ExpiresAt) <= 0 {
		t.Errorf("expected future expiry, got %v", claims.ExpiresAt)
	}
}

func TestJWTManager_GenerateAndValidate_OtherRole(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)

	token, err := manager.GenerateToken("reader", "viewer")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.IsAdmin() {
		t.Error("viewer token must not be admin")
	}
}

func TestJWTManager_GenerateToken_EmptySubject(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)

	if _, err := manager.GenerateAdminToken(""); err == nil {
		t.Fatal("expected error for empty subject, got nil")
	}
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", -1*time.Hour) // Already expired

	token, err := manager.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}

	_, err = manager.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expiry error, got: %v", err)
	}
}

func TestJWTManager_ValidateToken_InjectedClock(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", time.Hour)

	token, err := manager.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}

	manager.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := manager.ValidateToken(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expiry error, got: %v", err)
	}
}

func TestJWTManager_ValidateToken_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)
	manager2 := NewJWTManager("different-secret-32-chars-long-for-security!!", "opendict-test", 15*time.Minute)

	token, err := manager1.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}

	// Validate with a different secret
	if _, err := manager2.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for invalid signature, got %v", err)
	}
}

func TestJWTManager_ValidateToken_WrongAlgorithm(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)

	claims := jwt.RegisteredClaims{
		Subject:   "ops",
		Issuer:    "opendict-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Fatal("expected error for unsigned token, got nil")
	}
}

func TestJWTManager_ValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)

	malformedTokens := []string{
		"not.a.jwt",
		"invalid-token",
		"header.payload", // Missing signature
	}

	for _, token := range malformedTokens {
		if _, err := manager.ValidateToken(token); err == nil {
			t.Errorf("expected error for malformed token %q, got nil", token)
		}
	}
}

func TestJWTManager_ValidateToken_WrongIssuer(t *testing.T) {
	manager1 := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)
	manager2 := NewJWTManager(testSecret, "wrong-issuer", 15*time.Minute)

	token, err := manager1.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}

	_, err = manager2.ValidateToken(token)
	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Fatalf("expected invalid issuer error, got: %v", err)
	}
}

func TestJWTManager_ValidateToken_EmptyString(t *testing.T) {
	manager := NewJWTManager(testSecret, "opendict-test", 15*time.Minute)

	_, err := manager.ValidateToken("")
	if err == nil {
		t.Fatal("expected error for empty token, got nil")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}
