package auth

import (
	"testing"
	"time"

	"creamery/internal/core/id"
	"creamery/internal/core/security"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	userID := id.New().String()
	perms := security.DefaultPermissions(security.RoleShiftLead)

	token, expiresAt, err := svc.GenerateAccessToken(
		userID, "lead@creamery.local", string(security.RoleShiftLead),
		perms, []string{id.New().String()}, false,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token must expire in the future")
	}

	uc, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, uc.UserID)
	}
	if uc.Role != string(security.RoleShiftLead) {
		t.Errorf("expected role SHIFT_LEAD, got %s", uc.Role)
	}
	if len(uc.Permissions) != len(perms) {
		t.Errorf("expected %d permissions, got %d", len(perms), len(uc.Permissions))
	}
	if uc.IsAdmin {
		t.Error("shift lead must not be admin")
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(
		id.New().String(), "member@creamery.local", string(security.RoleTeamMember),
		nil, nil, false,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestJWT_ExpiredRejected(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(
		id.New().String(), "member@creamery.local", string(security.RoleTeamMember),
		nil, nil, false,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}
