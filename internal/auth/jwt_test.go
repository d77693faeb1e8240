package auth

import (
	"testing"
	"time"
)

func newTestManager() *Manager {
	return &Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		Issuer:     "sfm-backend",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.NewAccessToken("user-1", "admin")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.UserID())
	}
	if claims.Role != "admin" {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	token, err := m.NewAccessToken("user-1", "staff")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	other := newTestManager()
	other.Secret = []byte("different-secret")
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected error for token signed with another secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := newTestManager()
	m.AccessTTL = -time.Minute

	token, err := m.NewAccessToken("user-1", "staff")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := newTestManager()
	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if err := ComparePassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("ComparePassword error: %v", err)
	}
	if err := ComparePassword(hash, "wrong-pass"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
