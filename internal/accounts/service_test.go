package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"sfm-backend/internal/auth"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	byEmail   map[string]User
	byID      map[string]User
	createErr error
}

func (f *fakeRepo) Create(ctx context.Context, user User) error {
	return f.createErr
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return User{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return User{}, mongo.ErrNoDocuments
}

func newTestManager() *auth.Manager {
	return &auth.Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		Issuer:     "sfm-backend",
	}
}

func seedUser(t *testing.T, password string) User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return User{
		ID:           "u1",
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         RoleAdmin,
	}
}

func TestLoginOK(t *testing.T) {
	user := seedUser(t, "correct-horse")
	repo := &fakeRepo{byEmail: map[string]User{user.Email: user}}
	svc := NewService(repo, newTestManager(), time.UTC)

	tokens, err := svc.Login(context.Background(), LoginRequest{Email: "Admin@Example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if tokens.Token == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}
	if tokens.User.ID != "u1" {
		t.Fatalf("expected user echoed back, got %q", tokens.User.ID)
	}

	claims, err := newTestManager().Parse(tokens.Token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID() != "u1" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %q/%q", claims.UserID(), claims.Role)
	}
}

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	user := seedUser(t, "correct-horse")
	repo := &fakeRepo{byEmail: map[string]User{user.Email: user}}
	svc := NewService(repo, newTestManager(), time.UTC)

	_, unknownErr := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	_, wrongErr := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "bad-pass"})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors must be indistinguishable, got %q vs %q", unknownErr, wrongErr)
	}
}

func TestRefreshOK(t *testing.T) {
	user := seedUser(t, "correct-horse")
	repo := &fakeRepo{
		byEmail: map[string]User{user.Email: user},
		byID:    map[string]User{user.ID: user},
	}
	svc := NewService(repo, newTestManager(), time.UTC)

	login, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if refreshed.Token == "" || refreshed.User.ID != user.ID {
		t.Fatalf("expected fresh token pair for %q", user.ID)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := NewService(&fakeRepo{}, newTestManager(), time.UTC)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	manager := newTestManager()
	token, err := manager.NewRefreshToken("gone", RoleStaff)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	svc := NewService(&fakeRepo{}, manager, time.UTC)
	if _, err := svc.Refresh(context.Background(), token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := &fakeRepo{
		createErr: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}},
	}
	svc := NewService(repo, newTestManager(), time.UTC)

	_, err := svc.CreateUser(context.Background(), "Admin", "admin@example.com", "pass", RoleAdmin)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}
