package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"sfm-backend/internal/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
)

type Service struct {
	repo     Repository
	tokens   *auth.Manager
	location *time.Location
}

func NewService(repo Repository, tokens *auth.Manager, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		location: location,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return TokenResponse{}, ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh mints a fresh token pair from a valid refresh token. The user is
// re-read so a role change or deletion takes effect on the next refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	claims, err := s.tokens.Parse(strings.TrimSpace(refreshToken))
	if err != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return TokenResponse{}, ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}

	return s.issueTokens(user)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	user, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) CreateUser(ctx context.Context, name, email, password, role string) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	if role != RoleAdmin && role != RoleStaff {
		role = RoleStaff
	}

	now := time.Now().In(s.location)
	user := User{
		ID:           primitive.NewObjectID().Hex(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) issueTokens(user User) (TokenResponse, error) {
	access, err := s.tokens.NewAccessToken(user.ID, user.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	refresh, err := s.tokens.NewRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{Token: access, RefreshToken: refresh, User: user}, nil
}
