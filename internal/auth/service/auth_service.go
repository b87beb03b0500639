package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/repository"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/token"
)

// MinPasswordLength applies to accounts created through CreateUser.
const MinPasswordLength = 8

// UserStore is the user persistence used by AuthService.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
}

type AuthService struct {
	users   UserStore
	tokens  *token.Issuer
	revoked repository.RevocationStore

	cost      int
	dummyOnce sync.Once
	dummyHash []byte
	now       func() time.Time
}

func NewAuthService(users UserStore, tokens *token.Issuer, revoked repository.RevocationStore) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the password and issues a bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		// keep timing close to a real comparison
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	raw, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Session{User: user, Token: raw, ExpiresAt: exp}, nil
}

// Authenticate verifies a raw bearer token and rejects logged-out tokens
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.revoked.Revoke(ctx, tokenID, expiresAt.Sub(s.now()))
}

// CurrentUser returns the user a token was issued to
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CreateUser hashes the password and stores a new account
func (s *AuthService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	email := NormalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q", req.Email)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, name, email, string(hash))
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}
