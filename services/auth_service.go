package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/K-naman-T/techex-ai/models"
	"github.com/K-naman-T/techex-ai/store"

	"github.com/google/uuid"
)

// Authenticator resolves the requesting user. The deployment chooses the
// implementation: token auth against the account store, or the kiosk guest
// identity for walk-up visitors.
type Authenticator interface {
	Authenticate(r *http.Request) (models.UserIdentity, error)
}

// UserSource resolves auth tokens to accounts.
type UserSource interface {
	UserByToken(ctx context.Context, token string) (models.User, error)
}

// AccountStore is what signup/login need from the datastore.
type AccountStore interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (int64, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	CreateSession(ctx context.Context, userID int64, token string) error
}

type tokenAuthenticator struct {
	users     UserSource
	guestMode bool
}

// NewAuthenticator creates the token authenticator. With guestMode on,
// requests without an Authorization header resolve to a guest identity
// instead of being rejected; a header that is present but invalid is always
// rejected.
func NewAuthenticator(users UserSource, guestMode bool) Authenticator {
	return &tokenAuthenticator{users: users, guestMode: guestMode}
}

func guestIdentity() models.UserIdentity {
	return models.UserIdentity{Name: "Guest", Guest: true}
}

func (a *tokenAuthenticator) Authenticate(r *http.Request) (models.UserIdentity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if a.guestMode {
			return guestIdentity(), nil
		}
		return models.UserIdentity{}, fmt.Errorf("%w: missing authorization header", ErrUnauthorized)
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" || a.users == nil {
		return models.UserIdentity{}, fmt.Errorf("%w: malformed authorization header", ErrUnauthorized)
	}

	user, err := a.users.UserByToken(r.Context(), token)
	if err != nil {
		return models.UserIdentity{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return models.UserIdentity{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// AuthService implements the account endpoints.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.UserIdentity, error)
	Login(ctx context.Context, req models.LoginRequest) (string, models.UserIdentity, error)
}

type authServiceImpl struct {
	accounts AccountStore
}

// NewAuthService creates the account service.
func NewAuthService(accounts AccountStore) AuthService {
	return &authServiceImpl{accounts: accounts}
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *authServiceImpl) Signup(ctx context.Context, req models.SignupRequest) (models.UserIdentity, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return models.UserIdentity{}, fmt.Errorf("email and password are required")
	}

	id, err := s.accounts.CreateUser(ctx, email, hashPassword(req.Password), req.Name)
	if err != nil {
		return models.UserIdentity{}, fmt.Errorf("could not create account: %w", err)
	}
	return models.UserIdentity{ID: id, Email: email, Name: req.Name}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req models.LoginRequest) (string, models.UserIdentity, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.accounts.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", models.UserIdentity{}, fmt.Errorf("%w: unknown account", ErrUnauthorized)
	}
	if err != nil {
		return "", models.UserIdentity{}, fmt.Errorf("could not look up account: %w", err)
	}
	if user.PasswordHash != hashPassword(req.Password) {
		return "", models.UserIdentity{}, fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}

	token := uuid.New().String()
	if err := s.accounts.CreateSession(ctx, user.ID, token); err != nil {
		return "", models.UserIdentity{}, fmt.Errorf("could not create session: %w", err)
	}
	return token, models.UserIdentity{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}
