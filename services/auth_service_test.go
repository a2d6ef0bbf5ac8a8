package services

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/K-naman-T/techex-ai/models"
	"github.com/K-naman-T/techex-ai/store"
)

// fakeUserSource resolves a single known token.
type fakeUserSource struct {
	token string
	user  models.User
}

func (f *fakeUserSource) UserByToken(_ context.Context, token string) (models.User, error) {
	if token == f.token {
		return f.user, nil
	}
	return models.User{}, store.ErrNotFound
}

// fakeAccountStore keeps accounts and sessions in maps.
type fakeAccountStore struct {
	nextID   int64
	users    map[string]models.User
	sessions map[string]int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		nextID:   1,
		users:    map[string]models.User{},
		sessions: map[string]int64{},
	}
}

func (f *fakeAccountStore) CreateUser(_ context.Context, email, passwordHash, name string) (int64, error) {
	if _, ok := f.users[email]; ok {
		return 0, errors.New("email already registered")
	}
	id := f.nextID
	f.nextID++
	f.users[email] = models.User{ID: id, Email: email, Name: name, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeAccountStore) UserByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeAccountStore) CreateSession(_ context.Context, userID int64, token string) error {
	f.sessions[token] = userID
	return nil
}

func TestAuthenticateGuestMode(t *testing.T) {
	auth := NewAuthenticator(&fakeUserSource{}, true)

	user, err := auth.Authenticate(httptest.NewRequest("POST", "/api/chat", nil))
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !user.Guest || user.Name != "Guest" {
		t.Fatalf("identity = %+v, want guest", user)
	}
}

func TestAuthenticateNoHeaderGuestModeOff(t *testing.T) {
	auth := NewAuthenticator(&fakeUserSource{}, false)

	_, err := auth.Authenticate(httptest.NewRequest("POST", "/api/chat", nil))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	source := &fakeUserSource{
		token: "tok-123",
		user:  models.User{ID: 7, Email: "a@b.c", Name: "Asha"},
	}
	auth := NewAuthenticator(source, true)

	req := httptest.NewRequest("POST", "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer tok-123")

	user, err := auth.Authenticate(req)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != 7 || user.Email != "a@b.c" || user.Guest {
		t.Fatalf("identity = %+v", user)
	}
}

func TestAuthenticateInvalidTokenRejectedEvenInGuestMode(t *testing.T) {
	auth := NewAuthenticator(&fakeUserSource{token: "tok-123"}, true)

	req := httptest.NewRequest("POST", "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer wrong")

	_, err := auth.Authenticate(req)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSignupThenLogin(t *testing.T) {
	accounts := newFakeAccountStore()
	svc := NewAuthService(accounts)

	created, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    " Asha@Example.com ",
		Password: "s3cret",
		Name:     "Asha",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if created.Email != "asha@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if stored := accounts.users["asha@example.com"]; stored.PasswordHash == "s3cret" {
		t.Fatal("password stored in the clear")
	}

	token, user, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("login returned no token")
	}
	if accounts.sessions[token] != user.ID {
		t.Fatalf("session not recorded for user %d", user.ID)
	}
}

func TestSignupRequiresEmailAndPassword(t *testing.T) {
	svc := NewAuthService(newFakeAccountStore())

	if _, err := svc.Signup(context.Background(), models.SignupRequest{Email: "a@b.c"}); err == nil {
		t.Error("signup without password should fail")
	}
	if _, err := svc.Signup(context.Background(), models.SignupRequest{Password: "x"}); err == nil {
		t.Error("signup without email should fail")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := newFakeAccountStore()
	svc := NewAuthService(accounts)

	if _, err := svc.Signup(context.Background(), models.SignupRequest{Email: "a@b.c", Password: "right"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "wrong"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc := NewAuthService(newFakeAccountStore())

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@b.c", Password: "x"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
