package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/farhan/scribe/internal/apperror"
	"github.com/farhan/scribe/internal/auth"
)

// mockUserRepo implements repository.UserRepository in memory with the
// same contract as fsrepo.UserStore: Conflict on duplicate Save,
// NotFound on unknown Get.
type mockUserRepo struct {
	users map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]string{}}
}

func (m *mockUserRepo) LoadAll(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.users))
	for k, v := range m.users {
		out[k] = v
	}
	return out, nil
}

func (m *mockUserRepo) Get(_ context.Context, username string) (string, error) {
	hash, ok := m.users[username]
	if !ok {
		return "", apperror.NotFound(username)
	}
	return hash, nil
}

func (m *mockUserRepo) Save(_ context.Context, username, hash string) error {
	if _, taken := m.users[username]; taken {
		return apperror.Conflict("That username is already taken.")
	}
	m.users[username] = hash
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	sessions, err := auth.NewSessionService("test-secret-0123456789abcdef")
	if err != nil {
		t.Fatalf("NewSessionService() error = %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewAuthService(repo, auth.NewPasswordServiceForTest(4), sessions, logger)
	return svc, repo
}

func TestAuthService_RegisterStoresHashNotPlaintext(t *testing.T) {
	svc, repo := newTestAuthService(t)

	if err := svc.Register(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	hash, ok := repo.users["alice"]
	if !ok {
		t.Fatal("Register() did not store the user")
	}
	if hash == "hunter2" || strings.Contains(hash, "hunter2") {
		t.Error("stored value contains the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("stored value does not look like a bcrypt hash: %q", hash)
	}
}

func TestAuthService_RegisterTrimsUsername(t *testing.T) {
	svc, repo := newTestAuthService(t)

	if err := svc.Register(context.Background(), "  bob  ", "pw"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, ok := repo.users["bob"]; !ok {
		t.Errorf("users = %v, want key %q", repo.users, "bob")
	}
}

func TestAuthService_RegisterEmptyUsername(t *testing.T) {
	svc, repo := newTestAuthService(t)

	for _, username := range []string{"", "   ", "\t"} {
		err := svc.Register(context.Background(), username, "pw")
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Register(%q) error = %v, want ErrValidation", username, err)
		}
	}
	if len(repo.users) != 0 {
		t.Error("a user was stored despite failing validation")
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "first"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	firstHash := repo.users["alice"]

	err := svc.Register(ctx, "alice", "second")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate Register() error = %v, want ErrConflict", err)
	}

	// The first registration's hash must survive the rejected attempt.
	if repo.users["alice"] != firstHash {
		t.Error("stored hash changed after a rejected duplicate registration")
	}
}

func TestAuthService_LoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Error("Login() returned an empty session token")
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(ctx, "alice", "wrong")
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if token != "" {
		t.Error("Login() returned a token despite failing")
	}
}

func TestAuthService_LoginUnknownUserSameError(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// Unknown user and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}
