package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"modtok/internal/auth/repository"
	"modtok/internal/auth/transport"
	"modtok/platform/apperr"
	"modtok/platform/logger"
)

type stubRepo struct {
	admins       map[string]repository.Admin
	updatedHash  string
	updateCalled bool
}

func (s *stubRepo) GetAdminByEmail(_ context.Context, email string) (repository.Admin, error) {
	admin, ok := s.admins[email]
	if !ok {
		return repository.Admin{}, apperr.NotFound("admin not found")
	}
	return admin, nil
}

func (s *stubRepo) GetAdminByID(_ context.Context, id uuid.UUID) (repository.Admin, error) {
	for _, admin := range s.admins {
		if admin.ID == id {
			return admin, nil
		}
	}
	return repository.Admin{}, apperr.NotFound("admin not found")
}

func (s *stubRepo) UpdatePassword(_ context.Context, _ uuid.UUID, passwordHash string) error {
	s.updateCalled = true
	s.updatedHash = passwordHash
	return nil
}

type stubAuthConfig struct{}

func (stubAuthConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (stubAuthConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

func newRepoWithAdmin(t *testing.T, email, password string) (*stubRepo, repository.Admin) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := repository.Admin{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Editor",
		PasswordHash: string(hash),
		Roles:        []string{"admin"},
	}
	return &stubRepo{admins: map[string]repository.Admin{email: admin}}, admin
}

func TestLogin_IssuesSignedToken(t *testing.T) {
	repo, admin := newRepoWithAdmin(t, "editor@modtok.cl", "hunter2hunter2")
	svc := New(repo, stubAuthConfig{}, logger.New("test"))

	resp, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "editor@modtok.cl",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Admin.ID != admin.ID {
		t.Fatalf("expected admin %s, got %s", admin.ID, resp.Admin.ID)
	}

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected a valid token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != admin.ID.String() {
		t.Fatalf("expected sub %s, got %v", admin.ID, claims["sub"])
	}
	if claims["type"] != "access" {
		t.Fatalf("expected access token type, got %v", claims["type"])
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo, _ := newRepoWithAdmin(t, "editor@modtok.cl", "hunter2hunter2")
	svc := New(repo, stubAuthConfig{}, logger.New("test"))

	_, errUnknown := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "nobody@modtok.cl",
		Password: "whatever",
	})
	_, errWrong := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "editor@modtok.cl",
		Password: "wrong",
	})

	if apperr.GetKind(errUnknown) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", errUnknown)
	}
	if apperr.GetKind(errWrong) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("error messages must not distinguish the cases: %q vs %q", errUnknown, errWrong)
	}
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	repo, admin := newRepoWithAdmin(t, "editor@modtok.cl", "hunter2hunter2")
	svc := New(repo, stubAuthConfig{}, logger.New("test"))

	err := svc.ChangePassword(context.Background(), admin.ID, transport.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword123",
	})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.updateCalled {
		t.Fatal("password must not change on a failed check")
	}
}

func TestChangePassword_StoresNewHash(t *testing.T) {
	repo, admin := newRepoWithAdmin(t, "editor@modtok.cl", "hunter2hunter2")
	svc := New(repo, stubAuthConfig{}, logger.New("test"))

	err := svc.ChangePassword(context.Background(), admin.ID, transport.ChangePasswordRequest{
		CurrentPassword: "hunter2hunter2",
		NewPassword:     "newpassword123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.updateCalled {
		t.Fatal("expected the new hash to be stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.updatedHash), []byte("newpassword123")) != nil {
		t.Fatal("stored hash does not match the new password")
	}
}
