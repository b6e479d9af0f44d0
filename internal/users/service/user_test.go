package service

import (
	"context"
	"testing"
	"time"

	userserrors "docportal/internal/users/errors"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockUserRepository struct {
	insertFunc      func(ctx context.Context, user *model.User) error
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	findAllFunc     func(ctx context.Context) ([]*model.User, error)
	promoteFunc     func(ctx context.Context, id string) error
}

func (m *mockUserRepository) Insert(ctx context.Context, user *model.User) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, user)
	}
	user.ID = "65f000000000000000000002"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := m.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (m *mockUserRepository) PromoteToAdmin(ctx context.Context, id string) error {
	if m.promoteFunc != nil {
		return m.promoteFunc(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newService(repo *mockUserRepository) UserService {
	return NewUserService(repo, auth.NewTokenManager("test-secret", time.Hour), testConfig())
}

func TestCreate_NormalizesAndStripsRole(t *testing.T) {
	var stored *model.User
	repo := &mockUserRepository{
		insertFunc: func(ctx context.Context, user *model.User) error {
			stored = user
			return nil
		},
	}
	svc := newService(repo)

	err := svc.Create(context.Background(), &model.User{
		Name:  "  Jane  Roe ",
		Email: " Jane@Example.COM",
		Role:  model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Email != "jane@example.com" {
		t.Errorf("email not normalized: %q", stored.Email)
	}
	if stored.Name != "Jane Roe" {
		t.Errorf("name not normalized: %q", stored.Name)
	}
	if stored.Role != "" {
		t.Error("sign-up must never grant a role")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		insertFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}
	svc := newService(repo)

	err := svc.Create(context.Background(), &model.User{Email: "jane@example.com"})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeConflict)
	}
}

func TestIsAdmin(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			switch email {
			case "admin@example.com":
				return &model.User{Email: email, Role: model.RoleAdmin}, nil
			case "user@example.com":
				return &model.User{Email: email}, nil
			default:
				return nil, userserrors.ErrNotFound
			}
		},
	}
	svc := newService(repo)

	tests := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"user@example.com", false},
		{"nobody@example.com", false},
	}
	for _, tt := range tests {
		status, err := svc.IsAdmin(context.Background(), tt.email)
		if err != nil {
			t.Fatalf("IsAdmin(%s): unexpected error: %v", tt.email, err)
		}
		if status.IsAdmin != tt.want {
			t.Errorf("IsAdmin(%s) = %v, want %v", tt.email, status.IsAdmin, tt.want)
		}
	}
}

func TestIssueToken_RegisteredUser(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email}, nil
		},
	}
	svc := newService(repo)

	token, err := svc.IssueToken(context.Background(), "Jane@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatal("expected a signed token")
	}

	// The credential must verify and carry the normalized email.
	tm := auth.NewTokenManager("test-secret", time.Hour)
	email, err := tm.Verify(token.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if email != "jane@example.com" {
		t.Errorf("token email = %q, want normalized form", email)
	}
}

func TestIssueToken_UnknownUserRefused(t *testing.T) {
	svc := newService(&mockUserRepository{})

	_, err := svc.IssueToken(context.Background(), "nobody@example.com")
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeForbidden)
	}
}

func TestPromote_NotFound(t *testing.T) {
	repo := &mockUserRepository{
		promoteFunc: func(ctx context.Context, id string) error {
			return userserrors.ErrNotFound
		},
	}
	svc := newService(repo)

	err := svc.Promote(context.Background(), "65f000000000000000000099")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeNotFound)
	}
}
