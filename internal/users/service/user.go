package service

import (
	"context"
	"errors"

	govalidator "github.com/go-playground/validator/v10"

	userserrors "docportal/internal/users/errors"
	"docportal/internal/users/repository"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
	IsAdmin(ctx context.Context, email string) (*model.AdminStatus, error)
	IssueToken(ctx context.Context, email string) (*model.AccessToken, error)
	Promote(ctx context.Context, id string) error
}

type userService struct {
	repo     repository.UserRepository
	tokens   *auth.TokenManager
	validate *govalidator.Validate
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		tokens:   tokens,
		validate: govalidator.New(),
		cfg:      cfg,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.Name = sanitizer.NormalizeName(user.Name)
	user.Role = ""

	if err := s.validate.Struct(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return apperrors.Conflict("User with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID, "email", user.Email)
	return nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

// IsAdmin reports the stored role; an unknown email is simply not an admin.
func (s *userService) IsAdmin(ctx context.Context, email string) (*model.AdminStatus, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email cannot be empty")
	}

	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return &model.AdminStatus{IsAdmin: false}, nil
		}
		s.cfg.Log.Error("Failed to look up user", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return &model.AdminStatus{IsAdmin: user.IsAdmin()}, nil
}

// IssueToken mints a bearer credential for a registered user. Unregistered
// emails are refused: sign-up must happen before the first token.
func (s *userService) IssueToken(ctx context.Context, email string) (*model.AccessToken, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email query parameter is required")
	}

	normalized := sanitizer.NormalizeEmail(email)
	if _, err := s.repo.FindByEmail(ctx, normalized); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.Forbidden("forbidden access")
		}
		s.cfg.Log.Error("Failed to look up user for token", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	token, err := s.tokens.Issue(normalized)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	return &model.AccessToken{AccessToken: token}, nil
}

func (s *userService) Promote(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.PromoteToAdmin(ctx, id); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to promote user", "id", id, "error", err)
		return apperrors.Internal("Failed to promote user", err)
	}

	s.cfg.Log.Info("User promoted to admin", "id", id)
	return nil
}
