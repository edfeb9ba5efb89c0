package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "tourly/internal/errors"
	"tourly/internal/model"
	"tourly/internal/repository"
)

// ErrNoPasswordUpdatesHere guards the profile-update path: password changes
// have their own endpoint with current-password verification.
var ErrNoPasswordUpdatesHere = apperrors.Validation("This route is not for password updates. Please use /updateMyPassword.")

// ProfileUpdate is the self-service update payload: name and email only.
// Role and password are unreachable from this path by construction.
type ProfileUpdate struct {
	Name  string
	Email string
}

// AdminUserUpdate is the privileged update payload.
type AdminUserUpdate struct {
	Name  string
	Email string
	Role  model.Role
}

// UserService covers profile self-service and the admin user surface.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateMe(ctx context.Context, user *model.User, update ProfileUpdate) (*model.User, error)
	DeleteMe(ctx context.Context, user *model.User) error
	AdminUpdate(ctx context.Context, id uuid.UUID, update AdminUserUpdate) (*model.User, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no user found with that ID")
		}
		return nil, apperrors.Internal(fmt.Errorf("find user: %w", err))
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list users: %w", err))
	}
	return users, nil
}

// UpdateMe applies the permitted profile fields and nothing else.
func (s *userService) UpdateMe(ctx context.Context, user *model.User, update ProfileUpdate) (*model.User, error) {
	if name := strings.TrimSpace(update.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(update.Email); email != "" && email != user.Email {
		if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal(fmt.Errorf("check email: %w", err))
		}
		user.Email = email
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("save user: %w", err))
	}
	return user, nil
}

// DeleteMe soft-deletes: the record stays but vanishes from default lookups,
// which also kills every outstanding token for it at the authentication gate.
func (s *userService) DeleteMe(ctx context.Context, user *model.User) error {
	if err := s.users.Deactivate(ctx, user.ID); err != nil {
		return apperrors.Internal(fmt.Errorf("deactivate user: %w", err))
	}
	return nil
}

// AdminUpdate may touch any of the privileged fields, including role.
func (s *userService) AdminUpdate(ctx context.Context, id uuid.UUID, update AdminUserUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(update.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(update.Email); email != "" {
		user.Email = email
	}
	if update.Role != "" {
		if !update.Role.Valid() {
			return nil, apperrors.Validation("invalid role")
		}
		user.Role = update.Role
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("save user: %w", err))
	}
	return user, nil
}

// AdminDelete deactivates the record; nothing is physically destroyed.
func (s *userService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("deactivate user: %w", err))
	}
	return nil
}
