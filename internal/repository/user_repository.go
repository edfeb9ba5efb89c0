package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/internal/model"
)

// UserRepository defines persistence operations over identity records.
// Every lookup is scoped to active rows: a soft-deleted user is invisible
// here even when a valid token still names them.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("active = ?", true)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.active(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.active(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetToken resolves a hashed reset secret. The expiry check lives in
// the query so an expired pair behaves exactly like a missing one.
func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	var user model.User
	err := r.active(ctx).
		Where("password_reset_token = ?", tokenHash).
		Where("password_reset_expires > ?", now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists the full record, including fields cleared to NULL.
func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("*").
		Omit("id", "created_at").
		Updates(user).Error
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.active(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
