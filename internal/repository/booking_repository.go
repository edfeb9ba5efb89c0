package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/internal/model"
)

// BookingRepository defines persistence operations over bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository builds a GORM-backed repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Preload("Tour").First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).Preload("Tour").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).Preload("Tour").Where("user_id = ?", userID).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
