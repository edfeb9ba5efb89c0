package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "tourly/internal/errors"
	"tourly/internal/model"
	"tourly/internal/repository"
)

// ErrBookingNotFound is returned when a booking lookup misses.
var ErrBookingNotFound = apperrors.NotFound("no booking found with that ID")

// BookingService covers checkout and the booking admin surface. Checkout
// creates the booking directly at the tour's current price; the real payment
// provider sits outside this service.
type BookingService interface {
	Checkout(ctx context.Context, user *model.User, tourID uuid.UUID) (*model.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	ListBookings(ctx context.Context) ([]model.Booking, error)
	ListMyBookings(ctx context.Context, user *model.User) ([]model.Booking, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	tours    repository.TourRepository
}

// NewBookingService creates the booking service.
func NewBookingService(bookings repository.BookingRepository, tours repository.TourRepository) BookingService {
	return &bookingService{bookings: bookings, tours: tours}
}

// Checkout books the tour for the user at its current price.
func (s *bookingService) Checkout(ctx context.Context, user *model.User, tourID uuid.UUID) (*model.Booking, error) {
	tour, err := s.tours.FindByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("find tour: %w", err))
	}

	booking := &model.Booking{
		TourID: tour.ID,
		UserID: user.ID,
		Price:  tour.Price,
		Paid:   true,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create booking: %w", err))
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("find booking: %w", err))
	}
	return booking, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBooking(ctx, id); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("delete booking: %w", err))
	}
	return nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list bookings: %w", err))
	}
	return bookings, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, user *model.User) ([]model.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list bookings: %w", err))
	}
	return bookings, nil
}
