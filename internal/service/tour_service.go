package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/internal/cache"
	apperrors "tourly/internal/errors"
	"tourly/internal/model"
	"tourly/internal/repository"
)

const (
	tourListCacheKey = "tours:all"
	tourCacheTTL     = 5 * time.Minute

	metersPerMile = 1609.34
	metersPerKM   = 1000.0
)

// ErrTourNotFound is returned when a tour lookup misses.
var ErrTourNotFound = apperrors.NotFound("no tour found with that ID")

// TourService covers the tour CRUD and geospatial surface. Listing is served
// cache-aside from Redis; every write invalidates the listing.
type TourService interface {
	CreateTour(ctx context.Context, tour *model.Tour) (*model.Tour, error)
	GetTour(ctx context.Context, id uuid.UUID) (*model.Tour, error)
	GetTourBySlug(ctx context.Context, slug string) (*model.Tour, error)
	UpdateTour(ctx context.Context, id uuid.UUID, update *model.Tour) (*model.Tour, error)
	DeleteTour(ctx context.Context, id uuid.UUID) error
	ListTours(ctx context.Context) ([]model.Tour, error)
	ToursWithin(ctx context.Context, distance float64, lat, lng float64, unit string) ([]model.Tour, error)
	Distances(ctx context.Context, lat, lng float64, unit string) ([]repository.TourDistance, error)
}

type tourService struct {
	tours repository.TourRepository
	cache *cache.Client
}

// NewTourService creates the tour service.
func NewTourService(tours repository.TourRepository, cache *cache.Client) TourService {
	return &tourService{tours: tours, cache: cache}
}

// Slugify lowercases and hyphenates a tour name. Exported because the seed
// command derives slugs the same way.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *tourService) validate(tour *model.Tour) error {
	if !tour.Difficulty.Valid() {
		return apperrors.Validation("difficulty must be easy, medium or difficult")
	}
	if tour.Price.IsNegative() || tour.Price.IsZero() {
		return apperrors.Validation("a tour must have a positive price")
	}
	if !tour.PriceDiscount.IsZero() && tour.PriceDiscount.GreaterThanOrEqual(tour.Price) {
		return apperrors.Validation("discount price should be below the regular price")
	}
	return nil
}

// CreateTour derives the slug at the call site and persists the tour.
func (s *tourService) CreateTour(ctx context.Context, tour *model.Tour) (*model.Tour, error) {
	if err := s.validate(tour); err != nil {
		return nil, err
	}
	tour.Slug = Slugify(tour.Name)
	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create tour: %w", err))
	}
	_ = s.cache.Delete(ctx, tourListCacheKey)
	return tour, nil
}

func (s *tourService) GetTour(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	tour, err := s.tours.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("find tour: %w", err))
	}
	return tour, nil
}

func (s *tourService) GetTourBySlug(ctx context.Context, slug string) (*model.Tour, error) {
	tour, err := s.tours.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no tour found with that name")
		}
		return nil, apperrors.Internal(fmt.Errorf("find tour: %w", err))
	}
	return tour, nil
}

// UpdateTour applies non-zero fields from update and re-derives the slug
// when the name changes.
func (s *tourService) UpdateTour(ctx context.Context, id uuid.UUID, update *model.Tour) (*model.Tour, error) {
	tour, err := s.GetTour(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" && update.Name != tour.Name {
		tour.Name = update.Name
		tour.Slug = Slugify(update.Name)
	}
	if update.Duration != 0 {
		tour.Duration = update.Duration
	}
	if update.MaxGroupSize != 0 {
		tour.MaxGroupSize = update.MaxGroupSize
	}
	if update.Difficulty != "" {
		tour.Difficulty = update.Difficulty
	}
	if !update.Price.IsZero() {
		tour.Price = update.Price
	}
	if !update.PriceDiscount.IsZero() {
		tour.PriceDiscount = update.PriceDiscount
	}
	if update.Summary != "" {
		tour.Summary = update.Summary
	}
	if update.Description != "" {
		tour.Description = update.Description
	}
	if update.ImageCover != "" {
		tour.ImageCover = update.ImageCover
	}
	if update.StartAddress != "" {
		tour.StartAddress = update.StartAddress
		tour.StartLat = update.StartLat
		tour.StartLng = update.StartLng
	}

	if err := s.validate(tour); err != nil {
		return nil, err
	}
	if err := s.tours.Save(ctx, tour); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("save tour: %w", err))
	}
	_ = s.cache.Delete(ctx, tourListCacheKey)
	return tour, nil
}

func (s *tourService) DeleteTour(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTour(ctx, id); err != nil {
		return err
	}
	if err := s.tours.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("delete tour: %w", err))
	}
	_ = s.cache.Delete(ctx, tourListCacheKey)
	return nil
}

// ListTours serves the full listing cache-aside.
func (s *tourService) ListTours(ctx context.Context) ([]model.Tour, error) {
	if data, _ := s.cache.Get(ctx, tourListCacheKey); data != nil {
		var cached []model.Tour
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tours, err := s.tours.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list tours: %w", err))
	}

	if payload, err := json.Marshal(tours); err == nil {
		_ = s.cache.Set(ctx, tourListCacheKey, payload, tourCacheTTL)
	}
	return tours, nil
}

func unitToMeters(unit string) (float64, error) {
	switch unit {
	case "mi":
		return metersPerMile, nil
	case "km":
		return metersPerKM, nil
	default:
		return 0, apperrors.Validation("unit must be mi or km")
	}
}

// ToursWithin returns tours starting inside the given radius around a point.
func (s *tourService) ToursWithin(ctx context.Context, distance float64, lat, lng float64, unit string) ([]model.Tour, error) {
	factor, err := unitToMeters(unit)
	if err != nil {
		return nil, err
	}
	tours, err := s.tours.Within(ctx, lat, lng, distance*factor)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("tours within: %w", err))
	}
	return tours, nil
}

// Distances returns all tours with their distance from a point in the
// requested unit, nearest first.
func (s *tourService) Distances(ctx context.Context, lat, lng float64, unit string) ([]repository.TourDistance, error) {
	factor, err := unitToMeters(unit)
	if err != nil {
		return nil, err
	}
	rows, err := s.tours.Distances(ctx, lat, lng)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("tour distances: %w", err))
	}
	for i := range rows {
		rows[i].Distance = rows[i].Distance / factor
	}
	return rows, nil
}
