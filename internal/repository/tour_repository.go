package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/internal/model"
)

// TourDistance pairs a tour with its distance from a query point.
type TourDistance struct {
	model.Tour
	Distance float64 `json:"distance"`
}

// TourRepository defines persistence operations over tours.
type TourRepository interface {
	Create(ctx context.Context, tour *model.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*model.Tour, error)
	Save(ctx context.Context, tour *model.Tour) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Tour, error)
	Within(ctx context.Context, lat, lng, radiusMeters float64) ([]model.Tour, error)
	Distances(ctx context.Context, lat, lng float64) ([]TourDistance, error)
}

type tourRepository struct {
	db *gorm.DB
}

// NewTourRepository builds a GORM-backed repository.
func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) Create(ctx context.Context, tour *model.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	var tour model.Tour
	if err := r.db.WithContext(ctx).First(&tour, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) FindBySlug(ctx context.Context, slug string) (*model.Tour, error) {
	var tour model.Tour
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tour).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) Save(ctx context.Context, tour *model.Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

func (r *tourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tour{}, "id = ?", id).Error
}

func (r *tourRepository) List(ctx context.Context) ([]model.Tour, error) {
	var tours []model.Tour
	if err := r.db.WithContext(ctx).Order("name").Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

// Within returns tours whose start location lies inside the radius around
// the given point. MySQL's ST_Distance_Sphere works on SRID 4326 points.
func (r *tourRepository) Within(ctx context.Context, lat, lng, radiusMeters float64) ([]model.Tour, error) {
	var tours []model.Tour
	err := r.db.WithContext(ctx).
		Where("ST_Distance_Sphere(POINT(start_lng, start_lat), POINT(?, ?)) <= ?", lng, lat, radiusMeters).
		Find(&tours).Error
	if err != nil {
		return nil, err
	}
	return tours, nil
}

// Distances returns all tours annotated with their distance in meters from
// the given point, nearest first.
func (r *tourRepository) Distances(ctx context.Context, lat, lng float64) ([]TourDistance, error) {
	var rows []TourDistance
	err := r.db.WithContext(ctx).
		Model(&model.Tour{}).
		Select("tours.*, ST_Distance_Sphere(POINT(start_lng, start_lat), POINT(?, ?)) AS distance", lng, lat).
		Order("distance").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
