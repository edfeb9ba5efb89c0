package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/internal/model"
)

// RatingSummary is the aggregate used to refresh a tour's rating fields.
type RatingSummary struct {
	Average  float64
	Quantity int
}

// ReviewRepository defines persistence operations over reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Save(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Review, error)
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error)
	Summarize(ctx context.Context, tourID uuid.UUID) (*RatingSummary, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, "id = ?", id).Error
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Where("tour_id = ?", tourID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Summarize computes the current average and count of ratings for a tour.
func (r *reviewRepository) Summarize(ctx context.Context, tourID uuid.UUID) (*RatingSummary, error) {
	var row struct {
		Average  *float64
		Quantity int
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS quantity").
		Where("tour_id = ?", tourID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	summary := &RatingSummary{Quantity: row.Quantity}
	if row.Average != nil {
		summary.Average = *row.Average
	} else {
		// no reviews yet, keep the seeded default
		summary.Average = 4.5
	}
	return summary, nil
}
