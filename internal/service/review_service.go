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

var (
	// ErrReviewNotFound is returned when a review lookup misses.
	ErrReviewNotFound = apperrors.NotFound("no review found with that ID")
	// ErrNotReviewOwner guards edits: only the author or an admin may touch a review.
	ErrNotReviewOwner = apperrors.Forbidden("You can only modify your own reviews")
)

// ReviewService covers review CRUD. Every write explicitly recomputes the
// parent tour's rating aggregate; there is no hidden hook chain.
type ReviewService interface {
	CreateReview(ctx context.Context, user *model.User, tourID uuid.UUID, text string, rating int) (*model.Review, error)
	UpdateReview(ctx context.Context, user *model.User, id uuid.UUID, text string, rating int) (*model.Review, error)
	DeleteReview(ctx context.Context, user *model.User, id uuid.UUID) error
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListTourReviews(ctx context.Context, tourID uuid.UUID) ([]model.Review, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	tours   repository.TourRepository
}

// NewReviewService creates the review service.
func NewReviewService(reviews repository.ReviewRepository, tours repository.TourRepository) ReviewService {
	return &reviewService{reviews: reviews, tours: tours}
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.Validation("rating must be between 1 and 5")
	}
	return nil
}

// CreateReview stores the review and refreshes the tour's rating fields.
func (s *reviewService) CreateReview(ctx context.Context, user *model.User, tourID uuid.UUID, text string, rating int) (*model.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperrors.Validation("a review must have content")
	}

	tour, err := s.tours.FindByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("find tour: %w", err))
	}

	review := &model.Review{
		Review: text,
		Rating: rating,
		TourID: tour.ID,
		UserID: user.ID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("you have already reviewed this tour")
		}
		return nil, apperrors.Internal(fmt.Errorf("create review: %w", err))
	}

	if err := s.refreshTourRatings(ctx, tour); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview edits an owned review and refreshes the aggregate.
func (s *reviewService) UpdateReview(ctx context.Context, user *model.User, id uuid.UUID, text string, rating int) (*model.Review, error) {
	review, err := s.ownedReview(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if text != "" {
		review.Review = text
	}
	if rating != 0 {
		if err := validRating(rating); err != nil {
			return nil, err
		}
		review.Rating = rating
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("save review: %w", err))
	}

	tour, err := s.tours.FindByID(ctx, review.TourID)
	if err == nil {
		if err := s.refreshTourRatings(ctx, tour); err != nil {
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview removes an owned review and refreshes the aggregate.
func (s *reviewService) DeleteReview(ctx context.Context, user *model.User, id uuid.UUID) error {
	review, err := s.ownedReview(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return apperrors.Internal(fmt.Errorf("delete review: %w", err))
	}

	tour, err := s.tours.FindByID(ctx, review.TourID)
	if err == nil {
		return s.refreshTourRatings(ctx, tour)
	}
	return nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list reviews: %w", err))
	}
	return reviews, nil
}

func (s *reviewService) ListTourReviews(ctx context.Context, tourID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviews.ListByTour(ctx, tourID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list tour reviews: %w", err))
	}
	return reviews, nil
}

func (s *reviewService) ownedReview(ctx context.Context, user *model.User, id uuid.UUID) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, apperrors.Internal(fmt.Errorf("find review: %w", err))
	}
	if review.UserID != user.ID && user.Role != model.RoleAdmin {
		return nil, ErrNotReviewOwner
	}
	return review, nil
}

// refreshTourRatings recomputes the aggregate and writes it back to the tour.
func (s *reviewService) refreshTourRatings(ctx context.Context, tour *model.Tour) error {
	summary, err := s.reviews.Summarize(ctx, tour.ID)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("summarize reviews: %w", err))
	}
	tour.RatingsAverage = summary.Average
	tour.RatingsQuantity = summary.Quantity
	if err := s.tours.Save(ctx, tour); err != nil {
		return apperrors.Internal(fmt.Errorf("save tour ratings: %w", err))
	}
	return nil
}
