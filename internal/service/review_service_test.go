package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourly/internal/model"
	"tourly/internal/repository"
)

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) Summarize(ctx context.Context, tourID uuid.UUID) (*repository.RatingSummary, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RatingSummary), args.Error(1)
}

func TestReviewService_CreateReview(t *testing.T) {
	author := &model.User{ID: uuid.New(), Role: model.RoleUser}
	tourID := uuid.New()

	tests := []struct {
		name      string
		text      string
		rating    int
		setupMock func(*MockReviewRepository, *MockTourRepository)
		wantErr   error
	}{
		{
			name:   "creates and refreshes the tour aggregate",
			text:   "Loved it",
			rating: 5,
			setupMock: func(reviews *MockReviewRepository, tours *MockTourRepository) {
				tour := &model.Tour{ID: tourID}
				tours.On("FindByID", mock.Anything, tourID).Return(tour, nil)
				reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
				reviews.On("Summarize", mock.Anything, tourID).
					Return(&repository.RatingSummary{Average: 4.8, Quantity: 12}, nil)
				tours.On("Save", mock.Anything, mock.MatchedBy(func(tr *model.Tour) bool {
					return tr.RatingsAverage == 4.8 && tr.RatingsQuantity == 12
				})).Return(nil)
			},
		},
		{
			name:      "rating out of range",
			text:      "Meh",
			rating:    6,
			setupMock: func(reviews *MockReviewRepository, tours *MockTourRepository) {},
			wantErr:   assert.AnError,
		},
		{
			name:      "empty review text",
			text:      "",
			rating:    4,
			setupMock: func(reviews *MockReviewRepository, tours *MockTourRepository) {},
			wantErr:   assert.AnError,
		},
		{
			name:   "unknown tour",
			text:   "Great",
			rating: 4,
			setupMock: func(reviews *MockReviewRepository, tours *MockTourRepository) {
				tours.On("FindByID", mock.Anything, tourID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrTourNotFound,
		},
		{
			name:   "duplicate review for the same tour",
			text:   "Again",
			rating: 4,
			setupMock: func(reviews *MockReviewRepository, tours *MockTourRepository) {
				tours.On("FindByID", mock.Anything, tourID).Return(&model.Tour{ID: tourID}, nil)
				reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).
					Return(gorm.ErrDuplicatedKey)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(MockReviewRepository)
			tours := new(MockTourRepository)
			tt.setupMock(reviews, tours)

			service := NewReviewService(reviews, tours)
			review, err := service.CreateReview(context.Background(), author, tourID, tt.text, tt.rating)

			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantErr != assert.AnError {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, review)
			} else {
				require.NoError(t, err)
				require.NotNil(t, review)
				assert.Equal(t, author.ID, review.UserID)
				assert.Equal(t, tourID, review.TourID)
			}

			reviews.AssertExpectations(t)
			tours.AssertExpectations(t)
		})
	}
}

func TestReviewService_Ownership(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Role: model.RoleUser}
	stranger := &model.User{ID: uuid.New(), Role: model.RoleUser}
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	reviewID := uuid.New()
	tourID := uuid.New()

	newMocks := func() (*MockReviewRepository, *MockTourRepository) {
		reviews := new(MockReviewRepository)
		tours := new(MockTourRepository)
		reviews.On("FindByID", mock.Anything, reviewID).
			Return(&model.Review{ID: reviewID, TourID: tourID, UserID: owner.ID, Rating: 4, Review: "Fine"}, nil)
		return reviews, tours
	}

	t.Run("a stranger cannot delete", func(t *testing.T) {
		reviews, tours := newMocks()
		service := NewReviewService(reviews, tours)

		err := service.DeleteReview(context.Background(), stranger, reviewID)
		assert.ErrorIs(t, err, ErrNotReviewOwner)
	})

	t.Run("the author can delete", func(t *testing.T) {
		reviews, tours := newMocks()
		reviews.On("Delete", mock.Anything, reviewID).Return(nil)
		tours.On("FindByID", mock.Anything, tourID).Return(&model.Tour{ID: tourID}, nil)
		reviews.On("Summarize", mock.Anything, tourID).
			Return(&repository.RatingSummary{Average: 4.5, Quantity: 0}, nil)
		tours.On("Save", mock.Anything, mock.AnythingOfType("*model.Tour")).Return(nil)

		service := NewReviewService(reviews, tours)
		err := service.DeleteReview(context.Background(), owner, reviewID)
		assert.NoError(t, err)
		reviews.AssertExpectations(t)
	})

	t.Run("an admin can edit anyone's review", func(t *testing.T) {
		reviews, tours := newMocks()
		reviews.On("Save", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
		tours.On("FindByID", mock.Anything, tourID).Return(&model.Tour{ID: tourID}, nil)
		reviews.On("Summarize", mock.Anything, tourID).
			Return(&repository.RatingSummary{Average: 2.0, Quantity: 1}, nil)
		tours.On("Save", mock.Anything, mock.AnythingOfType("*model.Tour")).Return(nil)

		service := NewReviewService(reviews, tours)
		review, err := service.UpdateReview(context.Background(), admin, reviewID, "Moderated", 2)
		require.NoError(t, err)
		assert.Equal(t, "Moderated", review.Review)
		assert.Equal(t, 2, review.Rating)
	})
}
