package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tourly/internal/auth"
	"tourly/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func newTestAuthService(users *MockUserRepository, mailer *MockMailer) AuthService {
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, hasher, tokens, mailer, zap.NewNop())
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(digest)
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name            string
		userName        string
		email           string
		password        string
		passwordConfirm string
		setupMock       func(*MockUserRepository, *MockMailer)
		expectedError   error
	}{
		{
			name:            "successful signup",
			userName:        "Test User",
			email:           "Test@Example.com",
			password:        "pass1234",
			passwordConfirm: "pass1234",
			setupMock: func(users *MockUserRepository, mailer *MockMailer) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:            "password confirmation mismatch",
			userName:        "Test User",
			email:           "test@example.com",
			password:        "pass1234",
			passwordConfirm: "pass12345",
			setupMock:       func(users *MockUserRepository, mailer *MockMailer) {},
			expectedError:   ErrPasswordMismatch,
		},
		{
			name:            "email already in use",
			userName:        "Test User",
			email:           "existing@example.com",
			password:        "pass1234",
			passwordConfirm: "pass1234",
			setupMock: func(users *MockUserRepository, mailer *MockMailer) {
				users.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrEmailTaken,
		},
		{
			name:            "welcome mail failure does not fail signup",
			userName:        "Test User",
			email:           "test@example.com",
			password:        "pass1234",
			passwordConfirm: "pass1234",
			setupMock: func(users *MockUserRepository, mailer *MockMailer) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).
					Return(errors.New("relay down"))
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			mailer := new(MockMailer)
			tt.setupMock(users, mailer)

			service := newTestAuthService(users, mailer)
			user, token, err := service.Signup(context.Background(), tt.userName, tt.email, tt.password, tt.passwordConfirm)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			users.AssertExpectations(t)
			mailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*testing.T, *MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "pass1234",
			setupMock: func(t *testing.T, users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           userID,
					Email:        "test@example.com",
					PasswordHash: hashFor(t, "pass1234"),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpass",
			setupMock: func(t *testing.T, users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           userID,
					Email:        "test@example.com",
					PasswordHash: hashFor(t, "pass1234"),
				}, nil)
			},
			expectedError: ErrIncorrectCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "pass1234",
			setupMock: func(t *testing.T, users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrIncorrectCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(t, users)

			service := newTestAuthService(users, new(MockMailer))
			user, token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("stores hashed token and mails the plaintext", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "test@example.com"}
		users := new(MockUserRepository)
		mailer := new(MockMailer)

		users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		var mailedBody string
		mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { mailedBody = args.String(3) }).
			Return(nil)

		service := newTestAuthService(users, mailer)
		err := service.ForgotPassword(context.Background(), "test@example.com", "https://example.com/api/v1/users/resetPassword")
		require.NoError(t, err)

		require.NotNil(t, user.PasswordResetToken)
		require.NotNil(t, user.PasswordResetExpires)
		assert.True(t, user.PasswordResetExpires.After(time.Now()))

		// The mail carries the plaintext; the record holds only its hash.
		parts := strings.Split(mailedBody, "/")
		var plain string
		for _, part := range parts {
			fields := strings.Fields(part)
			if len(fields) > 0 && len(fields[0]) == 64 {
				plain = fields[0]
			}
		}
		require.NotEmpty(t, plain)
		assert.Equal(t, auth.HashResetToken(plain), *user.PasswordResetToken)
		assert.NotContains(t, mailedBody, *user.PasswordResetToken)

		users.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("rolls back the token when mail fails", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "test@example.com"}
		users := new(MockUserRepository)
		mailer := new(MockMailer)

		users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil).Twice()
		mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).
			Return(errors.New("relay down"))

		service := newTestAuthService(users, mailer)
		err := service.ForgotPassword(context.Background(), "test@example.com", "https://example.com/api/v1/users/resetPassword")
		require.Error(t, err)

		assert.Nil(t, user.PasswordResetToken)
		assert.Nil(t, user.PasswordResetExpires)

		users.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(users, new(MockMailer))
		err := service.ForgotPassword(context.Background(), "nobody@example.com", "https://example.com/api/v1/users/resetPassword")

		assert.ErrorIs(t, err, ErrNoUserWithEmail)
		users.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("rotates the password and clears the reset pair", func(t *testing.T) {
		reset, err := auth.GenerateResetToken(10 * time.Minute)
		require.NoError(t, err)

		user := &model.User{
			ID:                   uuid.New(),
			Email:                "test@example.com",
			PasswordHash:         hashFor(t, "oldpass123"),
			PasswordResetToken:   &reset.Hash,
			PasswordResetExpires: &reset.Expires,
		}

		users := new(MockUserRepository)
		users.On("FindByResetToken", mock.Anything, reset.Hash, mock.AnythingOfType("time.Time")).Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		service := newTestAuthService(users, new(MockMailer))
		got, token, err := service.ResetPassword(context.Background(), reset.Plain, "newpass123", "newpass123")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotEmpty(t, token)

		hasher := auth.NewHasher(bcrypt.MinCost)
		assert.True(t, hasher.Verify("newpass123", got.PasswordHash))
		assert.Nil(t, got.PasswordResetToken)
		assert.Nil(t, got.PasswordResetExpires)
		require.NotNil(t, got.PasswordChangedAt)
		// Backdated so the token just issued is not seen as stale.
		assert.True(t, got.PasswordChangedAt.Before(time.Now()))

		users.AssertExpectations(t)
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByResetToken", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).
			Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(users, new(MockMailer))
		_, _, err := service.ResetPassword(context.Background(), "deadbeef", "newpass123", "newpass123")

		assert.ErrorIs(t, err, ErrResetTokenInvalid)
		users.AssertExpectations(t)
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		service := newTestAuthService(new(MockUserRepository), new(MockMailer))
		_, _, err := service.ResetPassword(context.Background(), "deadbeef", "newpass123", "different")

		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})
}

func TestAuthService_UpdatePassword(t *testing.T) {
	t.Run("successful change", func(t *testing.T) {
		user := &model.User{
			ID:           uuid.New(),
			Email:        "test@example.com",
			PasswordHash: hashFor(t, "oldpass123"),
		}
		users := new(MockUserRepository)
		users.On("Save", mock.Anything, user).Return(nil)

		service := newTestAuthService(users, new(MockMailer))
		token, err := service.UpdatePassword(context.Background(), user, "oldpass123", "newpass123", "newpass123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		hasher := auth.NewHasher(bcrypt.MinCost)
		assert.True(t, hasher.Verify("newpass123", user.PasswordHash))
		require.NotNil(t, user.PasswordChangedAt)

		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		user := &model.User{
			ID:           uuid.New(),
			PasswordHash: hashFor(t, "oldpass123"),
		}

		service := newTestAuthService(new(MockUserRepository), new(MockMailer))
		token, err := service.UpdatePassword(context.Background(), user, "not-the-password", "newpass123", "newpass123")

		assert.ErrorIs(t, err, ErrWrongCurrentPassword)
		assert.Empty(t, token)
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		user := &model.User{
			ID:           uuid.New(),
			PasswordHash: hashFor(t, "oldpass123"),
		}

		service := newTestAuthService(new(MockUserRepository), new(MockMailer))
		_, err := service.UpdatePassword(context.Background(), user, "oldpass123", "newpass123", "different")

		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})
}
