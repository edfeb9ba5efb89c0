package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourly/internal/auth"
	"tourly/internal/config"
	apperrors "tourly/internal/errors"
	"tourly/internal/mail"
	"tourly/internal/model"
	"tourly/internal/repository"
)

var (
	// ErrIncorrectCredentials is deliberately generic: the response never
	// says which part of the credential pair was wrong.
	ErrIncorrectCredentials = apperrors.NotAuthenticated("Incorrect email or password")
	// ErrEmailTaken is returned when signing up with an email already in use.
	ErrEmailTaken = apperrors.Conflict("email already in use")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = apperrors.Validation("passwords are not the same")
	// ErrResetTokenInvalid covers unknown, used and expired reset tokens alike.
	ErrResetTokenInvalid = apperrors.Validation("Token is invalid or has expired")
	// ErrWrongCurrentPassword is returned by the password-change flow.
	ErrWrongCurrentPassword = apperrors.NotAuthenticated("Your current password is wrong")
	// ErrNoUserWithEmail is returned by the forgot-password flow.
	ErrNoUserWithEmail = apperrors.NotFound("There is no user with that email address")
)

// AuthService implements the credential lifecycle: signup, login, reset and
// change of passwords. Hashing always happens here, explicitly, before any
// record reaches the repository.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, passwordConfirm string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ForgotPassword(ctx context.Context, email, resetURLBase string) error
	ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (*model.User, string, error)
	UpdatePassword(ctx context.Context, user *model.User, current, password, passwordConfirm string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
	mailer mail.Mailer
	log    *zap.Logger
}

// NewAuthService creates the authentication service.
func NewAuthService(
	users repository.UserRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenService,
	mailer mail.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		log:    log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an identity record and logs it straight in. The confirm
// field is compared for equality and discarded; the role is always "user"
// regardless of request payload.
func (s *authService) Signup(ctx context.Context, name, email, password, passwordConfirm string) (*model.User, string, error) {
	if password != passwordConfirm {
		return nil, "", ErrPasswordMismatch
	}
	email = normalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.Internal(fmt.Errorf("check email: %w", err))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("create user: %w", err))
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("issue token: %w", err))
	}

	// Welcome mail is best effort; signup must not fail on a relay hiccup.
	if err := s.mailer.Send(ctx, user.Email, "Welcome to Tourly!",
		fmt.Sprintf("Hi %s, welcome to the Tourly family!", user.Name)); err != nil {
		s.log.Warn("welcome mail failed", zap.String("email", user.Email), zap.Error(err))
	}

	return user, token, nil
}

// Login verifies the credential pair and issues a fresh token. Any failure
// collapses into the same generic error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrIncorrectCredentials
		}
		return nil, "", apperrors.Internal(fmt.Errorf("find user: %w", err))
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrIncorrectCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("issue token: %w", err))
	}
	return user, token, nil
}

// ForgotPassword writes a hashed single-use reset secret to the record and
// mails the plaintext. If the mail cannot be sent the secret is rolled back
// so no dangling reset state is left behind.
func (s *authService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoUserWithEmail
		}
		return apperrors.Internal(fmt.Errorf("find user: %w", err))
	}

	reset, err := auth.GenerateResetToken(config.ResetTokenTTL)
	if err != nil {
		return apperrors.Internal(err)
	}

	user.PasswordResetToken = &reset.Hash
	user.PasswordResetExpires = &reset.Expires
	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.Internal(fmt.Errorf("store reset token: %w", err))
	}

	resetURL := fmt.Sprintf("%s/%s", strings.TrimRight(resetURLBase, "/"), reset.Plain)
	body := fmt.Sprintf(
		"Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s\nIf you didn't forget your password, please ignore this email. This link is valid for 10 minutes.",
		resetURL,
	)
	if err := s.mailer.Send(ctx, user.Email, "Your password reset token (valid for 10 min)", body); err != nil {
		user.PasswordResetToken = nil
		user.PasswordResetExpires = nil
		if rbErr := s.users.Save(ctx, user); rbErr != nil {
			s.log.Error("reset token rollback failed", zap.String("email", user.Email), zap.Error(rbErr))
		}
		return apperrors.Internal(fmt.Errorf("send reset mail: %w", err))
	}

	return nil
}

// ResetPassword consumes a plaintext reset secret. Setting the new password
// and clearing the reset pair happen in the same save, so a secret can never
// be replayed.
func (s *authService) ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (*model.User, string, error) {
	if password != passwordConfirm {
		return nil, "", ErrPasswordMismatch
	}

	user, err := s.users.FindByResetToken(ctx, auth.HashResetToken(plainToken), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrResetTokenInvalid
		}
		return nil, "", apperrors.Internal(fmt.Errorf("resolve reset token: %w", err))
	}

	if err := s.rotatePassword(ctx, user, password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("issue token: %w", err))
	}
	return user, token, nil
}

// UpdatePassword rotates the password of an authenticated user after
// re-verifying the current one.
func (s *authService) UpdatePassword(ctx context.Context, user *model.User, current, password, passwordConfirm string) (string, error) {
	if password != passwordConfirm {
		return "", ErrPasswordMismatch
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return "", ErrWrongCurrentPassword
	}

	if err := s.rotatePassword(ctx, user, password); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("issue token: %w", err))
	}
	return token, nil
}

// rotatePassword hashes the new password, stamps the change and clears any
// outstanding reset pair in a single save. The timestamp is backdated by the
// configured slack so the token issued right after is never seen as stale.
func (s *authService) rotatePassword(ctx context.Context, user *model.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}

	changedAt := time.Now().Add(-config.PasswordChangedSlack)
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil

	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.Internal(fmt.Errorf("save password: %w", err))
	}
	return nil
}
