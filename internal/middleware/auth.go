package middleware

import (
	"errors"
	"fmt"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tourly/internal/auth"
	"tourly/internal/config"
	apperrors "tourly/internal/errors"
	"tourly/internal/model"
	"tourly/internal/repository"
)

// userContextKey is where the resolved identity lives on the echo context.
// Handlers never read token claims directly; they read the user set here.
const userContextKey = "currentUser"

// tokenLookup prefers the Authorization header and falls back to the session
// cookie, in that order.
const tokenLookup = "header:Authorization:Bearer ,cookie:" + auth.SessionCookieName

// Auth is the request authentication gate. Token verification is stateless;
// the identity is re-resolved from the store on every request so deleted
// accounts and stale tokens are caught even while the signature still checks
// out.
type Auth struct {
	tokens *auth.TokenService
	users  repository.UserRepository
	slack  time.Duration
}

// NewAuth creates the gate.
func NewAuth(tokens *auth.TokenService, users repository.UserRepository) *Auth {
	return &Auth{
		tokens: tokens,
		users:  users,
		slack:  config.PasswordChangedSlack,
	}
}

// UserFromContext returns the identity resolved by Protect or CurrentUser.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}

// Protect rejects any request that does not carry a verifiable token naming
// a live identity. On success the resolved user is attached to the context.
func (a *Auth) Protect() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: tokenLookup,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return a.tokens.Verify(token)
		},
		ErrorHandler: rejectWithReason,
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(a.resolveUser(next, false))
	}
}

// CurrentUser is the non-blocking variant used for surfaces that only render
// differently for logged-in users. Every failure silently degrades to an
// anonymous request; no error ever escapes this middleware.
func (a *Auth) CurrentUser() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: tokenLookup,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return a.tokens.Verify(token)
		},
		ErrorHandler:           func(c echo.Context, err error) error { return nil },
		ContinueOnIgnoredError: true,
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(a.resolveUser(next, true))
	}
}

// rejectWithReason maps gate failures onto 401s with distinct, still generic
// messages for the missing, expired and malformed cases.
func rejectWithReason(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return apperrors.NotAuthenticated("Your session has expired. Please log in again.")
	case errors.Is(err, auth.ErrInvalidToken):
		return apperrors.NotAuthenticated("Invalid token. Please log in again.")
	default:
		return apperrors.NotAuthenticated("You are not logged in! Please log in to get access.")
	}
}

// resolveUser runs after token verification: it re-resolves the subject from
// the credential store and rejects tokens issued before the last password
// change. In lenient mode any failure falls through as anonymous.
func (a *Auth) resolveUser(next echo.HandlerFunc, lenient bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok {
			if lenient {
				return next(c)
			}
			return apperrors.NotAuthenticated("You are not logged in! Please log in to get access.")
		}

		subjectID, err := claims.SubjectID()
		if err != nil {
			if lenient {
				return next(c)
			}
			return apperrors.NotAuthenticated("Invalid token. Please log in again.")
		}

		user, err := a.users.FindByID(c.Request().Context(), subjectID)
		if err != nil {
			if lenient {
				return next(c)
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A token can outlive the account it names.
				return apperrors.NotAuthenticated("The user belonging to this token does no longer exist.")
			}
			return apperrors.Internal(fmt.Errorf("resolve token subject: %w", err))
		}

		if user.PasswordChangedAfter(claims.IssuedAt.Time, a.slack) {
			if lenient {
				return next(c)
			}
			return apperrors.NotAuthenticated("User recently changed password! Please log in again.")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// Authorized reports whether role is a member of the allowed set. Pure; the
// HTTP wrapping lives in RestrictTo.
func Authorized(role model.Role, allowed ...model.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// RestrictTo denies authenticated identities whose role is not in the given
// set. Must run after Protect: without a resolved identity it rejects with
// 401, never 403.
func RestrictTo(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return apperrors.NotAuthenticated("You are not logged in! Please log in to get access.")
			}
			if !Authorized(user.Role, roles...) {
				return apperrors.Forbidden("You do not have permission to perform this action")
			}
			return next(c)
		}
	}
}
