package auth

import (
	"net/http"
	"time"

	"tourly/internal/config"
)

// SessionCookieName is the cookie carrying the bearer token for browser clients.
const SessionCookieName = "jwt"

// SessionCookie wraps an issued token into an HTTP cookie. The cookie expiry
// is a transport lifetime, independent of the expiry signed into the token.
func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// LogoutCookie overwrites the session cookie with a dummy value that expires
// almost immediately. Tokens are not revocable server-side; this only clears
// the client's copy.
func LogoutCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(config.LogoutCookieTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
