package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionCookie(t *testing.T) {
	cookie := SessionCookie("signed-token", 24*time.Hour, true)

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), cookie.Expires, time.Minute)
}

func TestLogoutCookie(t *testing.T) {
	cookie := LogoutCookie(false)

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "loggedout", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	// Overwrites the real cookie and dies almost immediately.
	assert.WithinDuration(t, time.Now(), cookie.Expires, time.Minute)
}
