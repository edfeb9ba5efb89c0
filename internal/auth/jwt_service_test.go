package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	service := NewTokenService("test-secret", 90*24*time.Hour)
	subject := uuid.New()

	token, err := service.Issue(subject)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, subject, id)
	assert.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, time.Now().Add(90*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_Verify(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)
	subject := uuid.New()

	tests := []struct {
		name          string
		token         func(t *testing.T) string
		expectedError error
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				token, err := service.issueAt(subject, time.Now().Add(-2*time.Hour))
				require.NoError(t, err)
				return token
			},
			expectedError: ErrExpiredToken,
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				other := NewTokenService("another-secret", time.Hour)
				token, err := other.Issue(subject)
				require.NoError(t, err)
				return token
			},
			expectedError: ErrInvalidToken,
		},
		{
			name: "malformed token",
			token: func(t *testing.T) string {
				return "not.a.token"
			},
			expectedError: ErrInvalidToken,
		},
		{
			name: "empty token",
			token: func(t *testing.T) string {
				return ""
			},
			expectedError: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token(t))
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, claims)
		})
	}
}

func TestClaims_SubjectID(t *testing.T) {
	claims := &Claims{}
	claims.Subject = "not-a-uuid"

	_, err := claims.SubjectID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
