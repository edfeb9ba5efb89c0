package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_PasswordChangedAfter(t *testing.T) {
	now := time.Now()
	slack := time.Second

	tests := []struct {
		name      string
		changedAt *time.Time
		issuedAt  time.Time
		expected  bool
	}{
		{
			name:      "never changed",
			changedAt: nil,
			issuedAt:  now,
			expected:  false,
		},
		{
			name:      "changed before token was issued",
			changedAt: timePtr(now.Add(-time.Hour)),
			issuedAt:  now,
			expected:  false,
		},
		{
			name:      "changed after token was issued",
			changedAt: timePtr(now.Add(time.Hour)),
			issuedAt:  now,
			expected:  true,
		},
		{
			name:      "changed within the slack window",
			changedAt: timePtr(now.Add(500 * time.Millisecond)),
			issuedAt:  now,
			expected:  false,
		},
		{
			name:      "changed just past the slack window",
			changedAt: timePtr(now.Add(2 * time.Second)),
			issuedAt:  now,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{PasswordChangedAt: tt.changedAt}
			assert.Equal(t, tt.expected, user.PasswordChangedAfter(tt.issuedAt, slack))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		assert.True(t, role.Valid())
	}
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
