package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User represents an identity record. The password hash and reset-token
// fields never serialize to JSON; Active is the soft-delete marker and
// inactive rows are excluded from every default repository lookup.
type User struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name                 string     `json:"name" gorm:"size:255;not null"`
	Email                string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Photo                string     `json:"photo" gorm:"size:255;default:'default.jpg'"`
	Role                 Role       `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	PasswordHash         string     `json:"-" gorm:"size:255;not null"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `json:"-" gorm:"size:64;index"`
	PasswordResetExpires *time.Time `json:"-"`
	Active               bool       `json:"-" gorm:"default:true;index"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issuance time. The slack tolerates the write-ordering skew
// between signing a token and persisting the timestamp.
func (u *User) PasswordChangedAfter(issuedAt time.Time, slack time.Duration) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Add(slack).Before(*u.PasswordChangedAt)
}
