package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review belongs to a tour and a user; a user may review a tour once.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Review    string    `json:"review" gorm:"type:text;not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	TourID    uuid.UUID `json:"tour_id" gorm:"type:char(36);not null;uniqueIndex:idx_reviews_tour_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_reviews_tour_user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tour Tour `json:"-" gorm:"foreignKey:TourID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
