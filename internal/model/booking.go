package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking records a purchased tour. Price is copied from the tour at
// checkout time so later price changes do not rewrite history.
type Booking struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	TourID    uuid.UUID       `json:"tour_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Paid      bool            `json:"paid" gorm:"default:true"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	Tour Tour `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
