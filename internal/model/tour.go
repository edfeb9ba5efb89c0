package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Difficulty grades a tour.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Valid reports whether d is a member of the difficulty enumeration.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Tour is a bookable tour. The slug is derived from the name by the tour
// service whenever the name changes; ratings fields are recomputed by the
// review service on every review write.
type Tour struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string          `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Slug            string          `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Duration        int             `json:"duration" gorm:"not null"`
	MaxGroupSize    int             `json:"max_group_size" gorm:"not null"`
	Difficulty      Difficulty      `json:"difficulty" gorm:"type:varchar(20);not null;index"`
	RatingsAverage  float64         `json:"ratings_average" gorm:"default:4.5"`
	RatingsQuantity int             `json:"ratings_quantity" gorm:"default:0"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	PriceDiscount   decimal.Decimal `json:"price_discount,omitempty" gorm:"type:decimal(10,2)"`
	Summary         string          `json:"summary" gorm:"size:512"`
	Description     string          `json:"description" gorm:"type:text"`
	ImageCover      string          `json:"image_cover" gorm:"size:255"`
	StartAddress    string          `json:"start_address" gorm:"size:255"`
	StartLat        float64         `json:"start_lat"`
	StartLng        float64         `json:"start_lng"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Tour) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
