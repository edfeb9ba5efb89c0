package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tourly/internal/auth"
	"tourly/internal/config"
	"tourly/internal/db"
	"tourly/internal/model"
	"tourly/internal/repository"
	"tourly/internal/service"
)

//go:embed tours.json
var toursJSON []byte

// SeedTourData mirrors the embedded development data.
type SeedTourData struct {
	Name         string  `json:"name"`
	Duration     int     `json:"duration"`
	MaxGroupSize int     `json:"max_group_size"`
	Difficulty   string  `json:"difficulty"`
	Price        string  `json:"price"`
	Summary      string  `json:"summary"`
	Description  string  `json:"description"`
	ImageCover   string  `json:"image_cover"`
	StartAddress string  `json:"start_address"`
	StartLat     float64 `json:"start_lat"`
	StartLng     float64 `json:"start_lng"`
}

var seedUsers = []struct {
	Name  string
	Email string
	Role  model.Role
}{
	{Name: "Admin", Email: "admin@tourly.dev", Role: model.RoleAdmin},
	{Name: "Lead Guide", Email: "lead@tourly.dev", Role: model.RoleLeadGuide},
	{Name: "Guide", Email: "guide@tourly.dev", Role: model.RoleGuide},
	{Name: "Ann Example", Email: "ann@example.com", Role: model.RoleUser},
}

const seedPassword = "test1234"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Tour{}, &model.Review{}, &model.Booking{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	seedTours(ctx, gormDB)
	seedAccounts(ctx, gormDB, cfg)

	log.Println("Seed completed")
}

func seedTours(ctx context.Context, gormDB *gorm.DB) {
	var data []SeedTourData
	if err := json.Unmarshal(toursJSON, &data); err != nil {
		log.Fatalf("Failed to parse embedded tours: %v", err)
	}

	tours := repository.NewTourRepository(gormDB)
	created := 0
	for _, item := range data {
		slug := service.Slugify(item.Name)
		if _, err := tours.FindBySlug(ctx, slug); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check tour %q: %v", item.Name, err)
		}

		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			log.Printf("Skipping tour with invalid price: %s", item.Name)
			continue
		}

		tour := &model.Tour{
			Name:         item.Name,
			Slug:         slug,
			Duration:     item.Duration,
			MaxGroupSize: item.MaxGroupSize,
			Difficulty:   model.Difficulty(item.Difficulty),
			Price:        price,
			Summary:      item.Summary,
			Description:  item.Description,
			ImageCover:   item.ImageCover,
			StartAddress: item.StartAddress,
			StartLat:     item.StartLat,
			StartLng:     item.StartLng,
		}
		if err := tours.Create(ctx, tour); err != nil {
			log.Fatalf("Failed to create tour %q: %v", item.Name, err)
		}
		created++
	}
	log.Printf("Seeded %d tours", created)
}

func seedAccounts(ctx context.Context, gormDB *gorm.DB, cfg *config.Config) {
	users := repository.NewUserRepository(gormDB)
	hasher := auth.NewHasher(cfg.BcryptCost)

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	created := 0
	for _, item := range seedUsers {
		if _, err := users.FindByEmail(ctx, item.Email); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %q: %v", item.Email, err)
		}

		user := &model.User{
			Name:         item.Name,
			Email:        item.Email,
			Role:         item.Role,
			PasswordHash: hash,
			Active:       true,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", item.Email, err)
		}
		created++
	}
	log.Printf("Seeded %d users (password %q)", created, seedPassword)
}
