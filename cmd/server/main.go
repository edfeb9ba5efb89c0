package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "tourly/docs" // swagger docs

	"tourly/internal/auth"
	"tourly/internal/cache"
	"tourly/internal/config"
	"tourly/internal/db"
	apperrors "tourly/internal/errors"
	"tourly/internal/handler"
	"tourly/internal/logger"
	"tourly/internal/mail"
	"tourly/internal/middleware"
	"tourly/internal/model"
	"tourly/internal/repository"
	"tourly/internal/router"
	"tourly/internal/service"
)

// @title Tourly API
// @version 1.0
// @description Tour booking API with JWT authentication, reviews and bookings.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Production())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log, cfg.Production())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tour{},
		&model.Review{},
		&model.Booking{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	tourRepo := repository.NewTourRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)

	// Auth components
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	gate := middleware.NewAuth(tokens, userRepo)

	var mailer mail.Mailer
	if cfg.Production() {
		mailer, err = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
		if err != nil {
			log.Fatal("smtp init", zap.Error(err))
		}
	} else {
		mailer = mail.NewLogMailer(log)
	}

	// Services
	authService := service.NewAuthService(userRepo, hasher, tokens, mailer, log)
	userService := service.NewUserService(userRepo)
	tourService := service.NewTourService(tourRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, tourRepo)
	bookingService := service.NewBookingService(bookingRepo, tourRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)
	tourHandler := handler.NewTourHandler(tourService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	router.Register(e, cfg, gate, authHandler, userHandler, tourHandler, reviewHandler, bookingHandler)

	addr := ":" + cfg.ServerPort
	log.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
