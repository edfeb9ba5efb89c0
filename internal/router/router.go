package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tourly/internal/config"
	"tourly/internal/handler"
	"tourly/internal/middleware"
	"tourly/internal/model"
)

// Register wires routes and middleware. Everything protected passes through
// the authentication gate first; role restrictions come after it.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *middleware.Auth,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tourHandler *handler.TourHandler,
	reviewHandler *handler.ReviewHandler,
	bookingHandler *handler.BookingHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Users and auth
	users := api.Group("/users")
	users.POST("/signup", authHandler.Signup)
	users.POST("/login", authHandler.Login)
	users.GET("/logout", authHandler.Logout)
	users.POST("/forgotPassword", authHandler.ForgotPassword)
	users.PATCH("/resetPassword/:token", authHandler.ResetPassword)

	me := users.Group("", gate.Protect())
	me.PATCH("/updateMyPassword", authHandler.UpdatePassword)
	me.GET("/me", userHandler.GetMe)
	me.PATCH("/updateMe", userHandler.UpdateMe)
	me.DELETE("/deleteMe", userHandler.DeleteMe)

	adminUsers := users.Group("", gate.Protect(), middleware.RestrictTo(model.RoleAdmin))
	adminUsers.GET("", userHandler.ListUsers)
	adminUsers.POST("", userHandler.CreateUser)
	adminUsers.GET("/:id", userHandler.GetUser)
	adminUsers.PATCH("/:id", userHandler.UpdateUser)
	adminUsers.DELETE("/:id", userHandler.DeleteUser)

	// Tours
	tours := api.Group("/tours")
	tours.GET("", tourHandler.ListTours, gate.CurrentUser())
	tours.GET("/slug/:slug", tourHandler.GetTourBySlug)
	tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", tourHandler.ToursWithin)
	tours.GET("/distances/:latlng/unit/:unit", tourHandler.Distances)
	tours.GET("/:id", tourHandler.GetTour)

	manageTours := tours.Group("", gate.Protect(), middleware.RestrictTo(model.RoleAdmin, model.RoleLeadGuide))
	manageTours.POST("", tourHandler.CreateTour)
	manageTours.PATCH("/:id", tourHandler.UpdateTour)
	manageTours.DELETE("/:id", tourHandler.DeleteTour)

	// Reviews, nested under tours for reading and creating
	tours.GET("/:id/reviews", reviewHandler.ListTourReviews)
	tours.POST("/:id/reviews", reviewHandler.CreateReview, gate.Protect(), middleware.RestrictTo(model.RoleUser))

	reviews := api.Group("/reviews", gate.Protect())
	reviews.GET("", reviewHandler.ListReviews)
	reviews.PATCH("/:id", reviewHandler.UpdateReview)
	reviews.DELETE("/:id", reviewHandler.DeleteReview)

	// Bookings
	bookings := api.Group("/bookings", gate.Protect())
	bookings.GET("/checkout-session/:tourId", bookingHandler.Checkout)
	bookings.GET("/my", bookingHandler.MyBookings)

	adminBookings := bookings.Group("", middleware.RestrictTo(model.RoleAdmin, model.RoleLeadGuide))
	adminBookings.GET("", bookingHandler.ListBookings)
	adminBookings.GET("/:id", bookingHandler.GetBooking)
	adminBookings.DELETE("/:id", bookingHandler.DeleteBooking)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
