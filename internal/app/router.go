// internal/app/router.go
package app

import (
	authHandler "tourdesk-service/internal/handlers/auth"
	bookingHandler "tourdesk-service/internal/handlers/booking"
	customerHandler "tourdesk-service/internal/handlers/customer"
	dashboardHandler "tourdesk-service/internal/handlers/dashboard"
	systemHandler "tourdesk-service/internal/handlers/system"
	tourHandler "tourdesk-service/internal/handlers/tour"
	userHandler "tourdesk-service/internal/handlers/user"
	"tourdesk-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	CustomerHandler  *customerHandler.CustomerHandler
	TourHandler      *tourHandler.TourHandler
	BookingHandler   *bookingHandler.BookingHandler
	UserHandler      *userHandler.UserHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	SystemHandler    *systemHandler.SystemHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, gatherer prometheus.Gatherer, h *Handlers) {
	// ==================== Metrics ====================
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", h.SystemHandler.Health)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthMiddleware.OptionalAuth(), h.AuthHandler.Login)
	}

	// ==================== Authenticated Routes ====================
	protected := api.Group("")
	protected.Use(h.AuthMiddleware.Auth())
	{
		protected.POST("/auth/logout", h.AuthHandler.Logout)
		protected.GET("/auth/me", h.AuthHandler.GetMe)
	}

	// ==================== Staff Routes ====================
	staff := api.Group("", h.AuthMiddleware.StaffOnly()...)
	{
		staff.GET("/dashboard", h.DashboardHandler.GetDashboard)
		staff.GET("/choices", h.SystemHandler.Choices)
	}

	// ==================== Customers ====================
	customers := staff.Group("/customers")
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.GET("/number/:number", h.CustomerHandler.GetCustomerByNumber)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Tours ====================
	tours := staff.Group("/tours")
	{
		tours.GET("", h.TourHandler.ListTours)
		tours.GET("/:id", h.TourHandler.GetTour)
		tours.POST("", h.TourHandler.CreateTour)
		tours.PUT("/:id", h.TourHandler.UpdateTour)
		tours.DELETE("/:id", h.TourHandler.DeleteTour)
	}

	// ==================== Bookings ====================
	bookings := staff.Group("/bookings")
	{
		bookings.GET("", h.BookingHandler.ListBookings)
		bookings.GET("/:id", h.BookingHandler.GetBooking)
		bookings.POST("", h.BookingHandler.CreateBooking)
		bookings.PUT("/:id", h.BookingHandler.UpdateBooking)
		bookings.DELETE("/:id", h.BookingHandler.DeleteBooking)
	}

	// ==================== Staff Users (superuser only) ====================
	users := api.Group("/users", h.AuthMiddleware.SuperuserOnly()...)
	{
		users.GET("", h.UserHandler.ListUsers)
		users.GET("/:id", h.UserHandler.GetUser)
		users.POST("", h.UserHandler.CreateUser)
		users.PUT("/:id", h.UserHandler.UpdateUser)
		users.PATCH("/:id/active", h.UserHandler.SetActive)
		users.DELETE("/:id", h.UserHandler.DeleteUser)
	}
}
