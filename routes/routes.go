package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"barberly/handlers"
	"barberly/middleware"
	"barberly/utils"
)

// RegisterUserRoutes registers registration, login and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Login)

		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.User.GetMe)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/preview", hb.Booking.PreviewBooking)
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/me", hb.Booking.ListMyBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PATCH("/:id/status", hb.Booking.UpdateBookingStatus)
	}
}

// RegisterProfessionalRoutes registers professional management, schedule
// shaping and availability endpoints.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		// Browsing professionals and their free slots is public.
		api.GET("", hb.Professional.ListProfessionals)
		api.GET("/:id", hb.Professional.GetProfessional)
		api.GET("/:id/availability", hb.Booking.GetAvailability)
		api.GET("/:id/business-hours", hb.Professional.ListBusinessHours)
		api.GET("/:id/holidays", hb.Professional.ListHolidays)
		api.GET("/:id/offerings", hb.Professional.ListOfferings)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/:id/business-hours", middleware.RequireRole("professional"), hb.Professional.SetBusinessHours)
		protected.POST("/:id/holidays", middleware.RequireRole("professional"), hb.Professional.AddHoliday)
		protected.DELETE("/:id/holidays/:holidayID", middleware.RequireRole("professional"), hb.Professional.RemoveHoliday)
		protected.PUT("/:id/offerings", middleware.RequireRole("professional"), hb.Professional.SetOffering)
		protected.GET("/:id/agenda", middleware.RequireRole("professional", "admin"), hb.Booking.ProfessionalAgenda)
		protected.GET("/:id/earnings", middleware.RequireRole("professional", "admin"), hb.Booking.ProfessionalEarnings)
	}
}

// RegisterCatalogRoutes registers the shared service catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Professional.ListServices)

		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole("admin"))
		api.POST("", hb.Professional.CreateService)
	}
}

// RegisterBonusRoutes registers point balances for users plus admin grants.
func RegisterBonusRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bonus")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/balance", hb.Bonus.GetMyBalance)
		api.GET("/history", hb.Bonus.GetMyHistory)
		api.POST("/assign", middleware.RequireRole("admin"), hb.Bonus.AssignBonus)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole("admin"))
		api.POST("/professionals", hb.Professional.CreateProfessional)
		api.DELETE("/professionals/:id", hb.Professional.DeactivateProfessional)

		api.POST("/coupons", hb.Coupon.CreateCoupon)
		api.PUT("/coupons/:id", hb.Coupon.UpdateCoupon)
		api.DELETE("/coupons/:id", hb.Coupon.DeactivateCoupon)
		api.GET("/coupons", hb.Coupon.ListCoupons)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBonusRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
