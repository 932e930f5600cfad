package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"barberly/config"
	"barberly/cron"
	"barberly/database"
	bonusRepoPkg "barberly/database/repository/bonus"
	bookingRepoPkg "barberly/database/repository/booking"
	couponRepoPkg "barberly/database/repository/coupon"
	professionalRepoPkg "barberly/database/repository/professional"
	userRepoPkg "barberly/database/repository/user"
	"barberly/handlers"
	"barberly/middleware"
	"barberly/routes"
	bonusSvc "barberly/services/bonus"
	"barberly/services/booking"
	couponSvc "barberly/services/coupon"
	professionalSvc "barberly/services/professional"
	userSvc "barberly/services/user"
	"barberly/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	professionalRepo := professionalRepoPkg.NewMongoProfessionalRepo()
	couponRepo := couponRepoPkg.NewMongoCouponRepo()
	bonusRepo := bonusRepoPkg.NewMongoBonusRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	for name, repo := range map[string]interface{ EnsureIndexes() error }{
		"booking":      bookingRepo,
		"professional": professionalRepo,
		"coupon":       couponRepo,
		"bonus":        bonusRepo,
		"user":         userRepo,
	} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	pricingEngine := &booking.PricingEngine{
		Coupons:         couponRepo,
		Bonuses:         bonusRepo,
		PointValue:      config.AppConfig.BonusPointValue,
		MinRedeemPoints: config.AppConfig.MinRedeemPoints,
	}

	availabilityCache := utils.GetCacheClient()
	if !config.AppConfig.AvailabilityTTLOn {
		availabilityCache = nil
	}

	bookingService := &booking.DefaultBookingService{
		Professionals: professionalRepo,
		Bookings:      bookingRepo,
		Users:         userRepo,
		Pricing:       pricingEngine,
		Resolver: booking.CalendarResolver{
			GranularityMinutes: config.AppConfig.SlotGranularityMinutes,
		},
		Lifecycle: booking.Lifecycle{
			AllowPastCancel: config.AppConfig.AllowPastCancel,
			PointsRate:      config.AppConfig.BookingPointsRate,
		},
		Cache: availabilityCache,
	}

	professionalService := &professionalSvc.DefaultProfessionalService{
		Repo:               professionalRepo,
		GranularityMinutes: config.AppConfig.SlotGranularityMinutes,
	}
	couponService := &couponSvc.DefaultCouponService{Repo: couponRepo}
	bonusService := &bonusSvc.DefaultBonusService{Repo: bonusRepo}
	userService := &userSvc.DefaultUserService{Repo: userRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService, utils.GetPreviewCacheClient(), logger),
		Professional: handlers.NewProfessionalHandler(professionalService),
		Coupon:       handlers.NewCouponHandler(couponService),
		Bonus:        handlers.NewBonusHandler(bonusService),
		User:         handlers.NewUserHandler(userService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	autoComplete := cron.StartAutoCompleteWorker(bookingService, bookingRepo)
	utils.StartHealthMonitor(map[string]*redis.Client{
		"availability": availabilityCache,
		"preview":      utils.GetPreviewCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	autoComplete.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: forced shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
