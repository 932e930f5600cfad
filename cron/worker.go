package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"barberly/config"
	bookingRepo "barberly/database/repository/booking"
	"barberly/models"
	"barberly/services/booking"
	"barberly/utils"
)

const sweepBatchSize = 100

// StartAutoCompleteWorker schedules the sweeper that moves CONFIRMED
// bookings whose end time has passed to COMPLETED, awarding loyalty points
// through the normal lifecycle path. Returns the scheduler so callers can
// stop it on shutdown.
func StartAutoCompleteWorker(svc booking.BookingService, repo bookingRepo.BookingRepository) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New()
	spec := config.AppConfig.AutoCompleteCron
	if spec == "" {
		spec = "*/10 * * * *"
	}

	_, err := c.AddFunc(spec, func() {
		sweepExpiredBookings(svc, repo, logger)
	})
	if err != nil {
		logger.Sugar().Fatalf("cron: invalid auto-complete schedule %q: %v", spec, err)
	}

	c.Start()
	logger.Sugar().Infof("cron: auto-complete worker scheduled (%s)", spec)
	return c
}

func sweepExpiredBookings(svc booking.BookingService, repo bookingRepo.BookingRepository, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	expired, err := repo.ListExpiredConfirmed(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		logger.Error("cron: failed to list expired bookings", zap.Error(err))
		return
	}

	actor := booking.Actor{UserID: "system", Role: "admin"}
	completed := 0
	for _, b := range expired {
		if _, err := svc.UpdateBookingStatus(ctx, b.ID, models.BookingCompleted, actor); err != nil {
			logger.Warn("cron: failed to auto-complete booking",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		completed++
	}
	if completed > 0 {
		logger.Sugar().Infof("cron: auto-completed %d bookings", completed)
	}
}
