package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
)

// StartSweeper proactively garbage-collects abandoned unpaid pending
// bookings, so a slot frees within the abandonment window even when
// no new booking attempt triggers the lazy sweep.
func StartSweeper(repo domain.Repository, log *zap.Logger) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cutoff := time.Now().Add(-domain.AbandonmentWindowMinutes * time.Minute)
		n, err := repo.DeleteStalePendingBookings(ctx, cutoff)
		if err != nil {
			log.Warn("stale booking sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("swept stale pending bookings", zap.Int64("deleted", n))
		}
	})
	if err != nil {
		log.Fatal("failed to register sweep job", zap.Error(err))
	}

	c.Start()
	return c
}
