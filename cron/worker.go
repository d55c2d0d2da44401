package cron

import (
	"context"
	"log"
	"time"

	reconRepo "harborview/database/repository/reconciliation"
	"harborview/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitReconciliationSweep starts the background job that surfaces
// charged-but-not-booked payments for manual follow-up. The sweep only
// reports; resolution is a human decision.
func InitReconciliationSweep(spec string, repo reconRepo.ReconciliationRepository) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		sweep(repo)
	})
	if err != nil {
		log.Fatalf("failed to schedule reconciliation sweep: %v", err)
	}

	c.Start()
	return c
}

func sweep(repo reconRepo.ReconciliationRepository) {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := repo.ListUnresolved(ctx)
	if err != nil {
		logger.Error("reconciliation sweep failed", zap.Error(err))
		return
	}
	if len(records) == 0 {
		return
	}

	logger.Warn("unresolved post-charge failures require manual follow-up",
		zap.Int("count", len(records)))
	for _, r := range records {
		logger.Warn("charged without booking",
			zap.String("reconciliationId", r.ID),
			zap.String("intentId", r.PaymentIntentID),
			zap.Float64("amount", r.Amount),
			zap.String("currency", r.Currency),
			zap.String("guestEmail", r.Guest.Email),
			zap.Time("since", r.CreatedAt))
	}
}
