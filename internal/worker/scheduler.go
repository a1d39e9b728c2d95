package worker

import (
	"context"
	"time"

	"resolux-app/config"
	"resolux-app/database"
	"resolux-app/internal/cache"
	"resolux-app/internal/domain/billing"
	"resolux-app/internal/domain/subscriptions"
	infrastripe "resolux-app/internal/infra/stripe"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	subscriptionapi "github.com/stripe/stripe-go/v75/subscription"
)

// StartScheduler wires the periodic jobs: a daily sweep that expires overdue
// internal subscription grants, and an hourly reconciliation of subscriber
// records against Stripe. Returns the cron so main can Stop it on shutdown.
func StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("30 3 * * *", func() {
		ExpireOverdueSubscriptions()
	})

	c.AddFunc("@hourly", func() {
		ReconcileSubscribers()
	})

	c.Start()
	log.Info().Msg("Scheduler started (daily expiry sweep, hourly Stripe reconciliation)")
	return c
}

// ExpireOverdueSubscriptions flips active grants past their expiry to expired.
func ExpireOverdueSubscriptions() {
	now := time.Now()

	result := database.DB.Model(&subscriptions.Subscription{}).
		Where("status = ? AND expires_at < ?", subscriptions.StatusActive, now).
		Update("status", subscriptions.StatusExpired)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("expiry sweep failed")
		return
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("expired", result.RowsAffected).Msg("expired overdue subscriptions")
	}
}

// reconcileAfter is how stale a subscriber row may be before the hourly job
// re-checks it against Stripe.
const reconcileAfter = 6 * time.Hour

// ReconcileSubscribers refreshes stale subscriber rows from Stripe. Rows
// without a Stripe subscription id (lifetime purchases) are only re-stamped.
func ReconcileSubscribers() {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		log.Warn().Msg("reconciler skipped, Stripe key not configured")
		return
	}

	cutoff := time.Now().Add(-reconcileAfter)

	var stale []billing.Subscriber
	if err := database.DB.
		Where("checked_at < ?", cutoff).
		Limit(200).
		Find(&stale).Error; err != nil {
		log.Error().Err(err).Msg("reconciler query failed")
		return
	}

	for _, rec := range stale {
		if rec.StripeSubscriptionID == nil || *rec.StripeSubscriptionID == "" {
			database.DB.Model(&billing.Subscriber{}).
				Where("id = ?", rec.ID).
				Update("checked_at", time.Now())
			continue
		}

		sub, err := subscriptionapi.Get(*rec.StripeSubscriptionID, nil)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", rec.UserID).Msg("reconciler Stripe fetch failed")
			continue
		}

		status := string(sub.Status)
		normalized := infrastripe.NormalizeStatus(&status)
		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

		if err := database.DB.Model(&billing.Subscriber{}).
			Where("id = ?", rec.ID).
			Updates(map[string]interface{}{
				"subscribed":       infrastripe.GrantsAccess(normalized),
				"subscription_end": periodEnd,
				"checked_at":       time.Now(),
			}).Error; err != nil {
			log.Error().Err(err).Uint("user_id", rec.UserID).Msg("reconciler update failed")
			continue
		}

		cache.InvalidateSubscriptionStatus(context.Background(), rec.UserID)
	}

	if len(stale) > 0 {
		log.Info().Int("checked", len(stale)).Msg("subscriber reconciliation pass done")
	}
}
