package stripewebhook

import (
	"strconv"
	"time"

	"resolux-app/database"
	"resolux-app/internal/cache"
	"resolux-app/internal/domain/billing"
	infrastripe "resolux-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	status := string(sub.Status)
	normalized := infrastripe.NormalizeStatus(&status)

	rec, ok := findSubscriber(sub)
	if !ok {
		// acknowledge to avoid Stripe retries if the user is gone
		return nil
	}

	updates := map[string]interface{}{
		"subscribed":             infrastripe.GrantsAccess(normalized),
		"subscription_end":       periodEnd,
		"stripe_subscription_id": sub.ID,
		"checked_at":             time.Now(),
	}

	if err := database.DB.Model(&billing.Subscriber{}).
		Where("id = ?", rec.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	cache.InvalidateSubscriptionStatus(c.Request.Context(), rec.UserID)
	return nil
}

// findSubscriber locates the subscriber row for a Stripe subscription event,
// by metadata user_id first, then by the stored subscription id.
func findSubscriber(sub *stripe.Subscription) (billing.Subscriber, bool) {
	var rec billing.Subscriber

	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		if err := database.DB.Where("user_id = ?", userID).First(&rec).Error; err == nil {
			return rec, true
		}
	}
	if err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&rec).Error; err == nil {
		return rec, true
	}
	return billing.Subscriber{}, false
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["user_id"]
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
