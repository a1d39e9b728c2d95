package stripewebhook

import (
	"time"

	"resolux-app/database"
	"resolux-app/internal/cache"
	"resolux-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	rec, ok := findSubscriber(sub)
	if !ok {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	if err := database.DB.Model(&billing.Subscriber{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"subscribed":       false,
			"subscription_end": periodEnd,
			"checked_at":       time.Now(),
		}).Error; err != nil {
		return err
	}

	cache.InvalidateSubscriptionStatus(c.Request.Context(), rec.UserID)
	return nil
}
