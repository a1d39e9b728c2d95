package billing

import (
	"errors"
	"net/http"
	"time"

	"resolux-app/database"
	"resolux-app/internal/cache"
	"resolux-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GET /check-subscription
// Answers from the Stripe-derived subscriber record. The record itself is
// written by webhooks and the reconciler; this endpoint never calls Stripe.
// Answers are cached per user for a short TTL.
func CheckSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	ctx := c.Request.Context()

	if status, ok := cache.GetSubscriptionStatus(ctx, userID); ok {
		c.JSON(http.StatusOK, statusBody(status))
		return
	}

	var sub billing.Subscriber
	err := database.DB.Where("user_id = ?", userID).First(&sub).Error
	status, err := statusFromLookup(sub, err, time.Now())
	if err != nil {
		// a failed lookup must not masquerade as "not subscribed", and the
		// cache only holds answers we actually resolved
		log.Error().Err(err).Uint("user_id", userID).Msg("subscriber lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription status"})
		return
	}

	cache.SetSubscriptionStatus(ctx, userID, *status)
	c.JSON(http.StatusOK, statusBody(status))
}

// statusFromLookup turns a subscriber row lookup into the status we answer
// with. No row means plainly not subscribed; any other lookup error is
// propagated so the caller can fail instead of guessing.
func statusFromLookup(sub billing.Subscriber, err error, now time.Time) (*cache.SubscriptionStatus, error) {
	switch {
	case err == nil:
		subscribed := sub.Subscribed
		if sub.SubscriptionEnd != nil && now.After(*sub.SubscriptionEnd) {
			subscribed = false
		}
		return &cache.SubscriptionStatus{
			Subscribed:       subscribed,
			SubscriptionTier: sub.SubscriptionTier,
			SubscriptionEnd:  sub.SubscriptionEnd,
		}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &cache.SubscriptionStatus{Subscribed: false}, nil
	default:
		return nil, err
	}
}

func statusBody(s *cache.SubscriptionStatus) gin.H {
	body := gin.H{"subscribed": s.Subscribed}
	if s.SubscriptionTier != nil {
		body["subscription_tier"] = *s.SubscriptionTier
	}
	if s.SubscriptionEnd != nil {
		body["subscription_end"] = s.SubscriptionEnd.UTC().Format(time.RFC3339)
	}
	return body
}
