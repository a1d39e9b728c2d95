package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// StatusTTL bounds how stale a cached subscription status may be. Webhooks
// invalidate eagerly, the TTL only covers missed invalidations.
const StatusTTL = 60 * time.Second

// SubscriptionStatus is the cached shape of a check-subscription answer.
type SubscriptionStatus struct {
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier *string    `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
}

func statusKey(userID uint) string {
	return fmt.Sprintf("substatus:%d", userID)
}

// GetSubscriptionStatus returns the cached status for a user, or false when
// the cache is disabled, missed, or unreadable.
func GetSubscriptionStatus(ctx context.Context, userID uint) (*SubscriptionStatus, bool) {
	c := Shared()
	if c == nil {
		return nil, false
	}

	raw, err := c.Get(ctx, statusKey(userID))
	if err != nil {
		if !IsMiss(err) {
			log.Warn().Err(err).Uint("user_id", userID).Msg("status cache read failed")
		}
		return nil, false
	}

	var status SubscriptionStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, false
	}
	return &status, true
}

// SetSubscriptionStatus caches a status answer for StatusTTL.
func SetSubscriptionStatus(ctx context.Context, userID uint, status SubscriptionStatus) {
	c := Shared()
	if c == nil {
		return
	}

	raw, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := c.Set(ctx, statusKey(userID), string(raw), StatusTTL); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("status cache write failed")
	}
}

// InvalidateSubscriptionStatus drops the cached status, called by the Stripe
// webhook handlers after any subscriber change.
func InvalidateSubscriptionStatus(ctx context.Context, userID uint) {
	c := Shared()
	if c == nil {
		return
	}
	if err := c.Delete(ctx, statusKey(userID)); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("status cache invalidation failed")
	}
}
