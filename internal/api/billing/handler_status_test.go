package billing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resolux-app/internal/cache"
	"resolux-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// An unidentified caller is rejected before any storage or Stripe access.
func TestCheckSubscriptionUnauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/check-subscription", CheckSubscription)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check-subscription", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusFromLookup(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tier := "Monthly"
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	status, err := statusFromLookup(billing.Subscriber{
		Subscribed:       true,
		SubscriptionTier: &tier,
		SubscriptionEnd:  &future,
	}, nil, now)
	assert.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.Equal(t, &tier, status.SubscriptionTier)

	// a period end in the past overrides the stored flag
	status, err = statusFromLookup(billing.Subscriber{
		Subscribed:      true,
		SubscriptionEnd: &past,
	}, nil, now)
	assert.NoError(t, err)
	assert.False(t, status.Subscribed)
}

// A user with no subscriber row is simply not subscribed.
func TestStatusFromLookupNoRow(t *testing.T) {
	status, err := statusFromLookup(billing.Subscriber{}, gorm.ErrRecordNotFound, time.Now())
	assert.NoError(t, err)
	assert.False(t, status.Subscribed)
	assert.Nil(t, status.SubscriptionTier)
}

// Any other lookup failure propagates instead of reading as "not subscribed",
// so the handler answers 500 and writes nothing to the cache.
func TestStatusFromLookupFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	status, err := statusFromLookup(billing.Subscriber{}, dbErr, time.Now())
	assert.Nil(t, status)
	assert.ErrorIs(t, err, dbErr)
}

func TestStatusBody(t *testing.T) {
	body := statusBody(&cache.SubscriptionStatus{Subscribed: false})
	assert.Equal(t, false, body["subscribed"])
	assert.NotContains(t, body, "subscription_tier")
	assert.NotContains(t, body, "subscription_end")

	tier := "Monthly"
	end := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	body = statusBody(&cache.SubscriptionStatus{
		Subscribed:       true,
		SubscriptionTier: &tier,
		SubscriptionEnd:  &end,
	})
	assert.Equal(t, true, body["subscribed"])
	assert.Equal(t, "Monthly", body["subscription_tier"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["subscription_end"])
}
