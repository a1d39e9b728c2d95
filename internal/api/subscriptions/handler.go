package subscriptions

import (
	"net/http"
	"time"

	"resolux-app/database"
	"resolux-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// GET /subscriptions
func ListSubscriptions(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// GET /subscriptions/active
// The active subscription is the newest row whose status is "active".
// Multiple active rows are allowed; the newest wins.
func GetActiveSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sub subscriptions.Subscription
	err := database.DB.
		Where("user_id = ? AND status = ?", userID, subscriptions.StatusActive).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": true, "subscription": sub})
}

// POST /subscriptions
// The expiry is computed here from the fixed per-plan offsets, never taken
// from the request.
func CreateSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		PlanType             string  `json:"plan_type" binding:"required"`
		StripeSubscriptionID *string `json:"stripe_subscription_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !subscriptions.IsValidPlanType(input.PlanType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan type"})
		return
	}

	now := time.Now()
	sub := subscriptions.Subscription{
		UserID:               userID,
		PlanType:             input.PlanType,
		Status:               subscriptions.StatusActive,
		StartedAt:            now,
		ExpiresAt:            subscriptions.ExpiryFrom(now, input.PlanType),
		StripeSubscriptionID: input.StripeSubscriptionID,
	}

	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}
