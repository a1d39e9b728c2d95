package middleware

import (
	"net/http"
	"time"

	"resolux-app/database"
	"resolux-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// RequireSubscriber gates routes behind the Stripe-derived subscriber record.
// 403 when the user never subscribed, 402 when the subscription has lapsed.
func RequireSubscriber() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var sub billing.Subscriber
		if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil || !sub.Subscribed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription required",
			})
			return
		}

		if sub.SubscriptionEnd != nil && time.Now().After(*sub.SubscriptionEnd) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
