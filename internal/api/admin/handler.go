package admin

import (
	"net/http"
	"time"

	"resolux-app/database"
	"resolux-app/internal/domain/billing"
	"resolux-app/internal/domain/subscriptions"
	"resolux-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID               uint       `json:"id"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	Role             string     `json:"role"`
	IsVerified       bool       `json:"is_verified"`
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier *string    `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var subs []billing.Subscriber
	_ = database.DB.Find(&subs).Error
	byUser := make(map[uint]billing.Subscriber, len(subs))
	for _, s := range subs {
		byUser[s.UserID] = s
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		row := AdminUser{
			ID:         u.ID,
			Email:      u.Email,
			Username:   u.Username,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			CreatedAt:  u.CreatedAt,
		}
		if s, ok := byUser[u.ID]; ok {
			row.Subscribed = s.Subscribed
			row.SubscriptionTier = s.SubscriptionTier
			row.SubscriptionEnd = s.SubscriptionEnd
		}
		out = append(out, row)
	}

	c.JSON(http.StatusOK, out)
}

func ListAllSubscriptions(c *gin.Context) {
	var subs []subscriptions.Subscription
	if err := database.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}
