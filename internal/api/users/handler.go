package users

import (
	"net/http"

	"resolux-app/config"
	"resolux-app/database"
	"resolux-app/internal/domain/billing"
	"resolux-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type meResponse struct {
	User       users.User     `json:"user"`
	Subscriber *subscriberDTO `json:"subscriber,omitempty"`
}

type subscriberDTO struct {
	Subscribed       bool    `json:"subscribed"`
	SubscriptionTier *string `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *string `json:"subscription_end,omitempty"`
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := meResponse{User: user}

	var sub billing.Subscriber
	if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err == nil {
		dto := subscriberDTO{Subscribed: sub.Subscribed, SubscriptionTier: sub.SubscriptionTier}
		if sub.SubscriptionEnd != nil {
			s := sub.SubscriptionEnd.UTC().Format("2006-01-02T15:04:05Z07:00")
			dto.SubscriptionEnd = &s
		}
		resp.Subscriber = &dto
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, users.TokenTypeVerify).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/?verified=1")
}
