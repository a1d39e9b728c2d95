package routes

import (
	adminapi "resolux-app/internal/api/admin"
	authapi "resolux-app/internal/api/auth"
	basketapi "resolux-app/internal/api/basket"
	"resolux-app/internal/api/billing"
	"resolux-app/internal/api/downloads"
	forumapi "resolux-app/internal/api/forum"
	"resolux-app/internal/api/stripewebhook"
	subsapi "resolux-app/internal/api/subscriptions"
	"resolux-app/internal/api/users"
	"resolux-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook takes the raw body; no sanitization in front of it.
	r.POST("/webhook", stripewebhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not found"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Forum reads are public; the landing page shows recent threads.
	r.GET("/forum/categories", forumapi.ListCategories)
	r.GET("/forum/threads", forumapi.ListThreads)
	r.GET("/forum/threads/:id/posts", forumapi.ListPosts)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/basket", basketapi.GetBasket)
	auth.POST("/basket/items", basketapi.AddItem)
	auth.PUT("/basket/items/:id", basketapi.UpdateQuantity)
	auth.DELETE("/basket/items/:id", basketapi.RemoveItem)
	auth.DELETE("/basket", basketapi.ClearBasket)

	auth.GET("/subscriptions", subsapi.ListSubscriptions)
	auth.GET("/subscriptions/active", subsapi.GetActiveSubscription)
	auth.POST("/subscriptions", subsapi.CreateSubscription)

	auth.GET("/check-subscription", billing.CheckSubscription)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)

	forumWrites := auth.Group("/")
	forumWrites.Use(middleware.SanitizeInputMiddleware())
	forumWrites.POST("/forum/threads", forumapi.CreateThread)
	forumWrites.POST("/forum/threads/:id/posts", forumapi.CreatePost)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireSubscriber())
	subscribed.GET("/download", downloads.GetDownload)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/subscriptions", adminapi.ListAllSubscriptions)
}
