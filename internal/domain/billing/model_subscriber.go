package billing

import (
	"time"

	"resolux-app/internal/domain/users"
)

// Subscriber is the Stripe-derived view of whether a user currently has paid
// access. It is written by the webhook handlers and the reconciler, never by
// the client-facing endpoints.
type Subscriber struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"not null;uniqueIndex"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`
	Email  string     `gorm:"not null;index"`

	Subscribed           bool
	SubscriptionTier     *string
	SubscriptionEnd      *time.Time
	StripeCustomerID     *string `gorm:"column:stripe_customer_id;index"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id"`

	// CheckedAt is when the row was last confirmed against Stripe.
	CheckedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
