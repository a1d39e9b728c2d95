package subscriptions

import "time"

// Plan types sold on the site.
const (
	PlanWeekly   = "weekly"
	PlanBiweekly = "biweekly"
	PlanMonthly  = "monthly"
	PlanYearly   = "yearly"
	PlanLifetime = "lifetime"
)

// Subscription statuses.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

type Subscription struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;index" json:"user_id"`
	PlanType             string    `gorm:"type:varchar(20);not null" json:"plan_type"`
	Status               string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartedAt            time.Time `gorm:"not null" json:"started_at"`
	ExpiresAt            time.Time `gorm:"not null" json:"expires_at"`
	StripeSubscriptionID *string   `json:"stripe_subscription_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsValidPlanType reports whether s is one of the sold plan types.
func IsValidPlanType(s string) bool {
	switch s {
	case PlanWeekly, PlanBiweekly, PlanMonthly, PlanYearly, PlanLifetime:
		return true
	}
	return false
}

// ExpiryFrom returns the expiry for a plan purchased at the given time.
// The offsets are fixed: 7/14/30/365 days, and a 100 year stand-in for
// lifetime. Changing them changes what customers paid for.
func ExpiryFrom(start time.Time, planType string) time.Time {
	switch planType {
	case PlanWeekly:
		return start.AddDate(0, 0, 7)
	case PlanBiweekly:
		return start.AddDate(0, 0, 14)
	case PlanMonthly:
		return start.AddDate(0, 0, 30)
	case PlanYearly:
		return start.AddDate(0, 0, 365)
	case PlanLifetime:
		return start.AddDate(100, 0, 0)
	}
	return start
}
