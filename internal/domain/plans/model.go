package plans

import (
	"resolux-app/internal/domain/subscriptions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Plan is the sellable catalog entry for a plan type. Checkout requests are
// allow-listed against this table.
type Plan struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PlanType      string `gorm:"type:varchar(20);not null;uniqueIndex:idx_plans_plan_type" json:"plan_type"`
	Name          string `json:"name"`
	PriceCents    int64  `gorm:"not null" json:"price_cents"`
	Interval      string `gorm:"type:varchar(20)" json:"interval"` // week/month/year or one_time
	StripePriceID string `gorm:"column:stripe_price_id" json:"-"`
}

// SeedDefault upserts the shipped catalog. Stripe price ids are attached
// afterwards via env/ops, not here.
func SeedDefault(db *gorm.DB) error {
	defaults := []Plan{
		{PlanType: subscriptions.PlanWeekly, Name: "Weekly", PriceCents: 400, Interval: "week"},
		{PlanType: subscriptions.PlanBiweekly, Name: "Bi-Weekly", PriceCents: 600, Interval: "week"},
		{PlanType: subscriptions.PlanMonthly, Name: "Monthly", PriceCents: 800, Interval: "month"},
		{PlanType: subscriptions.PlanYearly, Name: "Yearly", PriceCents: 8000, Interval: "year"},
		{PlanType: subscriptions.PlanLifetime, Name: "Lifetime", PriceCents: 10000, Interval: "one_time"},
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "plan_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price_cents", "interval"}),
	}).Create(&defaults).Error
}
