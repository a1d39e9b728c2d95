package basket

import "time"

// BasketItem is one line in a user's basket. Prices are integer cents;
// the API never stores or accepts float dollar amounts.
//
// PlanType uses an empty-string sentinel for "no plan" so the composite
// unique index can enforce the one-row-per-tuple rule: Postgres treats NULLs
// as distinct in unique indexes, which would let duplicate no-plan rows in.
type BasketItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_basket_tuple,priority:1" json:"user_id"`
	ProductName string `gorm:"not null;uniqueIndex:idx_basket_tuple,priority:2" json:"product_name"`
	ProductType string `gorm:"not null;uniqueIndex:idx_basket_tuple,priority:3" json:"product_type"`
	PlanType    string `gorm:"not null;default:'';uniqueIndex:idx_basket_tuple,priority:4" json:"plan_type,omitempty"`
	PriceCents  int64  `gorm:"not null" json:"price_cents"`
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// NormalizePlan maps an optional plan to its stored form.
func NormalizePlan(planType *string) string {
	if planType == nil {
		return ""
	}
	return *planType
}

// Matches reports whether an incoming (product, type, plan) tuple refers to
// the same basket line. Adding a duplicate tuple increments quantity instead
// of inserting a second row.
func (b BasketItem) Matches(productName, productType, planType string) bool {
	return b.ProductName == productName &&
		b.ProductType == productType &&
		b.PlanType == planType
}

// Total sums price*quantity over the given items, in cents.
func Total(items []BasketItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.PriceCents * int64(it.Quantity)
	}
	return sum
}
