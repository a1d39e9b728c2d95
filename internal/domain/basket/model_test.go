package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNormalizePlan(t *testing.T) {
	assert.Equal(t, "", NormalizePlan(nil))
	assert.Equal(t, "", NormalizePlan(strPtr("")))
	assert.Equal(t, "monthly", NormalizePlan(strPtr("monthly")))
}

func TestMatches(t *testing.T) {
	item := BasketItem{ProductName: "Resolux", ProductType: "subscription", PlanType: "monthly"}

	assert.True(t, item.Matches("Resolux", "subscription", "monthly"))
	assert.False(t, item.Matches("Resolux", "subscription", "weekly"))
	assert.False(t, item.Matches("Resolux", "subscription", ""))
	assert.False(t, item.Matches("Resolux", "addon", "monthly"))
	assert.False(t, item.Matches("Other", "subscription", "monthly"))
}

func TestMatchesWithoutPlan(t *testing.T) {
	// "no plan" is stored as the empty string so the unique index still
	// collapses duplicates (NULLs compare distinct in Postgres).
	item := BasketItem{ProductName: "Sticker Pack", ProductType: "merch"}

	assert.True(t, item.Matches("Sticker Pack", "merch", NormalizePlan(nil)))
	assert.False(t, item.Matches("Sticker Pack", "merch", "monthly"))
}

func TestTotal(t *testing.T) {
	items := []BasketItem{
		{PriceCents: 999, Quantity: 2},
		{PriceCents: 400, Quantity: 1},
	}
	assert.Equal(t, int64(2398), Total(items))
}

func TestTotalMonthlyAddedTwice(t *testing.T) {
	// adding the same plan twice yields one row with quantity 2
	items := []BasketItem{
		{ProductName: "Monthly", ProductType: "subscription", PlanType: "monthly", PriceCents: 999, Quantity: 2},
	}
	assert.Equal(t, int64(1998), Total(items))
}

func TestTotalEmpty(t *testing.T) {
	assert.Equal(t, int64(0), Total(nil))
	assert.Equal(t, int64(0), Total([]BasketItem{}))
}
