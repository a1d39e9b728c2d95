package basket

import (
	"net/http"
	"strconv"

	"resolux-app/database"
	"resolux-app/internal/domain/basket"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Every mutation answers with the affected item (or removed id) plus the
// recomputed basket total, so clients can patch their local copy without a
// refetch. The policy is the same for add, update, remove and clear.

func userTotal(userID uint) (int64, error) {
	var items []basket.BasketItem
	if err := database.DB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return 0, err
	}
	return basket.Total(items), nil
}

// GET /basket
func GetBasket(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var items []basket.BasketItem
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_cents": basket.Total(items),
	})
}

// POST /basket/items
// Adding an already present (product, type, plan) tuple increments its
// quantity instead of inserting a duplicate row.
func AddItem(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		ProductName string  `json:"product_name" binding:"required"`
		ProductType string  `json:"product_type" binding:"required"`
		PriceCents  int64   `json:"price_cents" binding:"required,gt=0"`
		PlanType    *string `json:"plan_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planType := basket.NormalizePlan(input.PlanType)

	var items []basket.BasketItem
	if err := database.DB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
		return
	}

	var item basket.BasketItem
	var existing *basket.BasketItem
	for i := range items {
		if items[i].Matches(input.ProductName, input.ProductType, planType) {
			existing = &items[i]
			break
		}
	}

	if existing != nil {
		// existing line: bump quantity
		if err := database.DB.Model(existing).
			Update("quantity", gorm.Expr("quantity + 1")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update basket"})
			return
		}
		existing.Quantity++
		item = *existing
	} else {
		item = basket.BasketItem{
			UserID:      userID,
			ProductName: input.ProductName,
			ProductType: input.ProductType,
			PlanType:    planType,
			PriceCents:  input.PriceCents,
			Quantity:    1,
		}
		// A concurrent add for the same tuple can land between the read above
		// and this insert; the unique index turns the loser into an increment.
		if err := database.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "product_name"},
				{Name: "product_type"}, {Name: "plan_type"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("basket_items.quantity + 1"),
			}),
		}).Create(&item).Error; err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("basket insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to basket"})
			return
		}
		// reload for the authoritative quantity after a conflict
		if err := database.DB.Where(
			"user_id = ? AND product_name = ? AND product_type = ? AND plan_type = ?",
			userID, input.ProductName, input.ProductType, planType,
		).First(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
			return
		}
	}

	total, err := userTotal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "total_cents": total})
}

// PUT /basket/items/:id
// quantity <= 0 means remove.
func UpdateQuantity(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item basket.BasketItem
	if err := database.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Basket item not found"})
		return
	}

	if *input.Quantity <= 0 {
		if err := database.DB.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		total, err := userTotal(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": item.ID, "total_cents": total})
		return
	}

	if err := database.DB.Model(&item).Update("quantity", *input.Quantity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
		return
	}
	item.Quantity = *input.Quantity

	total, err := userTotal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "total_cents": total})
}

// DELETE /basket/items/:id
func RemoveItem(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", itemID, userID).Delete(&basket.BasketItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Basket item not found"})
		return
	}

	total, err := userTotal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": itemID, "total_cents": total})
}

// DELETE /basket
func ClearBasket(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := database.DB.Where("user_id = ?", userID).Delete(&basket.BasketItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear basket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": []basket.BasketItem{}, "total_cents": 0})
}
