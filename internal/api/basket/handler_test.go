package basket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resolux-app/database"
	"resolux-app/internal/domain/basket"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Without an authenticated user the handlers must answer 401 before touching
// storage; these run with no database attached at all.
func TestBasketUnauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/basket", GetBasket)
	r.POST("/basket/items", AddItem)
	r.PUT("/basket/items/:id", UpdateQuantity)
	r.DELETE("/basket/items/:id", RemoveItem)
	r.DELETE("/basket", ClearBasket)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/basket", ""},
		{http.MethodPost, "/basket/items", `{"product_name":"Monthly","product_type":"subscription","price_cents":999}`},
		{http.MethodPut, "/basket/items/1", `{"quantity":2}`},
		{http.MethodDelete, "/basket/items/1", ""},
		{http.MethodDelete, "/basket", ""},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	r := gin.New()
	r.POST("/basket/items", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		AddItem(c)
	})

	cases := []string{
		`{}`,
		`{"product_name":"Monthly"}`,
		`{"product_name":"Monthly","product_type":"subscription"}`,
		`{"product_name":"Monthly","product_type":"subscription","price_cents":-5}`,
	}

	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/basket/items", strings.NewReader(body))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

// newMockDB swaps the shared connection for a sqlmock-backed one.
func newMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	orig := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = orig
		mockDB.Close()
	}
}

func basketRows(items ...basket.BasketItem) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "product_name", "product_type", "plan_type",
		"price_cents", "quantity", "created_at", "updated_at",
	})
	for _, it := range items {
		rows.AddRow(it.ID, it.UserID, it.ProductName, it.ProductType, it.PlanType,
			it.PriceCents, it.Quantity, time.Now(), time.Now())
	}
	return rows
}

func postAddItem(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/basket/items", strings.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func addItemRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.POST("/basket/items", func(c *gin.Context) {
		c.Set("user_id", userID)
		AddItem(c)
	})
	return r
}

// Re-adding a tuple already in the basket bumps its quantity in place; no
// second row is ever inserted.
func TestAddItemIncrementsExistingTuple(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	existing := basket.BasketItem{
		ID: 7, UserID: 1,
		ProductName: "Monthly", ProductType: "subscription", PlanType: "monthly",
		PriceCents: 999, Quantity: 1,
	}

	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE user_id = \$1`).
		WillReturnRows(basketRows(existing))
	mock.ExpectExec(`UPDATE "basket_items" SET "quantity"=quantity \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	bumped := existing
	bumped.Quantity = 2
	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE user_id = \$1`).
		WillReturnRows(basketRows(bumped))

	w := postAddItem(addItemRouter(1),
		`{"product_name":"Monthly","product_type":"subscription","price_cents":999,"plan_type":"monthly"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Item       basket.BasketItem `json:"item"`
		TotalCents int64             `json:"total_cents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.Item.ID)
	assert.Equal(t, 2, resp.Item.Quantity)
	assert.Equal(t, int64(1998), resp.TotalCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A new tuple is inserted with a conflict guard on the basket's unique
// index, so a concurrent add of the same tuple becomes an increment instead
// of a duplicate row or a failed insert.
func TestAddItemInsertCarriesConflictGuard(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	created := basket.BasketItem{
		ID: 3, UserID: 1,
		ProductName: "Weekly", ProductType: "subscription", PlanType: "weekly",
		PriceCents: 400, Quantity: 1,
	}

	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE user_id = \$1`).
		WillReturnRows(basketRows())
	mock.ExpectQuery(`INSERT INTO "basket_items" .*ON CONFLICT \("user_id","product_name","product_type","plan_type"\) DO UPDATE SET "quantity"=basket_items\.quantity \+ 1.*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE \(?user_id = \$1 AND product_name = \$2 AND product_type = \$3 AND plan_type = \$4\)? ORDER BY`).
		WillReturnRows(basketRows(created))
	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE user_id = \$1`).
		WillReturnRows(basketRows(created))

	w := postAddItem(addItemRouter(1),
		`{"product_name":"Weekly","product_type":"subscription","price_cents":400,"plan_type":"weekly"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Item       basket.BasketItem `json:"item"`
		TotalCents int64             `json:"total_cents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(3), resp.Item.ID)
	assert.Equal(t, 1, resp.Item.Quantity)
	assert.Equal(t, int64(400), resp.TotalCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Items without a plan dedupe too: the stored plan is the empty string, not
// NULL, so the second add finds the first row.
func TestAddItemWithoutPlanIncrements(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	existing := basket.BasketItem{
		ID: 11, UserID: 2,
		ProductName: "Sticker Pack", ProductType: "merch",
		PriceCents: 250, Quantity: 1,
	}

	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE user_id = \$1`).
		WillReturnRows(basketRows(existing))
	mock.ExpectExec(`UPDATE "basket_items" SET "quantity"=quantity \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	bumped := existing
	bumped.Quantity = 2
	mock.ExpectQuery(`SELECT \* FROM "basket_items" WHERE user_id = \$1`).
		WillReturnRows(basketRows(bumped))

	w := postAddItem(addItemRouter(2),
		`{"product_name":"Sticker Pack","product_type":"merch","price_cents":250}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Item       basket.BasketItem `json:"item"`
		TotalCents int64             `json:"total_cents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(11), resp.Item.ID)
	assert.Equal(t, 2, resp.Item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuantityRejectsBadID(t *testing.T) {
	r := gin.New()
	r.PUT("/basket/items/:id", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		UpdateQuantity(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/basket/items/abc", strings.NewReader(`{"quantity":1}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
