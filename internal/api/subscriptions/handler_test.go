package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSubscriptionsUnauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/subscriptions", ListSubscriptions)
	r.GET("/subscriptions/active", GetActiveSubscription)
	r.POST("/subscriptions", CreateSubscription)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/subscriptions", ""},
		{http.MethodGet, "/subscriptions/active", ""},
		{http.MethodPost, "/subscriptions", `{"plan_type":"weekly"}`},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateSubscriptionRejectsUnknownPlan(t *testing.T) {
	r := gin.New()
	r.POST("/subscriptions", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		CreateSubscription(c)
	})

	for _, body := range []string{`{}`, `{"plan_type":"quarterly"}`, `{"plan_type":"Monthly"}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(body))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
