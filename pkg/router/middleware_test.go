package router_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/pkg/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestURLMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	url, _ := url.Parse("https://budget.example.com:8081/api")

	r.GET("/", func(ctx *gin.Context) {
		router.URLMiddleware(url)(c)
		c.String(http.StatusOK, c.GetString(v1.ContextURL))
	})

	c.Request, _ = http.NewRequest(http.MethodGet, "https://budget.example.com/", nil)
	r.ServeHTTP(w, c.Request)

	assert.Equal(t, "https://budget.example.com:8081/api", w.Body.String())
}
