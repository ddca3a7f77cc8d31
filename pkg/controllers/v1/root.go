package v1

import (
	"net/http"

	"github.com/carryforward/backend/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// ContextURL is the key of the API base URL in the gin context.
const ContextURL = "baseURL"

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Months    string `json:"months" example:"https://example.com/api/v1/months"`       // URL of the Month endpoint
	Sandbox   string `json:"sandbox" example:"https://example.com/api/v1/sandbox"`     // URL of the sandbox session
	Scenarios string `json:"scenarios" example:"https://example.com/api/v1/scenarios"` // URL of the Scenario collection endpoint
	Events    string `json:"events" example:"https://example.com/api/v1/events"`       // URL of the WebSocket change feed
}

// Get returns the link list for v1
func Get(c *gin.Context) {
	url := c.GetString(ContextURL)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Months:    url + "/v1/months",
			Sandbox:   url + "/v1/sandbox",
			Scenarios: url + "/v1/scenarios",
			Events:    url + "/v1/events",
		},
	})
}

// Options returns the allowed HTTP methods
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
