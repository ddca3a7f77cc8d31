package v1

import (
	"net/http"

	"github.com/carryforward/backend/pkg/httputil"
	"github.com/carryforward/backend/pkg/resolve"
	"github.com/carryforward/backend/pkg/summary"
	"github.com/gin-gonic/gin"
)

type MonthResponse struct {
	Data  *resolve.Snapshot `json:"data"`  // The configuration in effect for the month
	Error *string           `json:"error"` // The error, if any occurred
}

type BalancesResponse struct {
	Data  *summary.Balances `json:"data"`  // Planned and actual balances of all accounts
	Error *string           `json:"error"` // The error, if any occurred
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:month", OptionsMonth)
		r.GET("/:month", co.GetMonth)
		r.OPTIONS("/:month/balances", OptionsMonth)
		r.GET("/:month/balances", co.GetBalances)
	}
}

func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMonth returns the configuration of the month. A month that has never
// been configured is carried forward from the latest edited month before it.
func (co Controller) GetMonth(c *gin.Context) {
	month, err := httputil.MonthParam(c, "month")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, MonthResponse{Error: msg})
		return
	}

	snapshot, err := co.Resolver.Resolve(c.Request.Context(), month)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, MonthResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &snapshot})
}

// GetBalances returns the planned and actual balance series for all accounts
// of the month. The window defaults to the whole month.
func (co Controller) GetBalances(c *gin.Context) {
	month, err := httputil.MonthParam(c, "month")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, BalancesResponse{Error: msg})
		return
	}

	start, err := httputil.DateQuery(c, "start")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, BalancesResponse{Error: msg})
		return
	}

	end, err := httputil.DateQuery(c, "end")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, BalancesResponse{Error: msg})
		return
	}

	balances, err := co.Summary.Balances(c.Request.Context(), month, start, end)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, BalancesResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, BalancesResponse{Data: &balances})
}
