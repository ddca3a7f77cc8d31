package httputil

import (
	"github.com/carryforward/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// MonthParam parses the path parameter as a month in YYYY-MM format.
func MonthParam(c *gin.Context, name string) (types.Month, error) {
	m, err := types.ParseMonth(c.Param(name))
	if err != nil {
		return types.Month{}, ErrInvalidMonth
	}
	return m, nil
}

// DateQuery parses the query parameter as a date. A missing parameter is
// the zero date.
func DateQuery(c *gin.Context, name string) (types.Date, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return types.Date{}, nil
	}

	d, err := types.ParseDate(v)
	if err != nil {
		return types.Date{}, ErrInvalidDate
	}
	return d, nil
}
