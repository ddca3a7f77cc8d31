package healthz

import (
	"fmt"
	"net/http"

	"github.com/carryforward/backend/pkg/httputil"
	"github.com/carryforward/backend/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type httpError struct {
	Error string `json:"error" example:"an error occurred on the server during your request: sql: database is closed"`
}

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	r.OPTIONS("", Options)
	r.GET("", Get(db))
}

func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health and, if not healthy, an error
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}

		if err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("health check failed")
			c.JSON(http.StatusInternalServerError, httpError{Error: fmt.Errorf("%w: %w", models.ErrGeneral, err).Error()})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
