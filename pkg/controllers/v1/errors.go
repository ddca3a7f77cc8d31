package v1

import (
	"errors"
	"net/http"

	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/sandbox"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type httpError struct {
	Error string `json:"error" example:"the month must be formatted as YYYY-MM"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, sandbox.ErrScenarioCorrupt) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// errorResponse returns the status and message for an error. Server errors
// are logged with the request id so that they can be found from the response.
func errorResponse(c *gin.Context, err error) (int, *string) {
	code := status(err)
	if code >= http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	s := err.Error()
	return code, &s
}
