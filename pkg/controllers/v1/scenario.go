package v1

import (
	"net/http"

	"github.com/carryforward/backend/pkg/httputil"
	"github.com/carryforward/backend/pkg/models"
	"github.com/gin-gonic/gin"
)

type ScenarioEditable struct {
	Name string `json:"name" example:"Move to a cheaper flat"` // Name of the scenario
}

type ScenarioResponse struct {
	Data  *models.Scenario `json:"data"`  // Data for the scenario
	Error *string          `json:"error"` // The error, if any occurred
}

type ScenarioListResponse struct {
	Data  []models.Scenario `json:"data"`  // List of scenarios
	Error *string           `json:"error"` // The error, if any occurred
}

type ScenarioQueryFilter struct {
	Name string `form:"name"` // Glob the scenario names must match
}

// RegisterScenarioRoutes registers the routes for scenarios with
// the RouterGroup that is passed.
func (co Controller) RegisterScenarioRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsScenarioList)
		r.GET("", co.GetScenarios)
		r.POST("", co.CreateScenario)
	}

	{
		r.OPTIONS("/:id", OptionsScenarioDetail)
		r.DELETE("/:id", co.DeleteScenario)
		r.OPTIONS("/:id/load", OptionsScenarioLoad)
		r.POST("/:id/load", co.LoadScenario)
	}
}

func OptionsScenarioList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsScenarioDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

func OptionsScenarioLoad(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetScenarios returns the saved scenarios, newest first.
func (co Controller) GetScenarios(c *gin.Context) {
	var filter ScenarioQueryFilter
	if err := c.BindQuery(&filter); err != nil {
		return
	}

	scenarios, err := co.Sandbox.ListScenarios(c.Request.Context(), filter.Name)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, ScenarioListResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, ScenarioListResponse{Data: scenarios})
}

// CreateScenario saves the sandbox session under the name.
func (co Controller) CreateScenario(c *gin.Context) {
	var editable ScenarioEditable
	if err := httputil.BindData(c, &editable); err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, ScenarioResponse{Error: msg})
		return
	}

	scenario, err := co.Sandbox.SaveScenario(c.Request.Context(), editable.Name)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, ScenarioResponse{Error: msg})
		return
	}

	c.JSON(http.StatusCreated, ScenarioResponse{Data: &scenario})
}

// LoadScenario replaces the sandbox session with the scenario. The undo
// history is cleared.
func (co Controller) LoadScenario(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, SandboxResponse{Error: msg})
		return
	}

	view, err := co.Sandbox.LoadScenario(c.Request.Context(), id)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, SandboxResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, SandboxResponse{Data: &view})
}

func (co Controller) DeleteScenario(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, httpError{Error: *msg})
		return
	}

	err = co.Sandbox.DeleteScenario(c.Request.Context(), id)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, httpError{Error: *msg})
		return
	}

	c.Status(http.StatusNoContent)
}
