package v1

import (
	"net/http"

	"github.com/carryforward/backend/pkg/httputil"
	"github.com/carryforward/backend/pkg/projection"
	"github.com/carryforward/backend/pkg/sandbox"
	"github.com/carryforward/backend/pkg/summary"
	"github.com/gin-gonic/gin"
)

type SandboxResponse struct {
	Data  *sandbox.View `json:"data"`  // The sandbox session
	Error *string       `json:"error"` // The error, if any occurred
}

type EntityResponse struct {
	Data  any     `json:"data"`  // The sandbox entity
	Error *string `json:"error"` // The error, if any occurred
}

type EntityListResponse struct {
	Data  []any   `json:"data"`  // The sandbox entities of the collection
	Error *string `json:"error"` // The error, if any occurred
}

type ProjectionResponse struct {
	Data  map[sandbox.ID]projection.Series `json:"data"`  // Projected daily balances per sandbox account
	Error *string                          `json:"error"` // The error, if any occurred
}

// RegisterSandboxRoutes registers the routes for the sandbox with
// the RouterGroup that is passed.
func (co Controller) RegisterSandboxRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSandbox)
		r.GET("", co.GetSandbox)
		r.OPTIONS("/bootstrap/:month", OptionsSandboxCommand)
		r.POST("/bootstrap/:month", co.BootstrapSandbox)
		r.OPTIONS("/reset", OptionsSandboxCommand)
		r.POST("/reset", co.ResetSandbox)
		r.OPTIONS("/undo", OptionsSandboxCommand)
		r.POST("/undo", co.UndoSandbox)
		r.OPTIONS("/redo", OptionsSandboxCommand)
		r.POST("/redo", co.RedoSandbox)
		r.OPTIONS("/projection", OptionsSandbox)
		r.GET("/projection", co.GetSandboxProjection)
	}

	// Entity collections
	{
		r.OPTIONS("/:kind", OptionsSandboxEntityList)
		r.GET("/:kind", co.GetSandboxEntities)
		r.POST("/:kind", co.CreateSandboxEntity)
		r.OPTIONS("/:kind/:id", OptionsSandboxEntityDetail)
		r.GET("/:kind/:id", co.GetSandboxEntity)
		r.PATCH("/:kind/:id", co.UpdateSandboxEntity)
		r.DELETE("/:kind/:id", co.DeleteSandboxEntity)
	}
}

func OptionsSandbox(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsSandboxCommand(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsSandboxEntityList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsSandboxEntityDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// GetSandbox returns the sandbox session. If there is none yet, it is
// bootstrapped from the current month.
func (co Controller) GetSandbox(c *gin.Context) {
	view, err := co.Sandbox.Session(c.Request.Context())
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, SandboxResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, SandboxResponse{Data: &view})
}

// BootstrapSandbox replaces the session with a copy of the month.
func (co Controller) BootstrapSandbox(c *gin.Context) {
	month, err := httputil.MonthParam(c, "month")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, SandboxResponse{Error: msg})
		return
	}

	view, err := co.Sandbox.Bootstrap(c.Request.Context(), month)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, SandboxResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, SandboxResponse{Data: &view})
}

// ResetSandbox discards all changes by bootstrapping the current month again,
// regardless of the month the session was bootstrapped from.
func (co Controller) ResetSandbox(c *gin.Context) {
	view, err := co.Sandbox.Reset(c.Request.Context())
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, SandboxResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, SandboxResponse{Data: &view})
}

func (co Controller) UndoSandbox(c *gin.Context) {
	view := co.Sandbox.Undo()
	c.JSON(http.StatusOK, SandboxResponse{Data: &view})
}

func (co Controller) RedoSandbox(c *gin.Context) {
	view := co.Sandbox.Redo()
	c.JSON(http.StatusOK, SandboxResponse{Data: &view})
}

// GetSandboxProjection projects the balances of the sandbox accounts over
// the window, which defaults to the session month.
func (co Controller) GetSandboxProjection(c *gin.Context) {
	start, err := httputil.DateQuery(c, "start")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, ProjectionResponse{Error: msg})
		return
	}

	end, err := httputil.DateQuery(c, "end")
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, ProjectionResponse{Error: msg})
		return
	}

	if start.IsZero() || end.IsZero() {
		view, err := co.Sandbox.Session(c.Request.Context())
		if err != nil {
			code, msg := errorResponse(c, err)
			c.JSON(code, ProjectionResponse{Error: msg})
			return
		}

		if start.IsZero() {
			start = view.Month.Start()
		}
		if end.IsZero() {
			end = view.Month.End()
		}
	}

	if start.After(end) {
		code, msg := errorResponse(c, summary.ErrWindowInvalid)
		c.JSON(code, ProjectionResponse{Error: msg})
		return
	}

	series, err := co.Sandbox.Project(c.Request.Context(), start, end)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, ProjectionResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, ProjectionResponse{Data: series})
}

func (co Controller) GetSandboxEntities(c *gin.Context) {
	entities, err := co.Sandbox.List(c.Request.Context(), sandbox.Kind(c.Param("kind")))
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityListResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, EntityListResponse{Data: entities})
}

// CreateSandboxEntity adds an entity to the collection. It gets a pending
// id that is valid until the sandbox is bootstrapped again.
func (co Controller) CreateSandboxEntity(c *gin.Context) {
	body, err := httputil.RawBody(c)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	entity, err := co.Sandbox.Create(c.Request.Context(), sandbox.Kind(c.Param("kind")), body)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	c.JSON(http.StatusCreated, EntityResponse{Data: entity})
}

func (co Controller) GetSandboxEntity(c *gin.Context) {
	id, err := sandbox.ParseID(c.Param("id"))
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	entity, err := co.Sandbox.Get(c.Request.Context(), sandbox.Kind(c.Param("kind")), id)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, EntityResponse{Data: entity})
}

// UpdateSandboxEntity merges the fields in the request body into the entity.
func (co Controller) UpdateSandboxEntity(c *gin.Context) {
	id, err := sandbox.ParseID(c.Param("id"))
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	body, err := httputil.RawBody(c)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	entity, err := co.Sandbox.Update(c.Request.Context(), sandbox.Kind(c.Param("kind")), id, body)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, EntityResponse{Data: entity})
}

// DeleteSandboxEntity marks the entity as deleted. It is kept in the
// session so that the deletion can be undone.
func (co Controller) DeleteSandboxEntity(c *gin.Context) {
	id, err := sandbox.ParseID(c.Param("id"))
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	entity, err := co.Sandbox.Delete(c.Request.Context(), sandbox.Kind(c.Param("kind")), id)
	if err != nil {
		code, msg := errorResponse(c, err)
		c.JSON(code, EntityResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, EntityResponse{Data: entity})
}
