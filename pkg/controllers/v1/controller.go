// Package v1 implements the HTTP handlers for the v1 API.
package v1

import (
	"github.com/carryforward/backend/pkg/resolve"
	"github.com/carryforward/backend/pkg/sandbox"
	"github.com/carryforward/backend/pkg/summary"
	"github.com/gin-gonic/gin"
)

// Controller holds the services the handlers work with.
type Controller struct {
	Resolver *resolve.Resolver
	Sandbox  *sandbox.Manager
	Summary  *summary.Service
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	RegisterRootRoutes(r)
	co.RegisterMonthRoutes(r.Group("/months"))
	co.RegisterSandboxRoutes(r.Group("/sandbox"))
	co.RegisterScenarioRoutes(r.Group("/scenarios"))
}
