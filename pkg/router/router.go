package router

import (
	"net/http"
	"net/url"

	"github.com/carryforward/backend/pkg/controllers/healthz"
	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/pkg/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

type httpError struct {
	Error string `json:"error" example:"This HTTP method is not allowed for the endpoint you called"`
}

// Config creates the router with all middlewares. The returned function
// unregisters the metrics and must be called when the router is not used
// anymore.
func Config(url *url.URL, allowOrigins []string) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}
	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister metrics")
		}
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httpError{Error: "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if len(allowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
//
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(group *gin.RouterGroup, db *gorm.DB, co v1.Controller, events http.Handler, enablePprof bool) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	healthz.RegisterRoutes(group.Group("/healthz"), db)

	// pprof performance profiles
	if enablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	v1Group := group.Group("/v1")
	co.RegisterRoutes(v1Group)
	v1Group.GET("/events", gin.WrapH(events))
	v1Group.OPTIONS("/events", httputil.OptionsGet)
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Health of the backend
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
func GetRoot(c *gin.Context) {
	url := c.GetString(v1.ContextURL)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
