package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/carryforward/backend/internal/config"
	v1 "github.com/carryforward/backend/pkg/controllers/v1"
	"github.com/carryforward/backend/pkg/events"
	"github.com/carryforward/backend/pkg/models"
	"github.com/carryforward/backend/pkg/resolve"
	"github.com/carryforward/backend/pkg/router"
	"github.com/carryforward/backend/pkg/sandbox"
	"github.com/carryforward/backend/pkg/summary"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	db, err := models.Connect(dialector(cfg))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	bus := events.NewBus()
	resolver := resolve.NewResolver(db, bus)
	manager := sandbox.NewManager(db, resolver, bus, sandbox.WithUndoLimit(cfg.SandboxUndoLimit))
	ws := events.NewWebSocket(bus)

	r, teardown, err := router.Config(cfg.APIURL, cfg.CORSAllowOrigins)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"), db, v1.Controller{
		Resolver: resolver,
		Sandbox:  manager,
		Summary:  summary.NewService(db, resolver, cfg.Currency),
	}, ws, cfg.EnablePprof)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	// WebSocket connections are hijacked and not closed by Shutdown
	if err := ws.Close(); err != nil {
		log.Error().Err(err).Msg("closing event clients")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	manager.Close()
	bus.Wait()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// dialector returns the database to connect to. The directory for the
// SQLite database is created if needed.
func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.Postgres() {
		return postgres.Open(cfg.PostgresDSN())
	}

	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	return sqlite.Open(cfg.DBPath + "?_pragma=foreign_keys(1)")
}
