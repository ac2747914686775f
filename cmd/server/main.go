// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appConfig "github.com/festy23/team_service/internal/config"
	"github.com/festy23/team_service/internal/database/config"
	"github.com/festy23/team_service/internal/database/database"
	"github.com/festy23/team_service/internal/database/migrate"
	"github.com/festy23/team_service/internal/event"
	"github.com/festy23/team_service/internal/health"
	"github.com/festy23/team_service/internal/middleware"
	statisticsRouter "github.com/festy23/team_service/internal/statistics/router"
	teamModel "github.com/festy23/team_service/internal/team/model"
	teamRouter "github.com/festy23/team_service/internal/team/router"
	"github.com/festy23/team_service/pkg/logger"
)

func main() {
	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	gin.SetMode(cfg.GinMode)

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			appLogger.Errorw("failed to close database", "error", closeErr)
		}
	}()

	if strings.EqualFold(config.GetEnv("RUN_MIGRATIONS", "true"), "true") {
		if err := migrate.Migrate(db); err != nil {
			appLogger.Fatalw("failed to apply migrations", "error", err)
		}
	}

	bus := event.NewBus(appLogger)
	registerEventAudit(bus, appLogger)

	r := gin.New()
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Recovery(appLogger))

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	teamRouter.RegisterRoutes(r, db, bus, appLogger)
	statisticsRouter.RegisterRoutes(r, db, appLogger)

	addr := cfg.Server.GetAddress()
	appLogger.Infow("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Fatalw("failed to start server", "error", err)
	}
}

// registerEventAudit logs every published domain event. Other consumers
// (notifications, projections) subscribe to the same bus.
func registerEventAudit(bus *event.Bus, appLogger *zap.SugaredLogger) {
	for _, eventType := range teamModel.AllEventTypes() {
		bus.Subscribe(eventType, func(ctx context.Context, ev teamModel.Event) error {
			appLogger.Infow("domain event",
				"event_id", ev.ID,
				"event_type", ev.Type,
				"team_id", ev.TeamID,
				"occurred_at", ev.OccurredAt,
			)
			return nil
		})
	}
}
