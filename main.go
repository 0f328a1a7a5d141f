package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/api"
	"github.com/hazemadel/staffdeck-be/internal/config"
	"github.com/hazemadel/staffdeck-be/internal/database"
	"github.com/hazemadel/staffdeck-be/internal/logger"
	"github.com/hazemadel/staffdeck-be/internal/monitoring"
	"github.com/hazemadel/staffdeck-be/internal/services"
	"github.com/hazemadel/staffdeck-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	activityService := services.NewActivityService(db)
	serverService := services.NewServerService(db, hub, activityService)
	eventService := services.NewEventService(db, activityService)
	payrollService := services.NewPayrollService(serverService, eventService)
	catererService := services.NewCatererService(db)
	userService := services.NewUserService(db)

	// Set up and run the payday reminder
	reminder, err := monitoring.NewPaydayReminder(serverService, activityService, hub, cfg.PaydayCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up payday reminder")
	}
	go reminder.Run()

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Hub:             hub,
		ServerService:   serverService,
		EventService:    eventService,
		PayrollService:  payrollService,
		CatererService:  catererService,
		UserService:     userService,
		ActivityService: activityService,
		AllowedOrigin:   cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reminder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
