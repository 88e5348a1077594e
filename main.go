package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pickem-engine-go/config"
	"pickem-engine-go/database"
	"pickem-engine-go/handlers"
	"pickem-engine-go/logging"
	"pickem-engine-go/middleware"
	"pickem-engine-go/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Output:      os.Stdout,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	gameRepo := database.NewMongoGameRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	seasonRepo := database.NewMongoSeasonStateRepository(db)

	scoreFeed := services.NewOddsAPIScoreFeed(cfg.ScoreFeed.BaseURL, cfg.ScoreFeed.APIKey, cfg.ScoreFeed.Timeout)
	matcher := services.NewScoreMatcher()
	grader := services.NewPickGrader(pickRepo)
	advancer := services.NewSeasonAdvancer(gameRepo, seasonRepo)

	var events *services.EventPublisher
	if cfg.Redis.Enabled {
		events = services.NewEventPublisher(cfg.Redis.Addr, cfg.Redis.Channel)
		defer events.Close()
	}

	resolver := services.NewResolutionService(
		gameRepo, scoreFeed, matcher, grader, advancer, events,
		cfg.App.CurrentSeason, cfg.ScoreFeed.LookbackDays,
	)

	// Make sure every weekly league has a season-state row to advance
	ctx, cancel := newStartupContext(cfg)
	for _, league := range cfg.App.Leagues {
		if err := seasonRepo.EnsureExists(ctx, league, cfg.App.CurrentSeason); err != nil {
			logging.Errorf("Failed to initialize season state for %s: %v", league, err)
		}
	}
	cancel()

	scheduler := services.NewResolutionScheduler(resolver, cfg.App.Leagues, cfg.App.ResolveInterval)
	if cfg.App.SchedulerEnabled {
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		logging.Info("Scheduler disabled, resolution runs only via API trigger")
	}

	resolutionHandler := handlers.NewResolutionHandler(resolver)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.ServiceSecret)

	r := mux.NewRouter()
	r.Handle("/api/leagues/{league}/resolve",
		authMiddleware.RequireServiceToken(http.HandlerFunc(resolutionHandler.TriggerResolve))).Methods("POST")
	r.HandleFunc("/api/health", resolutionHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: r,
	}

	go func() {
		logging.Infof("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Block until interrupted
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down")
	if err := server.Close(); err != nil {
		logging.Errorf("Server close failed: %v", err)
	}
}

func newStartupContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Database.Timeout)
}
