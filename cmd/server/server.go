package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"campaign-plan-service/internal/config"
	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/infrastructure/database"
	"campaign-plan-service/internal/infrastructure/generator"
	"campaign-plan-service/internal/infrastructure/logger"
	"campaign-plan-service/internal/infrastructure/observability"
	"campaign-plan-service/internal/infrastructure/queue"
	planrepo "campaign-plan-service/internal/infrastructure/repository/plan"
	"campaign-plan-service/internal/interfaces/httpserver"
	"campaign-plan-service/internal/worker"
)

// @title Campaign Plan API
// @version 1.0
// @description Queues AI campaign plan generation and manages the plan, section and task lifecycle.
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	planRepository := planrepo.NewPostgresRepository(db)
	planService := plan.NewService(planRepository)
	taskService := task.NewService(planRepository)

	if cfg.WorkerEnabled {
		planQueue := queue.NewPostgresQueue(db, log)
		generatorClient := generator.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout)
		workerPool := worker.NewPool(
			planQueue,
			planService,
			taskService,
			generatorClient,
			worker.Config{
				WorkerCount:  cfg.WorkerCount,
				PollInterval: cfg.WorkerPollInterval,
				JobTimeout:   cfg.GenerationTimeout,
			},
			log,
		)

		workerPool.Start(ctx)
		defer func() {
			log.Info().Msg("stopping worker pool")
			workerPool.Stop()
		}()
	}

	httpServer := httpserver.New(cfg, log, planService, taskService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
