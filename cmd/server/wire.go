//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campaign-plan-service/internal/config"
	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/infrastructure/database"
	"campaign-plan-service/internal/infrastructure/generator"
	"campaign-plan-service/internal/infrastructure/logger"
	"campaign-plan-service/internal/infrastructure/queue"
	planrepo "campaign-plan-service/internal/infrastructure/repository/plan"
	"campaign-plan-service/internal/interfaces/httpserver"
)

var planSet = wire.NewSet(
	planrepo.NewPostgresRepository,
	wire.Bind(new(plan.Repository), new(*planrepo.PostgresRepository)),
	wire.Bind(new(task.Repository), new(*planrepo.PostgresRepository)),
	newPlanService,
	newTaskService,
	newGeneratorClient,
	wire.Bind(new(plan.Generator), new(*generator.Client)),
	queue.NewPostgresQueue,
	wire.Bind(new(queue.PlanQueue), new(*queue.PostgresQueue)),
)

// BuildApplication demonstrates how to assemble the plan service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		planSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newPlanService(repo plan.Repository) plan.Service {
	return plan.NewService(repo)
}

func newTaskService(repo task.Repository) task.Service {
	return task.NewService(repo)
}

func newGeneratorClient(cfg *config.Config) *generator.Client {
	return generator.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout)
}
