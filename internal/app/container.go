// Package app provides the dependency injection container for the application.
package app

import (
	"time"

	"github.com/scopeplan/scopeplan/internal/domain"
	"github.com/scopeplan/scopeplan/internal/infra/config"
	"github.com/scopeplan/scopeplan/internal/infra/console"
	"github.com/scopeplan/scopeplan/internal/infra/logging"
	"github.com/scopeplan/scopeplan/internal/infra/oracle"
	"github.com/scopeplan/scopeplan/internal/infra/planstore"
	"github.com/scopeplan/scopeplan/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Store    domain.PlanStore
	Oracle   domain.Oracle
	Prompter domain.Prompter
	Clock    domain.Clock
	Logger   domain.Logger
	Config   *domain.Config

	fileLogger *logging.Logger
}

// New creates a new Container from the resolved configuration.
func New() (*Container, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates a Container from an already resolved configuration.
func NewWithConfig(cfg *domain.Config) *Container {
	fileLogger := logging.New(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))
	var logger domain.Logger = fileLogger

	backend := oracle.New(oracle.Config{
		Provider: cfg.Oracle.Provider,
		Command:  cfg.Oracle.Command,
		BaseURL:  cfg.Oracle.BaseURL,
		APIKey:   cfg.Oracle.APIKey,
		Model:    cfg.Oracle.Model,
		Timeout:  time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second,
	}, logger)

	return &Container{
		Store:      planstore.New(logger),
		Oracle:     backend,
		Prompter:   console.New(cfg.Editor),
		Clock:      domain.RealClock{},
		Logger:     logger,
		Config:     cfg,
		fileLogger: fileLogger,
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, store domain.PlanStore, backend domain.Oracle, prompter domain.Prompter, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Store:    store,
		Oracle:   backend,
		Prompter: prompter,
		Clock:    clock,
		Logger:   logger,
		Config:   cfg,
	}
}

// Close releases held resources, currently the log file.
func (c *Container) Close() error {
	if c.fileLogger != nil {
		return c.fileLogger.Close()
	}
	return nil
}

// UseCase factory methods

// CreateRootTaskUseCase returns a new CreateRootTask use case.
func (c *Container) CreateRootTaskUseCase() *usecase.CreateRootTask {
	return usecase.NewCreateRootTask(c.Store, c.Oracle, c.Prompter, c.Clock, c.Logger)
}

// BreakdownTaskUseCase returns a new BreakdownTask use case.
func (c *Container) BreakdownTaskUseCase() *usecase.BreakdownTask {
	return usecase.NewBreakdownTask(c.Oracle, c.Clock, c.Logger)
}

// ReviewSubtasksUseCase returns a new ReviewSubtasks use case.
func (c *Container) ReviewSubtasksUseCase() *usecase.ReviewSubtasks {
	return usecase.NewReviewSubtasks(c.Oracle, c.Prompter, c.Clock, c.Logger)
}

// RunPlanUseCase returns a new RunPlan use case.
func (c *Container) RunPlanUseCase() *usecase.RunPlan {
	return usecase.NewRunPlan(c.Store, c.BreakdownTaskUseCase(), c.ReviewSubtasksUseCase(), c.Prompter, c.Clock, c.Logger)
}

// ExportPlanUseCase returns a new ExportPlan use case.
func (c *Container) ExportPlanUseCase() *usecase.ExportPlan {
	return usecase.NewExportPlan(c.Store, c.Logger)
}
