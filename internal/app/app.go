// Package app assembles the jobscout components from a Config.
package app

import (
	"errors"

	"jobscout/internal/assistant"
	"jobscout/internal/config"
	"jobscout/internal/headhunter"
	"jobscout/internal/logger"
	"jobscout/internal/scheduler"
	"jobscout/internal/storage"
)

// ErrScheduleDisabled is returned by NewScheduler when schedule.enabled is false.
var ErrScheduleDisabled = errors.New("schedule is disabled, set schedule.enabled in the config")

// App holds the wired components the CLI works with.
type App struct {
	Config  *config.Config
	Service *assistant.Service
	Store   *storage.Store
	Log     *logger.Logger
}

// NewScheduler builds the cron scheduler for the configured keywords. The
// schedule section is only validated when enabled, so a disabled schedule is
// refused.
func (a *App) NewScheduler() (*scheduler.Scheduler, error) {
	if !a.Config.Schedule.Enabled {
		return nil, ErrScheduleDisabled
	}

	return scheduler.New(a.Service, a.Config.Schedule.Spec, a.Config.Schedule.Keywords, a.Log)
}

// provideLogger builds the logger from the logging section.
func provideLogger(cfg *config.Config) *logger.Logger {
	return logger.NewLogger(cfg.Logging.Level)
}

// provideStore opens the vacancies file store.
func provideStore(cfg *config.Config, log *logger.Logger) (*storage.Store, error) {
	opts := []storage.Option{storage.WithLogger(log)}
	if !cfg.Storage.ValidateSchema {
		opts = append(opts, storage.WithoutSchemaValidation())
	}

	return storage.NewStore(cfg.Storage.Path, opts...)
}

// provideClient creates the HeadHunter API client.
func provideClient(cfg *config.Config, log *logger.Logger) *headhunter.Client {
	return headhunter.NewClient(cfg.Source, log)
}

func newApp(cfg *config.Config, svc *assistant.Service, store *storage.Store, log *logger.Logger) *App {
	return &App{
		Config:  cfg,
		Service: svc,
		Store:   store,
		Log:     log,
	}
}
