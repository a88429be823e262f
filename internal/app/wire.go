//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"jobscout/internal/assistant"
	"jobscout/internal/config"
	"jobscout/internal/headhunter"
	"jobscout/internal/storage"
)

// InitializeApp creates an App with all components wired up.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(
		provideLogger,

		// Storage
		provideStore,
		wire.Bind(new(assistant.Repository), new(*storage.Store)),

		// Source
		provideClient,
		wire.Bind(new(assistant.Fetcher), new(*headhunter.Client)),

		// Services
		assistant.NewService,
		newApp,
	)

	return &App{}, nil
}
