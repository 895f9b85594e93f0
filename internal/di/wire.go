//go:build wireinject
// +build wireinject

package di

import (
	"SalesCast/pkg/config"
	"SalesCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Data access
		ProvideSeriesRepository,

		// Forecasting engine
		ProvideForecaster,
		ProvideModelCache,

		// Use cases
		ProvideOrchestrator,
		ProvideRefresher,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
