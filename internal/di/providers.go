package di

import (
	"fmt"

	"SalesCast/internal/domain/repository"
	domsvc "SalesCast/internal/domain/service"
	"SalesCast/internal/handler/api"
	internalrepo "SalesCast/internal/repository"
	"SalesCast/internal/services/engine"
	"SalesCast/internal/usecase"
	"SalesCast/pkg/config"
	xhttp "SalesCast/pkg/http"
	applogger "SalesCast/pkg/logger"
	"SalesCast/pkg/metrics"
	"SalesCast/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSeriesRepository creates the CSV-backed sales series repository.
func ProvideSeriesRepository(cfg *config.Config, logger *applogger.Logger, m repository.Metrics) repository.SeriesRepository {
	repo := internalrepo.NewCSVSeriesRepository(cfg.Data.Path)
	if r, ok := repo.(*internalrepo.CSVSeriesRepository); ok {
		r.SetLogger(logger)
		r.SetMetrics(m)
	}
	return repo
}

// ProvideForecaster creates the ARIMA forecasting engine.
func ProvideForecaster(cfg *config.Config) domsvc.Forecaster {
	return engine.NewARIMAForecaster(cfg)
}

// ProvideModelCache creates the single-slot trained model cache.
func ProvideModelCache() *usecase.ModelCache {
	return usecase.NewModelCache()
}

// ProvideOrchestrator creates the forecast orchestrator use case.
func ProvideOrchestrator(
	repo repository.SeriesRepository,
	forecaster domsvc.Forecaster,
	cache *usecase.ModelCache,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.ForecastOrchestrator {
	orch := usecase.NewForecastOrchestrator(repo, forecaster, cache, m)
	orch.SetLogger(logger)
	return orch
}

// ProvideRefresher creates the periodic retraining loop.
func ProvideRefresher(orch *usecase.ForecastOrchestrator, cfg *config.Config, logger *applogger.Logger) *usecase.Refresher {
	return usecase.NewRefresher(orch, cfg.Refresh.Interval, logger)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(
	logger *applogger.Logger,
	orch *usecase.ForecastOrchestrator,
	repo repository.SeriesRepository,
	m repository.Metrics,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewForecastEchoHandler(logger, orch, repo, m, cfg)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.Refresher,
) *server.App {
	return server.New(cfg, logger, handler, refresher)
}
