package usecase

import (
	"context"
	"time"

	"SalesCast/internal/domain/models"
	domrepo "SalesCast/internal/domain/repository"
	domsvc "SalesCast/internal/domain/service"
	applogger "SalesCast/pkg/logger"
)

// ForecastOrchestrator drives the model lifecycle: it validates the horizon,
// obtains a model from the cache or a fresh fit, asks the engine for the
// full prediction frame and windows it down to the future-only contract.
type ForecastOrchestrator struct {
	repo    domrepo.SeriesRepository
	engine  domsvc.Forecaster
	cache   *ModelCache
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewForecastOrchestrator(repo domrepo.SeriesRepository, engine domsvc.Forecaster, cache *ModelCache, metrics domrepo.Metrics) *ForecastOrchestrator {
	return &ForecastOrchestrator{repo: repo, engine: engine, cache: cache, metrics: metrics}
}

// SetLogger attaches a logger for lifecycle events.
func (o *ForecastOrchestrator) SetLogger(l *applogger.Logger) { o.logger = l }

// ForecastDefault serves a forecast from the default source. The trained
// model is cached across calls; only Retrain replaces it.
func (o *ForecastOrchestrator) ForecastDefault(ctx context.Context, horizonDays int) (*models.ForecastResult, error) {
	if horizonDays <= 0 {
		return nil, models.NewInvalidHorizonError(horizonDays)
	}

	handle, err := o.cache.GetOrTrain(ctx, o.trainDefault)
	if err != nil {
		o.recordError(err)
		return nil, err
	}

	res, err := o.forecastWith(ctx, handle, horizonDays)
	if err != nil {
		o.recordError(err)
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.RecordForecastServed("default")
	}
	return res, nil
}

// ForecastSeries serves a forecast for a caller-supplied series. Supplied
// series are single-use: always trained fresh, never cached.
func (o *ForecastOrchestrator) ForecastSeries(ctx context.Context, series *models.Series, horizonDays int) (*models.ForecastResult, error) {
	if horizonDays <= 0 {
		return nil, models.NewInvalidHorizonError(horizonDays)
	}

	handle, err := o.train(ctx, series, "upload")
	if err != nil {
		o.recordError(err)
		return nil, err
	}

	res, err := o.forecastWith(ctx, handle, horizonDays)
	if err != nil {
		o.recordError(err)
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.RecordForecastServed("upload")
	}
	return res, nil
}

// Retrain reloads the default source, fits a new model and replaces the
// cache slot. This is the refresh trigger's entry point and the only path
// that invalidates a cached model.
func (o *ForecastOrchestrator) Retrain(ctx context.Context) (int, error) {
	handle, err := o.trainDefault(ctx)
	if err != nil {
		o.recordError(err)
		return 0, err
	}
	o.cache.Replace(handle)
	if o.logger != nil {
		o.logger.Info("model retrained",
			applogger.Int("rows", handle.TrainedRows()),
			applogger.String("trained_through", handle.TrainedThrough().Format("2006-01-02")),
		)
	}
	return handle.TrainedRows(), nil
}

func (o *ForecastOrchestrator) trainDefault(ctx context.Context) (domsvc.ModelHandle, error) {
	series, err := o.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return o.train(ctx, series, "default")
}

func (o *ForecastOrchestrator) train(ctx context.Context, series *models.Series, source string) (domsvc.ModelHandle, error) {
	if series == nil || series.Len() == 0 {
		return nil, models.NewEmptySeriesError()
	}
	// The resolver keeps duplicate timestamps; collapse them last-write-wins
	// so the engine always sees strictly increasing timestamps.
	deduped := series.Dedup()

	start := time.Now()
	handle, err := o.engine.Fit(ctx, deduped)
	if err != nil {
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.RecordTraining(source, handle.TrainedRows())
		o.metrics.RecordLatency("train", time.Since(start).Seconds())
	}
	return handle, nil
}

// forecastWith asks for the full frame and returns only rows strictly after
// the last trained timestamp: history rows never reach the caller.
func (o *ForecastOrchestrator) forecastWith(ctx context.Context, handle domsvc.ModelHandle, horizonDays int) (*models.ForecastResult, error) {
	start := time.Now()
	frame, err := handle.Predict(ctx, horizonDays)
	if err != nil {
		if derr, ok := err.(*models.DomainError); ok {
			return nil, derr
		}
		return nil, models.NewPredictionError(err)
	}
	if o.metrics != nil {
		o.metrics.RecordLatency("predict", time.Since(start).Seconds())
	}

	future := frame.After(handle.TrainedThrough())
	return &models.ForecastResult{
		Rows:        future.Rows,
		Horizon:     horizonDays,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (o *ForecastOrchestrator) recordError(err error) {
	if o.metrics == nil {
		return
	}
	if derr, ok := err.(*models.DomainError); ok {
		o.metrics.RecordError(derr.Kind)
		return
	}
	o.metrics.RecordError("internal")
}
