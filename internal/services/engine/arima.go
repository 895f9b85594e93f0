// Package engine adapts the ARIMA library behind the domain Forecaster
// interface. Nothing outside this package knows which model family is used.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/autoarima"
	"github.com/sartorproj/goarima/timeseries"

	"SalesCast/internal/domain/models"
	domsvc "SalesCast/internal/domain/service"
	"SalesCast/pkg/config"
)

// ARIMAForecaster trains Auto-ARIMA models on canonical series. Daily sales
// get a weekly seasonal period when the series is long enough to support it.
type ARIMAForecaster struct {
	confidence float64
	seasonalM  int
}

func NewARIMAForecaster(cfg *config.Config) *ARIMAForecaster {
	return &ARIMAForecaster{
		confidence: cfg.Forecast.Confidence,
		seasonalM:  cfg.Forecast.SeasonalPeriod,
	}
}

func (f *ARIMAForecaster) Fit(_ context.Context, series *models.Series) (domsvc.ModelHandle, error) {
	if series == nil || series.Len() == 0 {
		return nil, models.NewTrainingError(fmt.Errorf("empty series"))
	}
	if series.DistinctTimestamps() < 2 {
		return nil, models.NewTrainingError(fmt.Errorf("need at least 2 distinct timestamps, got %d", series.DistinctTimestamps()))
	}

	ts, err := timeseries.NewWithTimestamps(series.Timestamps(), series.Values())
	if err != nil {
		return nil, models.NewTrainingError(err)
	}

	searchCfg := autoarima.DefaultConfig()
	// Seasonal search needs a few full periods of data to be meaningful.
	if f.seasonalM > 1 && series.Len() >= 3*f.seasonalM {
		searchCfg.Seasonal = true
		searchCfg.SeasonalM = f.seasonalM
	}

	result, err := autoarima.AutoARIMA(ts, searchCfg)
	if err != nil {
		return nil, models.NewTrainingError(err)
	}
	if result == nil || (result.Model == nil && result.SeasonalModel == nil) {
		return nil, models.NewTrainingError(fmt.Errorf("model search produced no candidate"))
	}

	return &arimaModel{
		result:     result,
		points:     append([]models.Point(nil), series.Points...),
		sigma:      residualStddev(result.Residuals()),
		confidence: f.confidence,
	}, nil
}

var _ domsvc.Forecaster = (*ARIMAForecaster)(nil)

// arimaModel is the opaque handle bound to one training series.
type arimaModel struct {
	result     *autoarima.Result
	points     []models.Point
	sigma      float64
	confidence float64
}

func (m *arimaModel) TrainedThrough() time.Time {
	return m.points[len(m.points)-1].TS
}

func (m *arimaModel) TrainedRows() int { return len(m.points) }

// Predict builds the full frame: fitted history rows at the training
// timestamps, then futureDays contiguous daily rows past the last one.
func (m *arimaModel) Predict(_ context.Context, futureDays int) (*models.PredictionFrame, error) {
	if futureDays < 1 {
		return nil, fmt.Errorf("futureDays must be at least 1")
	}

	z := zScore(m.confidence)
	band := z * m.sigma

	rows := make([]models.PredictionRow, 0, len(m.points)+futureDays)

	fitted := m.fittedValues()
	// Fitted values can be shorter than the series when differencing eats
	// the head; align them to the tail and fall back to actuals before that.
	offset := len(m.points) - len(fitted)
	if offset < 0 {
		offset = 0
	}
	for i, p := range m.points {
		est := p.Value
		if i >= offset && i-offset < len(fitted) {
			est = fitted[i-offset]
		}
		rows = append(rows, boundedRow(p.TS, est, est-band, est+band))
	}

	forecasts, lower, upper, err := m.futureValues(futureDays, band)
	if err != nil {
		return nil, err
	}

	day := m.TrainedThrough()
	for i := 0; i < futureDays; i++ {
		day = day.AddDate(0, 0, 1)
		rows = append(rows, boundedRow(day, forecasts[i], lower[i], upper[i]))
	}

	return &models.PredictionFrame{Rows: rows}, nil
}

func (m *arimaModel) fittedValues() []float64 {
	if m.result.IsSeasonal && m.result.SeasonalModel != nil {
		return m.result.SeasonalModel.FittedValues()
	}
	if m.result.Model != nil {
		return m.result.Model.FittedValues()
	}
	return nil
}

func (m *arimaModel) futureValues(steps int, band float64) (forecasts, lower, upper []float64, err error) {
	if m.result.IsSeasonal && m.result.SeasonalModel != nil {
		return m.result.SeasonalModel.PredictWithInterval(steps, m.confidence)
	}

	forecasts, err = m.result.Predict(steps)
	if err != nil {
		return nil, nil, nil, err
	}
	// Interval widens with the forecast step, as for a random walk.
	lower = make([]float64, steps)
	upper = make([]float64, steps)
	for i := range forecasts {
		w := band * math.Sqrt(float64(i+1))
		lower[i] = forecasts[i] - w
		upper[i] = forecasts[i] + w
	}
	return forecasts, lower, upper, nil
}

// boundedRow guarantees lower <= point <= upper even if the model's
// interval crosses the point estimate.
func boundedRow(ts time.Time, est, lo, up float64) models.PredictionRow {
	if lo > est {
		lo = est
	}
	if up < est {
		up = est
	}
	return models.PredictionRow{TS: ts, PointEstimate: est, LowerBound: lo, UpperBound: up}
}

func residualStddev(residuals []float64) float64 {
	if len(residuals) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range residuals {
		mean += r
	}
	mean /= float64(len(residuals))

	ss := 0.0
	for _, r := range residuals {
		d := r - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(residuals)-1))
}

func zScore(confidence float64) float64 {
	switch {
	case confidence >= 0.99:
		return 2.576
	case confidence >= 0.95:
		return 1.96
	case confidence >= 0.90:
		return 1.645
	case confidence >= 0.80:
		return 1.282
	default:
		return 1.96
	}
}
