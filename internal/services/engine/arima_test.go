package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"SalesCast/internal/domain/models"
	"SalesCast/pkg/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Forecast.Confidence = 0.95
	cfg.Forecast.SeasonalPeriod = 7
	return cfg
}

// dailySeries builds a trend plus weekly pattern, the shape of the default
// sales dataset.
func dailySeries(n int) *models.Series {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.Point, n)
	for i := 0; i < n; i++ {
		ts := start.AddDate(0, 0, i)
		weekly := 40 * math.Sin(2*math.Pi*float64(ts.Weekday())/7)
		points[i] = models.Point{TS: ts, Value: 220 + 0.35*float64(i) + weekly}
	}
	return &models.Series{Points: points}
}

func TestFitAndPredictDailySales(t *testing.T) {
	f := NewARIMAForecaster(testConfig())
	series := dailySeries(180)

	handle, err := f.Fit(context.Background(), series)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if handle.TrainedRows() != 180 {
		t.Fatalf("expected 180 trained rows, got %d", handle.TrainedRows())
	}
	if !handle.TrainedThrough().Equal(series.Last()) {
		t.Fatalf("trained-through mismatch: %v vs %v", handle.TrainedThrough(), series.Last())
	}

	frame, err := handle.Predict(context.Background(), 30)
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if len(frame.Rows) != 180+30 {
		t.Fatalf("expected full frame of 210 rows, got %d", len(frame.Rows))
	}
	for i, row := range frame.Rows {
		if row.LowerBound > row.PointEstimate || row.PointEstimate > row.UpperBound {
			t.Fatalf("row %d bounds violated: %+v", i, row)
		}
	}

	// Future rows are contiguous daily extensions past the last observation.
	future := frame.After(handle.TrainedThrough())
	if len(future.Rows) != 30 {
		t.Fatalf("expected 30 future rows, got %d", len(future.Rows))
	}
	want := series.Last()
	for i, row := range future.Rows {
		want = want.AddDate(0, 0, 1)
		if !row.TS.Equal(want) {
			t.Fatalf("future row %d: expected %v, got %v", i, want, row.TS)
		}
	}
}

func TestFitRejectsDegenerateSeries(t *testing.T) {
	f := NewARIMAForecaster(testConfig())
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []*models.Series{
		{},
		{Points: []models.Point{{TS: ts, Value: 10}}},
		{Points: []models.Point{{TS: ts, Value: 10}, {TS: ts, Value: 20}}},
	}
	for i, series := range cases {
		_, err := f.Fit(context.Background(), series)
		var derr *models.DomainError
		if !errors.As(err, &derr) || derr.Kind != models.KindTraining {
			t.Fatalf("case %d: expected training error, got %v", i, err)
		}
	}
}

func TestPredictRejectsZeroHorizon(t *testing.T) {
	f := NewARIMAForecaster(testConfig())

	handle, err := f.Fit(context.Background(), dailySeries(30))
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if _, err := handle.Predict(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero horizon")
	}
}
