package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"SalesCast/internal/domain/models"
	domsvc "SalesCast/internal/domain/service"
)

type fakeHandle struct {
	points      []models.Point
	failPredict bool
}

func (h *fakeHandle) TrainedThrough() time.Time { return h.points[len(h.points)-1].TS }
func (h *fakeHandle) TrainedRows() int          { return len(h.points) }

func (h *fakeHandle) Predict(_ context.Context, futureDays int) (*models.PredictionFrame, error) {
	if h.failPredict {
		return nil, errors.New("matrix is singular")
	}
	rows := make([]models.PredictionRow, 0, len(h.points)+futureDays)
	for _, p := range h.points {
		rows = append(rows, models.PredictionRow{TS: p.TS, PointEstimate: p.Value, LowerBound: p.Value - 1, UpperBound: p.Value + 1})
	}
	day := h.TrainedThrough()
	for i := 0; i < futureDays; i++ {
		day = day.AddDate(0, 0, 1)
		est := 100 + float64(i)
		rows = append(rows, models.PredictionRow{TS: day, PointEstimate: est, LowerBound: est - 5, UpperBound: est + 5})
	}
	return &models.PredictionFrame{Rows: rows}, nil
}

type fakeEngine struct {
	fits        int32
	failFit     bool
	failPredict bool
	delay       time.Duration

	mu      sync.Mutex
	trained []*models.Series
}

func (e *fakeEngine) Fit(_ context.Context, series *models.Series) (domsvc.ModelHandle, error) {
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	atomic.AddInt32(&e.fits, 1)
	if e.failFit {
		return nil, models.NewTrainingError(errors.New("not enough data"))
	}
	e.mu.Lock()
	e.trained = append(e.trained, series)
	e.mu.Unlock()
	return &fakeHandle{points: series.Points, failPredict: e.failPredict}, nil
}

type staticRepo struct {
	series *models.Series
	err    error
}

func (r *staticRepo) Load(context.Context) (*models.Series, error) { return r.series, r.err }

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func testSeries() *models.Series {
	return &models.Series{Points: []models.Point{
		{TS: day(1), Value: 10},
		{TS: day(2), Value: 20},
		{TS: day(3), Value: 30},
	}}
}

func newOrchestrator(engine *fakeEngine, repo *staticRepo) *ForecastOrchestrator {
	return NewForecastOrchestrator(repo, engine, NewModelCache(), nil)
}

func TestForecastWindowsToFutureOnly(t *testing.T) {
	engine := &fakeEngine{}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	res, err := orch.ForecastDefault(context.Background(), 2)
	if err != nil {
		t.Fatalf("forecast failed: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected exactly 2 rows, got %d", len(res.Rows))
	}
	if !res.Rows[0].TS.Equal(day(4)) || !res.Rows[1].TS.Equal(day(5)) {
		t.Fatalf("unexpected dates %v %v", res.Rows[0].TS, res.Rows[1].TS)
	}
	for _, row := range res.Rows {
		if row.LowerBound > row.PointEstimate || row.PointEstimate > row.UpperBound {
			t.Fatalf("bounds violated: %+v", row)
		}
	}
	if res.Horizon != 2 || res.GeneratedAt.IsZero() {
		t.Fatalf("missing metadata: %+v", res)
	}
}

func TestForecastHorizonProperty(t *testing.T) {
	for _, n := range []int{1, 7, 30, 365} {
		engine := &fakeEngine{}
		orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

		res, err := orch.ForecastDefault(context.Background(), n)
		if err != nil {
			t.Fatalf("horizon %d failed: %v", n, err)
		}
		if len(res.Rows) != n {
			t.Fatalf("horizon %d: got %d rows", n, len(res.Rows))
		}
		for i := 1; i < len(res.Rows); i++ {
			if !res.Rows[i-1].TS.Before(res.Rows[i].TS) {
				t.Fatalf("horizon %d: dates not strictly increasing at %d", n, i)
			}
		}
	}
}

func TestInvalidHorizonRejectedBeforeEngine(t *testing.T) {
	for _, n := range []int{0, -1, -30} {
		engine := &fakeEngine{}
		orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

		_, err := orch.ForecastDefault(context.Background(), n)
		var derr *models.DomainError
		if !errors.As(err, &derr) || derr.Kind != models.KindInvalidHorizon {
			t.Fatalf("horizon %d: expected invalid-horizon, got %v", n, err)
		}
		if atomic.LoadInt32(&engine.fits) != 0 {
			t.Fatalf("horizon %d: engine must not be invoked", n)
		}

		_, err = orch.ForecastSeries(context.Background(), testSeries(), n)
		if !errors.As(err, &derr) || derr.Kind != models.KindInvalidHorizon {
			t.Fatalf("horizon %d (supplied): expected invalid-horizon, got %v", n, err)
		}
	}
}

func TestDefaultSourceTrainsOnceAndCaches(t *testing.T) {
	engine := &fakeEngine{}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	for i := 0; i < 3; i++ {
		if _, err := orch.ForecastDefault(context.Background(), 5); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&engine.fits); got != 1 {
		t.Fatalf("expected a single training, got %d", got)
	}
}

func TestSuppliedSeriesAlwaysTrainedFresh(t *testing.T) {
	engine := &fakeEngine{}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	for i := 0; i < 3; i++ {
		if _, err := orch.ForecastSeries(context.Background(), testSeries(), 5); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&engine.fits); got != 3 {
		t.Fatalf("expected 3 trainings, got %d", got)
	}
}

func TestConcurrentDefaultForecastsShareOneModel(t *testing.T) {
	engine := &fakeEngine{delay: 20 * time.Millisecond}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	const callers = 8
	results := make([]*models.ForecastResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = orch.ForecastDefault(context.Background(), 3)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if len(results[i].Rows) != len(results[0].Rows) {
			t.Fatalf("caller %d: row count differs", i)
		}
		for j := range results[i].Rows {
			if results[i].Rows[j] != results[0].Rows[j] {
				t.Fatalf("caller %d row %d differs: %+v vs %+v", i, j, results[i].Rows[j], results[0].Rows[j])
			}
		}
	}
	if got := atomic.LoadInt32(&engine.fits); got != 1 {
		t.Fatalf("expected exactly one training under contention, got %d", got)
	}
}

func TestTrainingErrorPropagated(t *testing.T) {
	engine := &fakeEngine{failFit: true}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	_, err := orch.ForecastDefault(context.Background(), 5)
	var derr *models.DomainError
	if !errors.As(err, &derr) || derr.Kind != models.KindTraining {
		t.Fatalf("expected training error, got %v", err)
	}

	// A failed training must leave the cache empty so the next call retries.
	engine.failFit = false
	if _, err := orch.ForecastDefault(context.Background(), 5); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestPredictFailureNamesPredictPhase(t *testing.T) {
	engine := &fakeEngine{failPredict: true}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	_, err := orch.ForecastDefault(context.Background(), 5)
	var derr *models.DomainError
	if !errors.As(err, &derr) || derr.Kind != models.KindTraining {
		t.Fatalf("expected engine error kind, got %v", err)
	}
	if !strings.Contains(derr.Message, "predict") {
		t.Fatalf("message must name the predict phase, got %q", derr.Message)
	}
	if derr.Details["phase"] != "predict" {
		t.Fatalf("expected phase detail, got %+v", derr.Details)
	}
	if !strings.Contains(derr.Error(), "matrix is singular") {
		t.Fatalf("cause must be preserved, got %q", derr.Error())
	}
}

func TestSourceErrorPropagated(t *testing.T) {
	engine := &fakeEngine{}
	orch := newOrchestrator(engine, &staticRepo{err: models.NewSourceNotFoundError("/data/sales_data.csv", nil)})

	_, err := orch.ForecastDefault(context.Background(), 5)
	var derr *models.DomainError
	if !errors.As(err, &derr) || derr.Kind != models.KindSourceNotFound {
		t.Fatalf("expected source-not-found, got %v", err)
	}
}

func TestDuplicateTimestampsCollapsedBeforeTraining(t *testing.T) {
	engine := &fakeEngine{}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	dup := &models.Series{Points: []models.Point{
		{TS: day(1), Value: 10},
		{TS: day(1), Value: 15},
		{TS: day(2), Value: 20},
	}}
	if _, err := orch.ForecastSeries(context.Background(), dup, 1); err != nil {
		t.Fatalf("forecast failed: %v", err)
	}

	engine.mu.Lock()
	trained := engine.trained[0]
	engine.mu.Unlock()
	if trained.Len() != 2 {
		t.Fatalf("expected collapsed series of 2, got %d", trained.Len())
	}
	if trained.Points[0].Value != 15 {
		t.Fatalf("expected last-write-wins, got %v", trained.Points[0].Value)
	}
}

func TestRetrainReplacesCachedModel(t *testing.T) {
	engine := &fakeEngine{}
	orch := newOrchestrator(engine, &staticRepo{series: testSeries()})

	if _, err := orch.ForecastDefault(context.Background(), 1); err != nil {
		t.Fatalf("initial forecast: %v", err)
	}
	rows, err := orch.Retrain(context.Background())
	if err != nil {
		t.Fatalf("retrain: %v", err)
	}
	if rows != 3 {
		t.Fatalf("expected 3 trained rows, got %d", rows)
	}
	if got := atomic.LoadInt32(&engine.fits); got != 2 {
		t.Fatalf("expected 2 trainings after retrain, got %d", got)
	}
	// Subsequent reads reuse the replaced handle.
	if _, err := orch.ForecastDefault(context.Background(), 1); err != nil {
		t.Fatalf("post-retrain forecast: %v", err)
	}
	if got := atomic.LoadInt32(&engine.fits); got != 2 {
		t.Fatalf("read after retrain must not train, got %d", got)
	}
}
