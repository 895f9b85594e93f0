package repository

import (
	"context"

	"SalesCast/internal/domain/models"
)

// SeriesRepository produces validated canonical series from the default
// sales source. It is the single producer of default series downstream.
type SeriesRepository interface {
	Load(ctx context.Context) (*models.Series, error)
}

type Metrics interface {
	RecordForecastServed(source string)
	RecordTraining(source string, rows int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordDroppedRows(n int)
}
