package repository

import (
	"context"
	"os"

	"SalesCast/internal/domain/models"
	"SalesCast/internal/domain/repository"
	"SalesCast/internal/schema"
	applogger "SalesCast/pkg/logger"
)

// CSVSeriesRepository loads the default sales dataset from a CSV file on
// disk and resolves it into a canonical series.
type CSVSeriesRepository struct {
	path    string
	logger  *applogger.Logger
	metrics repository.Metrics
}

// NewCSVSeriesRepository creates a repository over the given CSV path.
func NewCSVSeriesRepository(path string) repository.SeriesRepository {
	return &CSVSeriesRepository{path: path}
}

// SetLogger attaches a logger for drop-count observability.
func (r *CSVSeriesRepository) SetLogger(l *applogger.Logger) { r.logger = l }

// SetMetrics attaches a metrics recorder for drop counting.
func (r *CSVSeriesRepository) SetMetrics(m repository.Metrics) { r.metrics = m }

func (r *CSVSeriesRepository) Load(_ context.Context) (*models.Series, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.NewSourceNotFoundError(r.path, err)
		}
		return nil, models.NewSourceNotFoundError(r.path, err)
	}
	defer f.Close()

	table, err := schema.DecodeCSV(f)
	if err != nil {
		return nil, err
	}

	series, report, err := schema.Resolve(table)
	if err != nil {
		return nil, err
	}
	if report.Total() > 0 {
		if r.logger != nil {
			r.logger.Warn("default source rows dropped during resolution",
				applogger.String("path", r.path),
				applogger.Int("bad_timestamp", report.BadTimestamp),
				applogger.Int("bad_value", report.BadValue),
			)
		}
		if r.metrics != nil {
			r.metrics.RecordDroppedRows(report.Total())
		}
	}
	return series, nil
}
