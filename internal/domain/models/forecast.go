package models

import "time"

// PredictionRow is one row of the full model output.
type PredictionRow struct {
	TS            time.Time
	PointEstimate float64
	LowerBound    float64
	UpperBound    float64
}

// PredictionFrame is the full engine output: fitted history rows followed by
// the future extension, ascending, with LowerBound <= PointEstimate <=
// UpperBound on every row.
type PredictionFrame struct {
	Rows []PredictionRow
}

// After returns the rows strictly after ts, as a new frame.
func (f *PredictionFrame) After(ts time.Time) *PredictionFrame {
	i := 0
	for i < len(f.Rows) && !f.Rows[i].TS.After(ts) {
		i++
	}
	out := make([]PredictionRow, len(f.Rows)-i)
	copy(out, f.Rows[i:])
	return &PredictionFrame{Rows: out}
}

// ForecastResult is the caller-facing, future-only slice of a prediction
// frame plus request metadata.
type ForecastResult struct {
	Rows        []PredictionRow
	Horizon     int
	GeneratedAt time.Time
	// Dropped counts input rows discarded during schema resolution for
	// uploaded tables; zero for the default source.
	Dropped int
}

// ForecastRecord is the wire shape of one forecast row.
type ForecastRecord struct {
	Date          string  `json:"date"`
	PointEstimate float64 `json:"point_estimate"`
	LowerBound    float64 `json:"lower_bound"`
	UpperBound    float64 `json:"upper_bound"`
}

// BucketTotal is one slice of a categorical aggregate, ordered by the
// bucket's natural calendar index.
type BucketTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// SeriesSummary holds the dashboard KPIs derived from a canonical series.
type SeriesSummary struct {
	TotalSales   float64   `json:"total_sales"`
	AverageSales float64   `json:"average_sales"`
	LastDate     string    `json:"last_date"`
	Observations int       `json:"observations"`
	RollingAvg   []float64 `json:"rolling_avg"`
}
