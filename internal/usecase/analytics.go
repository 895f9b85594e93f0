package usecase

import (
	"time"

	"SalesCast/internal/domain/models"
)

// DefaultRollingWindow is the trailing window used to smooth noisy actuals,
// matching the dashboard's 4-observation average.
const DefaultRollingWindow = 4

// Bucket keys for categorical aggregation.
const (
	BucketMonth   = "month"
	BucketWeekday = "weekday"
)

// ToRecords flattens a forecast result into wire records, row order
// preserved, dates as fixed-width ISO calendar strings.
func ToRecords(res *models.ForecastResult) []models.ForecastRecord {
	records := make([]models.ForecastRecord, len(res.Rows))
	for i, row := range res.Rows {
		records[i] = models.ForecastRecord{
			Date:          row.TS.Format("2006-01-02"),
			PointEstimate: row.PointEstimate,
			LowerBound:    row.LowerBound,
			UpperBound:    row.UpperBound,
		}
	}
	return records
}

// RollingAverage computes a trailing moving average over the sorted series.
// Positions with fewer than window preceding observations average over what
// is available, so the output has the input's length and no leading gaps.
func RollingAverage(series *models.Series, window int) ([]float64, error) {
	if series == nil || series.Len() == 0 {
		return nil, models.NewEmptySeriesError()
	}
	if window < 1 {
		window = 1
	}

	out := make([]float64, series.Len())
	sum := 0.0
	for i, p := range series.Points {
		sum += p.Value
		if i >= window {
			sum -= series.Points[i-window].Value
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}

// AggregateByBucket sums values grouped by calendar bucket. Buckets are
// emitted in natural calendar order with short labels; buckets with no
// observations are omitted.
func AggregateByBucket(series *models.Series, bucket string) ([]models.BucketTotal, error) {
	if series == nil || series.Len() == 0 {
		return nil, models.NewEmptySeriesError()
	}

	switch bucket {
	case BucketWeekday:
		var totals [7]float64
		var seen [7]bool
		for _, p := range series.Points {
			// Monday=0..Sunday=6.
			idx := (int(p.TS.Weekday()) + 6) % 7
			totals[idx] += p.Value
			seen[idx] = true
		}
		labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
		out := make([]models.BucketTotal, 0, 7)
		for i := 0; i < 7; i++ {
			if seen[i] {
				out = append(out, models.BucketTotal{Label: labels[i], Total: totals[i]})
			}
		}
		return out, nil
	default: // BucketMonth
		var totals [13]float64
		var seen [13]bool
		for _, p := range series.Points {
			m := int(p.TS.Month())
			totals[m] += p.Value
			seen[m] = true
		}
		out := make([]models.BucketTotal, 0, 12)
		for m := 1; m <= 12; m++ {
			if seen[m] {
				out = append(out, models.BucketTotal{Label: time.Month(m).String()[:3], Total: totals[m]})
			}
		}
		return out, nil
	}
}

// Summarize derives the dashboard KPIs from a canonical series.
func Summarize(series *models.Series) (*models.SeriesSummary, error) {
	if series == nil || series.Len() == 0 {
		return nil, models.NewEmptySeriesError()
	}

	total := 0.0
	for _, p := range series.Points {
		total += p.Value
	}
	rolling, err := RollingAverage(series, DefaultRollingWindow)
	if err != nil {
		return nil, err
	}

	return &models.SeriesSummary{
		TotalSales:   total,
		AverageSales: total / float64(series.Len()),
		LastDate:     series.Last().Format("2006-01-02"),
		Observations: series.Len(),
		RollingAvg:   rolling,
	}, nil
}
