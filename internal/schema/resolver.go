package schema

import (
	"sort"
	"strings"

	"SalesCast/internal/domain/models"
	"SalesCast/pkg/util"
)

// DropReport records rows discarded during coercion, kept alongside the
// series so callers can surface it instead of losing the information.
type DropReport struct {
	BadTimestamp int `json:"bad_timestamp"`
	BadValue     int `json:"bad_value"`
}

// Total is the number of dropped rows.
func (r DropReport) Total() int { return r.BadTimestamp + r.BadValue }

// Resolve maps a raw table onto a canonical series: headers are lower-cased
// and trimmed, the first header matching each role's alias set is chosen,
// cells are coerced with bad rows dropped, and the result is sorted
// ascending. Duplicate timestamps are preserved; deduplication is the
// orchestrator's decision. Pure function of its input.
func Resolve(table *RawTable) (*models.Series, DropReport, error) {
	var report DropReport

	tsIdx, valIdx := -1, -1
	for i, h := range table.Headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if tsIdx == -1 && matches(RoleTimestamp, name) {
			tsIdx = i
		}
		if valIdx == -1 && matches(RoleValue, name) {
			valIdx = i
		}
	}

	if tsIdx == -1 || valIdx == -1 {
		missing := make([]string, 0, 2)
		if tsIdx == -1 {
			missing = append(missing, RoleTimestamp)
		}
		if valIdx == -1 {
			missing = append(missing, RoleValue)
		}
		return nil, report, models.NewSchemaError("no column matches the accepted names for: "+strings.Join(missing, ", ")).
			WithDetail("missing_roles", missing).
			WithDetail("found_headers", table.Headers).
			WithDetail("timestamp_aliases", Aliases(RoleTimestamp)).
			WithDetail("value_aliases", Aliases(RoleValue))
	}

	points := make([]models.Point, 0, len(table.Rows))
	for _, row := range table.Rows {
		if tsIdx >= len(row) || valIdx >= len(row) {
			report.BadTimestamp++
			continue
		}
		ts, ok := util.ParseDate(row[tsIdx])
		if !ok {
			report.BadTimestamp++
			continue
		}
		v, ok := util.ParseFloat(row[valIdx])
		if !ok {
			report.BadValue++
			continue
		}
		points = append(points, models.Point{TS: ts, Value: v})
	}

	if len(points) == 0 {
		return nil, report, models.NewSchemaError("no valid rows after parsing; ensure dates and numeric sales values").
			WithDetail("dropped", report.Total())
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].TS.Before(points[j].TS) })
	return &models.Series{Points: points}, report, nil
}

func matches(role, header string) bool {
	for _, a := range aliases[role] {
		if header == a {
			return true
		}
	}
	return false
}
