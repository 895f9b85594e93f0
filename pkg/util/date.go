package util

import (
    "math"
    "strconv"
    "strings"
    "time"
)

// dateLayouts are tried in order. Calendar-date layouts come first because
// sales exports are usually day-grained.
var dateLayouts = []string{
    "2006-01-02",
    "2006/01/02",
    "01/02/2006",
    "2006-01-02 15:04:05",
    time.RFC3339,
}

// ParseDate tries the known calendar layouts and unix seconds. The result is
// truncated to midnight UTC. Returns (t, true) if any worked.
func ParseDate(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, false
    }
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return Midnight(t), true
        }
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 1_000_000_000 {
        return Midnight(time.Unix(ts, 0).UTC()), true
    }
    return time.Time{}, false
}

// ParseFloat parses s as a finite float64. Thousands separators are
// tolerated since spreadsheet exports often carry them.
func ParseFloat(s string) (float64, bool) {
    s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
    if s == "" {
        return 0, false
    }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
        return 0, false
    }
    return v, true
}

// Midnight truncates t to 00:00:00 UTC of the same calendar day.
func Midnight(t time.Time) time.Time {
    t = t.UTC()
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
