package models

import "time"

// Point is a single observation in a sales series.
type Point struct {
	TS    time.Time
	Value float64
}

// Series is the canonical sales history: timestamps strictly increasing,
// values finite, never empty. Built by the schema resolver and treated as
// read-only everywhere downstream; transforms return a new Series.
// Note: no transport (json/http) concerns here.
type Series struct {
	Points []Point
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.Points) }

// First returns the earliest timestamp.
func (s *Series) First() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].TS
}

// Last returns the latest timestamp.
func (s *Series) Last() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].TS
}

// Values returns the observation values in order.
func (s *Series) Values() []float64 {
	vs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vs[i] = p.Value
	}
	return vs
}

// Timestamps returns the observation timestamps in order.
func (s *Series) Timestamps() []time.Time {
	ts := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		ts[i] = p.TS
	}
	return ts
}

// Dedup collapses duplicate timestamps last-write-wins and returns a new
// Series with strictly increasing timestamps. Input must already be sorted
// ascending; the receiver is not modified.
func (s *Series) Dedup() *Series {
	if len(s.Points) == 0 {
		return &Series{}
	}
	out := make([]Point, 0, len(s.Points))
	for _, p := range s.Points {
		if n := len(out); n > 0 && out[n-1].TS.Equal(p.TS) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return &Series{Points: out}
}

// DistinctTimestamps counts distinct timestamps in a sorted series.
func (s *Series) DistinctTimestamps() int {
	n := 0
	var prev time.Time
	for i, p := range s.Points {
		if i == 0 || !p.TS.Equal(prev) {
			n++
		}
		prev = p.TS
	}
	return n
}
