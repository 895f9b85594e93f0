package models

// Requests for forecasting HTTP endpoints. Defined in domain for consistency and reuse.

// PredictRequest covers both GET (default source) and POST (uploaded CSV).
// Periods is validated for positivity by the orchestrator, not the binder,
// so a zero horizon surfaces as a structured InvalidHorizonError.
type PredictRequest struct {
	Periods int    `query:"periods" json:"periods"`
	CSV     string `json:"csv"`
}

type AnalyticsRequest struct {
	Bucket string `query:"bucket" json:"bucket" default:"month" validate:"oneof=month weekday"`
}
