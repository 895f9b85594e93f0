package models

import "fmt"

// Error kinds. The transport layer maps these to HTTP statuses without
// parsing message text.
const (
	KindSchema         = "SCHEMA_ERROR"
	KindInvalidHorizon = "INVALID_HORIZON"
	KindTraining       = "TRAINING_ERROR"
	KindSourceNotFound = "SOURCE_NOT_FOUND"
	KindEmptySeries    = "EMPTY_SERIES"
)

// DomainError is the structured error carried across component boundaries:
// a stable kind, a human message, and optional diagnostic details.
type DomainError struct {
	Kind    string                 `json:"kind"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error { return e.Err }

// WithDetail attaches one diagnostic detail.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewSchemaError reports unresolvable or empty-after-cleaning input.
func NewSchemaError(message string) *DomainError {
	return &DomainError{Kind: KindSchema, Message: message}
}

// NewInvalidHorizonError rejects a non-positive horizon.
func NewInvalidHorizonError(horizon int) *DomainError {
	return &DomainError{
		Kind:    KindInvalidHorizon,
		Message: "horizon must be a positive number of days",
		Details: map[string]interface{}{"horizon": horizon},
	}
}

// NewTrainingError wraps an engine fit failure.
func NewTrainingError(cause error) *DomainError {
	return &DomainError{Kind: KindTraining, Message: "forecasting engine failed to fit the series", Err: cause}
}

// NewPredictionError wraps an engine failure after a successful fit. Same
// kind as a fit failure so transport mapping stays uniform, but the message
// and phase detail name the predict step.
func NewPredictionError(cause error) *DomainError {
	return &DomainError{
		Kind:    KindTraining,
		Message: "forecasting engine failed to predict from the fitted model",
		Details: map[string]interface{}{"phase": "predict"},
		Err:     cause,
	}
}

// NewSourceNotFoundError reports a missing default dataset.
func NewSourceNotFoundError(path string, cause error) *DomainError {
	return &DomainError{
		Kind:    KindSourceNotFound,
		Message: "default sales dataset not found",
		Details: map[string]interface{}{"path": path},
		Err:     cause,
	}
}

// NewEmptySeriesError reports analytics requested on zero rows.
func NewEmptySeriesError() *DomainError {
	return &DomainError{Kind: KindEmptySeries, Message: "series has no rows"}
}
