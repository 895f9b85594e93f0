package service

import (
	"context"
	"time"

	"SalesCast/internal/domain/models"
)

// ModelHandle is an opaque trained model bound to the series it was fitted
// on. Predict extends the fitted span by futureDays daily steps and returns
// the full frame (fitted history plus future). Immutable once produced.
type ModelHandle interface {
	Predict(ctx context.Context, futureDays int) (*models.PredictionFrame, error)
	// TrainedThrough is the last timestamp of the training series.
	TrainedThrough() time.Time
	// TrainedRows is the number of observations the model was fitted on.
	TrainedRows() int
}

// Forecaster trains models on canonical series. Implementations are
// synchronous and may be slow; callers own timeout policy.
type Forecaster interface {
	Fit(ctx context.Context, series *models.Series) (ModelHandle, error)
}
