package usecase

import (
	"context"
	"time"

	applogger "SalesCast/pkg/logger"
)

// Refresher periodically retrains the default-source model and swaps it into
// the cache, keeping served forecasts fresh without restarting the service.
type Refresher struct {
	orch     *ForecastOrchestrator
	interval time.Duration
	logger   *applogger.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewRefresher(orch *ForecastOrchestrator, interval time.Duration, logger *applogger.Logger) *Refresher {
	return &Refresher{orch: orch, interval: interval, logger: logger}
}

// Start launches the refresh loop. The first retrain happens after one full
// interval; the lazy train-on-first-request path covers startup.
func (r *Refresher) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rows, err := r.orch.Retrain(ctx)
				if err != nil {
					if r.logger != nil {
						r.logger.Error("scheduled retrain failed", applogger.Error(err))
					}
					continue
				}
				if r.logger != nil {
					r.logger.Info("scheduled retrain complete", applogger.Int("rows", rows))
				}
			}
		}
	}()
}

// Shutdown stops the loop. An in-flight retrain is not interrupted; its
// result still lands in the cache for future callers.
func (r *Refresher) Shutdown(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
