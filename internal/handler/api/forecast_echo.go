package api

import (
	"errors"
	"net/http"
	"time"

	models "SalesCast/internal/domain/models"
	domrepo "SalesCast/internal/domain/repository"
	"SalesCast/internal/schema"
	"SalesCast/internal/usecase"
	"SalesCast/pkg/config"
	xhttp "SalesCast/pkg/http"
	xlogger "SalesCast/pkg/logger"
	"SalesCast/pkg/util"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler implements Echo-based HTTP handlers for forecasting
// and sales analytics.
type ForecastEchoHandler struct {
	logger  *xlogger.Logger
	orch    *usecase.ForecastOrchestrator
	repo    domrepo.SeriesRepository
	metrics domrepo.Metrics
	cfg     *config.Config
}

func NewForecastEchoHandler(logger *xlogger.Logger, orch *usecase.ForecastOrchestrator, repo domrepo.SeriesRepository, metrics domrepo.Metrics, cfg *config.Config) *ForecastEchoHandler {
	return &ForecastEchoHandler{logger: logger, orch: orch, repo: repo, metrics: metrics, cfg: cfg}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)
	e.GET("/predict", h.Predict)
	e.POST("/predict", h.PredictUpload)

	g := e.Group("/api")
	g.GET("/analytics", h.Analytics)
	g.GET("/summary", h.Summary)
}

// Index lists the available endpoints.
func (h *ForecastEchoHandler) Index(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"service": "salescast",
		"endpoints": []string{
			"GET /health",
			"GET /predict?periods=N",
			"POST /predict",
			"GET /api/analytics?bucket=month|weekday",
			"GET /api/summary",
			"GET /metrics",
		},
	})
}

func (h *ForecastEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Predict forecasts from the configured default dataset. An absent
// periods parameter falls back to the configured horizon; an explicit
// non-positive value is rejected.
func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	periods := h.cfg.Forecast.DefaultHorizon
	if raw := c.QueryParam("periods"); raw != "" {
		periods = util.ParseIntDefault(raw, 0)
	}
	if periods > h.cfg.Forecast.MaxHorizon {
		return h.domainErrorResponse(c, models.NewInvalidHorizonError(periods).
			WithDetail("max", h.cfg.Forecast.MaxHorizon))
	}

	res, err := h.orch.ForecastDefault(c.Request().Context(), periods)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return h.domainErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, forecastPayload(res))
}

// PredictUpload forecasts from CSV data supplied in the request body.
func (h *ForecastEchoHandler) PredictUpload(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.CSV == "" {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_REQUIRED",
			Field:   "csv",
			Message: "csv is required",
		}})
	}

	periods := req.Periods
	if periods == 0 {
		periods = h.cfg.Forecast.DefaultHorizon
	}
	if periods > h.cfg.Forecast.MaxHorizon {
		return h.domainErrorResponse(c, models.NewInvalidHorizonError(periods).
			WithDetail("max", h.cfg.Forecast.MaxHorizon))
	}

	table, err := schema.DecodeCSVString(req.CSV)
	if err != nil {
		return h.domainErrorResponse(c, err)
	}
	series, report, err := schema.Resolve(table)
	if err != nil {
		return h.domainErrorResponse(c, err)
	}
	if h.metrics != nil {
		h.metrics.RecordDroppedRows(report.Total())
	}

	res, err := h.orch.ForecastSeries(c.Request().Context(), series, periods)
	if err != nil {
		h.logger.Error("forecast upload usecase error", xlogger.Error(err))
		return h.domainErrorResponse(c, err)
	}
	res.Dropped = report.Total()

	return xhttp.SuccessResponse(c, forecastPayload(res))
}

// Analytics aggregates the default dataset by month or weekday.
func (h *ForecastEchoHandler) Analytics(c echo.Context) error {
	req := &models.AnalyticsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.repo.Load(c.Request().Context())
	if err != nil {
		h.logger.Error("analytics load error", xlogger.Error(err))
		return h.domainErrorResponse(c, err)
	}

	totals, err := usecase.AggregateByBucket(series, req.Bucket)
	if err != nil {
		return h.domainErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"bucket": req.Bucket,
		"totals": totals,
	})
}

// Summary returns dataset KPIs with a rolling average of recent sales.
func (h *ForecastEchoHandler) Summary(c echo.Context) error {
	series, err := h.repo.Load(c.Request().Context())
	if err != nil {
		h.logger.Error("summary load error", xlogger.Error(err))
		return h.domainErrorResponse(c, err)
	}

	summary, err := usecase.Summarize(series)
	if err != nil {
		return h.domainErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, summary)
}

func forecastPayload(res *models.ForecastResult) map[string]interface{} {
	return map[string]interface{}{
		"horizon":      res.Horizon,
		"generated_at": res.GeneratedAt.Format(time.RFC3339),
		"dropped_rows": res.Dropped,
		"forecast":     usecase.ToRecords(res),
	}
}

// domainErrorResponse maps domain error kinds onto HTTP statuses.
func (h *ForecastEchoHandler) domainErrorResponse(c echo.Context, err error) error {
	var derr *models.DomainError
	if !errors.As(err, &derr) {
		return xhttp.AppErrorResponse(c, err)
	}

	status := http.StatusInternalServerError
	switch derr.Kind {
	case models.KindSchema, models.KindInvalidHorizon, models.KindEmptySeries:
		status = http.StatusBadRequest
	case models.KindSourceNotFound:
		status = http.StatusNotFound
	case models.KindTraining:
		status = http.StatusInternalServerError
	}

	appErr := xhttp.NewAppError(derr.Kind, derr.Message, status).
		WithParams(derr.Details).
		WithErr(derr.Err)
	return xhttp.AppErrorResponse(c, appErr)
}
