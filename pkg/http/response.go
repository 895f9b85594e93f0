package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse returns 200 with data in the standard envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Status: http.StatusOK,
		Data:   data,
	})
}

// BadRequestResponse returns 400 with validation errors.
func BadRequestResponse(c echo.Context, errs interface{}) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Status:  http.StatusBadRequest,
		Message: "Bad Request",
		Errors:  errs,
	})
}

// NotFoundResponse returns 404.
func NotFoundResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, APIResponse{
		Status:  http.StatusNotFound,
		Message: message,
	})
}

// InternalErrorResponse returns 500 without leaking internals.
func InternalErrorResponse(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, APIResponse{
		Status:  http.StatusInternalServerError,
		Message: "Internal Server Error",
	})
}

// AppErrorResponse maps an error to the envelope, using AppError
// status and code when available.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.HTTPStatus(), APIResponse{
			Status:  appErr.HTTPStatus(),
			Message: appErr.Message,
			Errors: []ValidationError{{
				Code:    appErr.Code,
				Message: appErr.Message,
				Params:  appErr.Params,
			}},
		})
	}
	return InternalErrorResponse(c)
}
