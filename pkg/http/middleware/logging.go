package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs method, path, status and latency for each request.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			log.Printf("%s %s -> %d (%s)",
				req.Method,
				req.URL.Path,
				res.Status,
				time.Since(start),
			)

			return err
		}
	}
}
