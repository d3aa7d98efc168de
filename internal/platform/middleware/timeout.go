package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestTimeout puts a deadline on each request context. The handler runs
// on the request goroutine and is expected to stop once its context is done;
// if the deadline has passed when it returns an error, the client gets 504.
// A timeout <= 0 disables the deadline.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	if timeout <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: timeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(c.Request().Context().Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
				return echo.NewHTTPError(http.StatusGatewayTimeout, "request exceeded "+timeout.String()).SetInternal(err)
			}
			return err
		},
	})
}
