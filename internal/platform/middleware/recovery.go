package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Recovery turns a handler panic into a 500 that ErrorHandler renders as
// {"error":"internal server error"}. The panic value and stack go to the log
// under the request id and never to the client. http.ErrAbortHandler is
// re-raised so net/http can drop the connection.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("%v", r)
				}
				logger.Error().
					Err(cause).
					Str("request_id", requestID(c)).
					Str("path", c.Request().URL.Path).
					Bool("committed", c.Response().Committed).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(cause)
			}()
			return next(c)
		}
	}
}
