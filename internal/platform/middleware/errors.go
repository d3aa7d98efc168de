package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorHandler is the echo.HTTPErrorHandler: errs sentinels and
// *echo.HTTPError map to their status, anything else is a 500 that carries
// its message.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := StatusOf(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("request_id", requestID(c)).Int("status", status).Msg("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, ErrorBody{Error: msg})
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}

// StatusOf returns the HTTP status and client message for err.
func StatusOf(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		}
		return he.Code, msg
	}
	return errs.Status(err), err.Error()
}
