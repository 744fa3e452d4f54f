package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPErrorHandler renders every error as {"success": false, "message": ...}.
// Unexpected errors are logged server-side; their detail only reaches the
// client in development mode.
func HTTPErrorHandler(logger *logrus.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.HTTPStatus()
			message = appErr.Message
			if status >= http.StatusInternalServerError {
				logger.WithError(err).WithField("path", c.Path()).Error("request failed")
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		default:
			logger.WithError(err).WithField("path", c.Path()).Error("unhandled error")
			if development {
				message = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, response{Success: false, Message: message})
		}
		if err != nil {
			logger.WithError(err).Error("failed to write error response")
		}
	}
}
