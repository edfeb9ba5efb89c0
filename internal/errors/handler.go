package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the wire shape of every error the API emits.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func statusWord(code int) string {
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return "fail"
	}
	return "error"
}

// HTTPErrorHandler builds the central echo error handler. Every error that
// escapes a handler funnels through here exactly once.
func HTTPErrorHandler(log *zap.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "something went wrong"

		var appErr *AppError
		var httpErr *echo.HTTPError
		switch {
		case stderrors.As(err, &appErr):
			code = appErr.StatusCode
			if appErr.IsOperational {
				message = appErr.Message
			} else {
				log.Error("unexpected error",
					zap.String("kind", string(appErr.Kind)),
					zap.String("path", c.Request().URL.Path),
					zap.Error(appErr.Unwrap()),
				)
				if !production && appErr.Unwrap() != nil {
					message = appErr.Unwrap().Error()
				}
			}
		case stderrors.As(err, &httpErr):
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		default:
			log.Error("unhandled error",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
			if !production {
				message = err.Error()
			}
		}

		resp := ErrorResponse{Status: statusWord(code), Message: message}
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, resp)
		}
		if writeErr != nil {
			log.Error("write error response", zap.Error(writeErr))
		}
	}
}
