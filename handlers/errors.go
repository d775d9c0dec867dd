package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pagecraft/contactd/internal"
	"github.com/pagecraft/contactd/middlewares"
	"github.com/pagecraft/contactd/pkg/contact"
)

type errorResponse struct {
	Details any    `json:"details,omitempty"`
	Error   string `json:"error"`
}

// ErrorHandler renders handler errors as JSON. An *internal.HTTPError is
// sent as is. Anything else is an unexpected fault: it is logged, reported,
// and answered with the generic 500.
func ErrorHandler(reporter contact.Reporter) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		if httpErr := internal.AsHTTPError(err); httpErr != nil {
			return c.JSON(httpErr.Code, errorResponse{Error: httpErr.Message, Details: httpErr.Details})
		}

		c.LogError("unhandled request error",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("error", err.Error()),
		)
		if reporter != nil {
			reporter.Report(c, err, map[string]string{
				"request_id": middlewares.GetRequestID(c),
				"stage":      "http",
			})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: MsgSendFailed})
	}
}

// NotFound answers unknown routes.
func NotFound(c internal.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(c internal.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}
