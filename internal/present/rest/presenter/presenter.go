package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/hl3mural/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Unauthorized reports a missing or unusable credential together with what
// the operator has to do about it.
func Unauthorized(c echo.Context, err domain.ConfigError) error {
	slog.WarnContext(
		c.Request().Context(), "Unauthorized",
		slog.String("error", err.Error()),
		slog.String("module", "presenter"),
	)
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error(), Hint: err.Hint})
}

func InternalError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	slog.ErrorContext(
		ctx, "Internal error",
		slog.String("error", err.Error()),
		slog.String("traceID", trace.SpanContextFromContext(ctx).TraceID().String()),
		slog.String("module", "presenter"),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// HTTPErrorHandler renders errors escaping handlers, including recovered
// panics, with the same body shape as handled errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		_ = InternalError(c, err)
		return
	}

	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok {
		msg = m
	}
	if he.Code >= http.StatusInternalServerError {
		_ = InternalError(c, err)
		return
	}
	_ = c.JSON(he.Code, errorResponse{Error: msg})
}
