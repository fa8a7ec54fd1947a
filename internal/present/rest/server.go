package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	resmiddleware "github.com/totegamma/hl3mural/internal/present/rest/middleware"
	"github.com/totegamma/hl3mural/internal/present/rest/presenter"
)

// NewServer builds the echo instance with the middleware stack every route
// shares.
func NewServer(serviceName string, h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = presenter.HTTPErrorHandler

	e.Use(resmiddleware.NoStore)
	e.Use(otelecho.Middleware(serviceName))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	h.RegisterRoutes(e)
	return e
}
