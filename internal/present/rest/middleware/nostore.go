package middleware

import (
	"github.com/labstack/echo/v4"
)

// NoStore marks every response, errors included, as not cacheable by
// browsers or intermediaries.
func NoStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return next(c)
	}
}
