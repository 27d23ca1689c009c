package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminAPIKey gates administrative endpoints behind the X-API-KEY
// header.  An empty configured key locks the endpoints entirely
// rather than leaving them open.
func AdminAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get("X-API-KEY")
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
