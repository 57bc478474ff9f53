package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"krishi/pkg/auth"
)

// JWT guards a route group: it requires a valid Bearer token and puts the
// authenticated farmer's ID on the context as "farmerID".
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			fid, err := auth.Parse(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set("farmerID", fid)
			return next(c)
		}
	}
}

// FarmerID extracts the authenticated farmer's ID set by JWT.
func FarmerID(c echo.Context) uint {
	fid, _ := c.Get("farmerID").(uint)
	return fid
}
