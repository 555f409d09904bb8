package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
)

// RequireAdmin gates the moderation dashboard: admin and superadmin only.
// Must run after FirebaseAuthMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
			}
			return next(c)
		}
	}
}

// RequireSuperadmin gates role management.
func RequireSuperadmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if user.Role != models.RoleSuperadmin {
				return echo.NewHTTPError(http.StatusForbidden, "Superadmin role required")
			}
			return next(c)
		}
	}
}
