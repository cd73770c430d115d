package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CtxUserIDKey is where Middleware stores the authenticated user id (int64).
const CtxUserIDKey = "user_id"

func Middleware(tm *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			userID, err := tm.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}
