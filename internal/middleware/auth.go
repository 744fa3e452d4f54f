package middleware

import "github.com/labstack/echo/v4"

const userIDKey = "user_id"

// RequesterID resolves the acting user from the X-User-Id header. Guest
// checkout is allowed so an empty value is fine; later this can expand to
// jwt or session auth.
func RequesterID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(userIDKey, c.Request().Header.Get("X-User-Id"))
			return next(c)
		}
	}
}

func UserIDFrom(c echo.Context) string {
	if id, ok := c.Get(userIDKey).(string); ok {
		return id
	}
	return ""
}
