package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

// AuthJWTMiddleware validates the bearer token of a configured API client.
// There is no per-user model: tokens carry a client id only.
func (mw *MiddlewareManager) AuthJWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearerHeader := c.Request().Header.Get("Authorization")
			if bearerHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			headerParts := strings.Split(bearerHeader, " ")
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "Bearer") {
				mw.logger.Errorf("auth middleware: malformed Authorization header, RequestID: %s", utils.GetRequestID(c))
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			claims, err := utils.ValidateToken(headerParts[1], mw.cfg.Server.JwtSecretKey)
			if err != nil {
				mw.logger.Errorf("auth middleware: validateToken: %v", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			c.Set("client_id", claims.ClientID)
			return next(c)
		}
	}
}

// RequestLoggerMiddleware logs every request with its id and remote address.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		mw.logger.Infof("%s %s, RequestID: %s, IP: %s",
			c.Request().Method,
			c.Request().URL.Path,
			utils.GetRequestID(c),
			utils.GetIPAddress(c),
		)
		return err
	}
}
