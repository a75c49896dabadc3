package utils

import (
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

func GetRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func GetIPAddress(c echo.Context) string {
	return c.Request().RemoteAddr
}

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeLocalID makes an identifier safe to use as a scratch file name.
func SanitizeLocalID(id string) string {
	id = strings.TrimSpace(id)
	return unsafeIDChars.ReplaceAllString(id, "_")
}
