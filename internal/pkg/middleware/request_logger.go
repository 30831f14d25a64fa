package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/logger"
)

// RequestLogger logs every request with its latency and status. Server errors
// log at error level, client errors at warn.
func RequestLogger(appLogger *logger.AppLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)

			entry := appLogger.WithFields(logrus.Fields{
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
				"client_ip":  c.RealIP(),
				"method":     c.Request().Method,
				"path":       path,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			})

			switch status := c.Response().Status; {
			case status >= 500:
				entry.Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request processed")
			}

			return err
		}
	}
}
