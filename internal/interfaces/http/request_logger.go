package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog (método, ruta, status, latencia, usuario).
// Los errores se resuelven aquí con el ErrorHandler de la app para conocer el status final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		evt := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = log.Error()
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID))
		if userID := GetUserID(c); userID != "" {
			evt.Str("user_id", userID)
		}
		evt.Msg("request")
		return nil
	}
}
