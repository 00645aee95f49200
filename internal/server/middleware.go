package server

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v3"
)

// newLoggerMiddleware logs one line per request with method, path,
// status, and latency.
func newLoggerMiddleware(logger *slog.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		attrs := []any{
			"method", ctx.Method(),
			"path", ctx.Path(),
			"status", ctx.Response().StatusCode(),
			"latency", time.Since(start),
		}
		if err != nil {
			logger.Error("request failed", append(attrs, "error", err)...)
			return err
		}
		logger.Info("request completed", attrs...)
		return nil
	}
}

// newRecoveryMiddleware converts handler panics into 500 responses so a
// single bad request cannot take the server down.
func newRecoveryMiddleware(logger *slog.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panic",
					"path", ctx.Path(),
					"panic", r,
					"stack", string(debug.Stack()))
				err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				})
			}
		}()
		return ctx.Next()
	}
}
