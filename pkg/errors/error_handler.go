package errors

import (
	stderrors "errors"

	"vidhub/pkg/errors/i18n"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusFor maps a kind code to the HTTP status returned to clients.
func StatusFor(code string) int {
	switch code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeBadRequest:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeInvalidSignature, CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError writes err as a JSON error response. The wrapped cause is logged
// but never sent to the client.
func HandleError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if err == nil {
		return nil
	}

	var ae *AppError
	if stderrors.As(err, &ae) {
		status := StatusFor(ae.Code)
		if ae.Err != nil {
			fields := []zap.Field{zap.String("code", ae.Code), zap.Error(ae.Err), zap.String("path", c.Path())}
			if status >= fiber.StatusInternalServerError {
				log.Error("request failed", fields...)
			} else {
				log.Debug("request rejected", fields...)
			}
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   ae.Code,
			"message": i18n.T(ae.Code, ae.Message),
		})
	}

	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":   "http_error",
			"message": fe.Message,
		})
	}

	log.Error("unexpected error", zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   CodeInternal,
		"message": i18n.T(CodeInternal, "Internal server error"),
	})
}

// FiberErrorHandler adapts HandleError to fiber.Config.ErrorHandler.
func FiberErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return HandleError(c, log, err)
	}
}
