package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// Códigos estables del cuerpo de error.
const (
	CodeValidation         = "VALIDATION"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeExpiredToken       = "EXPIRED_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL"
)

const internalMessage = "error interno del servidor"

// tokenError fallo de autenticación con el motivo concreto. Todos responden 401.
type tokenError struct {
	code    string
	message string
}

func (e *tokenError) Error() string { return e.message }

func (e *tokenError) Unwrap() error { return domain.ErrUnauthenticated }

func newTokenError(code, message string) error {
	return &tokenError{code: code, message: message}
}

// mapError traduce un error de dominio o de Fiber a status + cuerpo.
func mapError(err error) (int, dto.ErrorResponse) {
	var (
		te *tokenError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &te):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: te.code, Message: te.message}
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeEmailExists, Message: domain.ErrDuplicateIdentity.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeInvalidCredentials, Message: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeInvalidToken, Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.As(err, &fe):
		return fe.Code, dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: internalMessage}
	}
}

// codeForStatus código para errores propios de Fiber (ruta inexistente, body demasiado grande...).
func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return CodeValidation
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return CodeInternal
	}
	return "HTTP_ERROR"
}

// ErrorHandler responde todos los errores con el mismo sobre JSON.
// Los 5xx se registran con la causa; el cliente sólo recibe un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
				Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}
