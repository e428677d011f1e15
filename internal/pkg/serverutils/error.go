package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error that knows its HTTP status.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message, Err: err}
}

func ServiceUnavailable(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusServiceUnavailable, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// ErrorHandlerMiddleware renders errors returned by later handlers as
// ErrorResponse bodies. Unknown errors become 500 without leaking details.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
