package quotesapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/robmarkaryan/quoteserver/storage/model"
)

// Error is the JSON error payload returned by every failing endpoint.
// Callers get a human-readable message, never a raw stack trace.
type Error struct {
	Err         string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// ErrorNotFound returns an Error for a missing resource
func ErrorNotFound(desc string) Error {
	return Error{Err: "not_found", Description: desc}
}

// ErrorInvalidRequest returns an Error for malformed input
func ErrorInvalidRequest(desc string) Error {
	return Error{Err: "invalid_request", Description: desc}
}

// ErrorConflict returns an Error for a unique-constraint violation
func ErrorConflict(desc string) Error {
	return Error{Err: "conflict", Description: desc}
}

// ErrorServerError returns an Error for an internal failure
func ErrorServerError(desc string) Error {
	return Error{Err: "server_error", Description: desc}
}

// errorRes translates a storage/model error into the matching HTTP response:
// NotFoundError → 404, ValidationError → 400, AlreadyExistsError → 409,
// anything else → 500.
func errorRes(c *fiber.Ctx, err error) error {
	switch err.(type) {
	case model.NotFoundError:
		return c.Status(fiber.StatusNotFound).JSON(ErrorNotFound(err.Error()))
	case model.ValidationError:
		return c.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest(err.Error()))
	case model.AlreadyExistsError:
		return c.Status(fiber.StatusConflict).JSON(ErrorConflict(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorServerError(err.Error()))
	}
}
