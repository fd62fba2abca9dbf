package response

import (
	"errors"

	"github.com/Kyz7/storefront/internal/shared"

	"github.com/gofiber/fiber/v2"
)

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func Error(c *fiber.Ctx, statusCode int, errorCode string, message string, details interface{}) error {
	return c.Status(statusCode).JSON(StandardResponse{
		Success: false,
		Error: &ErrorDetail{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(c *fiber.Ctx, message string, details interface{}) error {
	return Error(c, fiber.StatusBadRequest, "BAD_REQUEST", message, details)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(c *fiber.Ctx, resource string) error {
	return Error(c, fiber.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, "CONFLICT", message, nil)
}

func ValidationError(c *fiber.Ctx, errors interface{}) error {
	return Error(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errors)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// FromError maps the error taxonomy onto status codes.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, shared.ErrUnauthenticated):
		return Unauthorized(c, "Login required")
	case errors.Is(err, shared.ErrUnauthorized):
		return Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, shared.ErrNotFound):
		return Error(c, fiber.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, shared.ErrConflict):
		return Conflict(c, err.Error())
	case errors.Is(err, shared.ErrInvalidVariantPath):
		return Error(c, fiber.StatusUnprocessableEntity, "INVALID_VARIANT_PATH", err.Error(), nil)
	case errors.Is(err, shared.ErrNotPriceable):
		return Error(c, fiber.StatusUnprocessableEntity, "NOT_PRICEABLE", err.Error(), nil)
	case errors.Is(err, shared.ErrInvalidQuantity):
		return Error(c, fiber.StatusUnprocessableEntity, "INVALID_QUANTITY", err.Error(), nil)
	case errors.Is(err, shared.ErrInvalidInput):
		return Error(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, shared.ErrStorageUnavailable):
		c.Set(fiber.HeaderRetryAfter, "1")
		return Error(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage temporarily unavailable", nil)
	}
	return InternalError(c, err.Error())
}
