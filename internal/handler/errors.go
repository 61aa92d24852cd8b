package handler

import (
	"errors"
	"log/slog"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/middleware"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusOf maps an error kind to its HTTP status. Conflicts are reported as
// 400 like other rejected input.
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict, apperr.KindBadRequest:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"error": msg}. Validation failures also carry
// the per-field "details". Internal errors are logged and answered with
// fallback only.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind() != apperr.KindInternal {
		body := fiber.Map{"error": e.Msg()}
		if e.Kind() == apperr.KindValidation && validator.IsValidationError(err) {
			body["details"] = validator.Errors(err)
		}
		return c.Status(statusOf(e.Kind())).JSON(body)
	}

	slog.ErrorContext(c.UserContext(), fallback,
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
}

// ErrorHandler renders framework errors (unknown routes, oversized bodies,
// panics) in the same JSON shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong!"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	switch code {
	case fiber.StatusNotFound:
		msg = "Route not found"
	case fiber.StatusRequestEntityTooLarge:
		msg = "File too large"
	case fiber.StatusInternalServerError:
		slog.ErrorContext(c.UserContext(), "unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func principal(c *fiber.Ctx) model.Principal {
	p, _ := middleware.GetPrincipal(c)
	return p
}

// Helper untuk parse UUID dari path param
func paramID(c *fiber.Ctx, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("INVALID_ID", "Invalid "+what+" ID")
	}
	return id, nil
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}
