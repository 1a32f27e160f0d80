package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/edithub/edithub-api/internal/apperr"
)

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func validationFail(c *fiber.Ctx, errs apperr.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// fail maps a lifecycle error onto the envelope. Validation errors carry the
// per-field messages; everything else gets the taxonomy's status code and a
// plain message. Unknown errors are logged and surfaced as a generic fault.
func fail(c *fiber.Ctx, err error) error {
	if e, isTaxonomy := apperr.As(err); isTaxonomy {
		if e.Kind == apperr.KindValidation {
			return validationFail(c, e.Fields)
		}
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
			"success": false,
			"message": e.Message,
		})
	}

	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
	})
}
