package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"claimcenter_backend/internals/helpers/apperror"
)

// StatusForKind maps an apperror kind to its HTTP status.
func StatusForKind(k apperror.Kind) int {
	switch k {
	case apperror.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation:
		return fiber.StatusUnprocessableEntity
	case apperror.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError writes err as the standard JSON error envelope.
// *apperror.Error keeps its kind, *fiber.Error keeps its code, anything
// else becomes a 500 without leaking the underlying message.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ae *apperror.Error
	if errors.As(err, &ae) {
		status := StatusForKind(ae.Kind)
		if ae.Kind == apperror.KindValidation && len(ae.Fields) > 0 {
			return JsonValidationError(c, ae.Message, ae.Fields)
		}
		if status >= 500 {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
			msg := ae.Message
			if msg == "" {
				msg = "Internal Server Error"
			}
			return JsonError(c, status, msg)
		}
		return JsonError(c, status, ae.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}
