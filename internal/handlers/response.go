package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/apperr"
)

// respond writes the uniform success envelope.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondError maps a typed domain error to its status code and writes the
// failure envelope. Unrecognized errors become a 500 with the fallback
// message; internals never leak to the caller.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := fiber.StatusInternalServerError
	message := fallback

	var ae *apperr.Error
	if errors.As(err, &ae) {
		message = ae.Message
		switch ae.Kind {
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindConflict:
			status = fiber.StatusConflict
		case apperr.KindBadRequest:
			status = fiber.StatusBadRequest
		case apperr.KindUnavailable:
			status = fiber.StatusServiceUnavailable
		}
	} else {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}
