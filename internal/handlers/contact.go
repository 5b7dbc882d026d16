package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/services"
)

// ContactHandler serves the emergency-contact directory.
type ContactHandler struct {
	contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contacts.FindAll()
	if err != nil {
		return respondError(c, err, "Failed to fetch contacts")
	}
	return respond(c, fiber.StatusOK, "Contacts fetched successfully", contacts)
}

func (h *ContactHandler) ByState(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" {
		return respondError(c, apperr.BadRequest("state is required"), "")
	}

	contacts, err := h.contacts.FindByState(state)
	if err != nil {
		return respondError(c, err, "Failed to fetch contacts")
	}
	return respond(c, fiber.StatusOK, "Contacts fetched successfully", contacts)
}

func (h *ContactHandler) ByType(c *fiber.Ctx) error {
	contactType := c.Query("type")
	if contactType == "" {
		return respondError(c, apperr.BadRequest("type is required"), "")
	}

	contacts, err := h.contacts.FindByType(contactType)
	if err != nil {
		return respondError(c, err, "Failed to fetch contacts")
	}
	return respond(c, fiber.StatusOK, "Contacts fetched successfully", contacts)
}

func (h *ContactHandler) TwentyFourHours(c *fiber.Ctx) error {
	contacts, err := h.contacts.Find24HourContacts()
	if err != nil {
		return respondError(c, err, "Failed to fetch contacts")
	}
	return respond(c, fiber.StatusOK, "Contacts fetched successfully", contacts)
}
