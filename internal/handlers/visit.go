package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/models"
	"github.com/virtualflux/mht-backend/internal/services"
)

// VisitHandler handles antenatal visit requests.
type VisitHandler struct {
	visits *services.VisitService
}

func NewVisitHandler(visits *services.VisitService) *VisitHandler {
	return &VisitHandler{visits: visits}
}

func (h *VisitHandler) Create(c *fiber.Ctx) error {
	var in models.VisitInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, apperr.BadRequest("Invalid request body"), "")
	}

	visit, err := h.visits.Create(&in)
	if err != nil {
		return respondError(c, err, "Failed to create visit")
	}

	return respond(c, fiber.StatusCreated, "Visit created successfully", visit)
}

// List returns all visits, or the visits inside the startDate/endDate window
// when both query parameters are present.
func (h *VisitHandler) List(c *fiber.Ctx) error {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate != "" && endDate != "" {
		start, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return respondError(c, apperr.BadRequest("startDate must be an ISO date"), "")
		}
		end, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return respondError(c, apperr.BadRequest("endDate must be an ISO date"), "")
		}

		visits, err := h.visits.FindByDateRange(start, end)
		if err != nil {
			return respondError(c, err, "Failed to fetch visits")
		}
		return respond(c, fiber.StatusOK, "Visits fetched successfully", visits)
	}

	visits, err := h.visits.FindAll()
	if err != nil {
		return respondError(c, err, "Failed to fetch visits")
	}
	return respond(c, fiber.StatusOK, "Visits fetched successfully", visits)
}

func (h *VisitHandler) Get(c *fiber.Ctx) error {
	visit, err := h.visits.FindOne(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch visit")
	}
	return respond(c, fiber.StatusOK, "Visit fetched successfully", visit)
}

func (h *VisitHandler) Update(c *fiber.Ctx) error {
	var in models.VisitUpdate
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, apperr.BadRequest("Invalid request body"), "")
	}

	visit, err := h.visits.Update(c.Params("id"), &in)
	if err != nil {
		return respondError(c, err, "Failed to update visit")
	}
	return respond(c, fiber.StatusOK, "Visit updated successfully", visit)
}

func (h *VisitHandler) Delete(c *fiber.Ctx) error {
	if err := h.visits.Delete(c.Params("id")); err != nil {
		return respondError(c, err, "Failed to delete visit")
	}
	return respond(c, fiber.StatusOK, "Visit deleted successfully", nil)
}

func (h *VisitHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.visits.Stats()
	if err != nil {
		return respondError(c, err, "Failed to fetch visit stats")
	}
	return respond(c, fiber.StatusOK, "Visit stats fetched successfully", stats)
}

func (h *VisitHandler) Reminders(c *fiber.Ctx) error {
	visits, err := h.visits.UpcomingReminders()
	if err != nil {
		return respondError(c, err, "Failed to fetch reminders")
	}
	return respond(c, fiber.StatusOK, "Upcoming reminders fetched successfully", visits)
}
