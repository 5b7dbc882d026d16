package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/apperr"
	"github.com/virtualflux/mht-backend/internal/services"
)

// LocationHandler serves nearby-hospital and emergency-service lookups.
type LocationHandler struct {
	location *services.LocationService
}

func NewLocationHandler(location *services.LocationService) *LocationHandler {
	return &LocationHandler{location: location}
}

func parseCoordinates(c *fiber.Ctx) (lat, lng float64, radius int, err error) {
	lat, err = strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, 0, apperr.BadRequest("lat must be a valid latitude")
	}
	lng, err = strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, 0, apperr.BadRequest("lng must be a valid longitude")
	}
	radius = c.QueryInt("radius")
	if radius < 0 || radius > 50000 {
		return 0, 0, 0, apperr.BadRequest("radius must be between 0 and 50000 meters")
	}
	return lat, lng, radius, nil
}

func (h *LocationHandler) NearbyHospitals(c *fiber.Ctx) error {
	lat, lng, radius, err := parseCoordinates(c)
	if err != nil {
		return respondError(c, err, "")
	}

	hospitals, err := h.location.FindNearbyHospitals(c.Context(), lat, lng, radius)
	if err != nil {
		return respondError(c, err, "Failed to find nearby hospitals")
	}
	return respond(c, fiber.StatusOK, "Nearby hospitals fetched successfully", hospitals)
}

func (h *LocationHandler) EmergencyServices(c *fiber.Ctx) error {
	lat, lng, radius, err := parseCoordinates(c)
	if err != nil {
		return respondError(c, err, "")
	}

	hospitals, err := h.location.FindNearbyEmergencyServices(c.Context(), lat, lng, radius)
	if err != nil {
		return respondError(c, err, "Failed to find emergency services")
	}
	return respond(c, fiber.StatusOK, "Emergency services fetched successfully", hospitals)
}

func (h *LocationHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return respondError(c, apperr.BadRequest("query is required"), "")
	}

	// Coordinates are optional for text search.
	lat, _ := strconv.ParseFloat(c.Query("lat"), 64)
	lng, _ := strconv.ParseFloat(c.Query("lng"), 64)
	radius := c.QueryInt("radius")

	hospitals, err := h.location.SearchHospitals(c.Context(), query, lat, lng, radius)
	if err != nil {
		return respondError(c, err, "Failed to search hospitals")
	}
	return respond(c, fiber.StatusOK, "Hospitals fetched successfully", hospitals)
}

func (h *LocationHandler) PlaceDetails(c *fiber.Ctx) error {
	placeID := c.Params("placeId")
	if placeID == "" {
		return respondError(c, apperr.BadRequest("placeId is required"), "")
	}

	details, err := h.location.GetPlaceDetails(c.Context(), placeID)
	if err != nil {
		return respondError(c, err, "Failed to fetch place details")
	}
	return respond(c, fiber.StatusOK, "Place details fetched successfully", details)
}
