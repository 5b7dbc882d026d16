package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/virtualflux/mht-backend/internal/handlers"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	app *fiber.App,
	auth *handlers.AuthHandler,
	visits *handlers.VisitHandler,
	contacts *handlers.ContactHandler,
	location *handlers.LocationHandler,
) {
	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", auth.SignUp)
	authGroup.Post("/verify-email", auth.VerifyEmail)
	authGroup.Post("/check-phone", auth.CheckPhone)
	authGroup.Post("/onboarding/:id", auth.Onboarding)
	authGroup.Post("/logout", auth.Logout)

	// Visit routes
	visitGroup := api.Group("/visits")
	visitGroup.Post("/", visits.Create)
	visitGroup.Get("/", visits.List)
	visitGroup.Get("/stats", visits.Stats)
	visitGroup.Get("/reminders", visits.Reminders)
	visitGroup.Get("/:id", visits.Get)
	visitGroup.Patch("/:id", visits.Update)
	visitGroup.Delete("/:id", visits.Delete)

	// Emergency contact routes
	contactGroup := api.Group("/contacts")
	contactGroup.Get("/", contacts.List)
	contactGroup.Get("/by-state", contacts.ByState)
	contactGroup.Get("/by-type", contacts.ByType)
	contactGroup.Get("/24-hours", contacts.TwentyFourHours)

	// Location routes
	locationGroup := api.Group("/location")
	locationGroup.Get("/nearby-hospitals", location.NearbyHospitals)
	locationGroup.Get("/emergency-services", location.EmergencyServices)
	locationGroup.Get("/search", location.Search)
	locationGroup.Get("/place/:placeId", location.PlaceDetails)
}
