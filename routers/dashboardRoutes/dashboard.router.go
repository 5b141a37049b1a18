package dashboardRoutes

import (
	"github.com/gofiber/fiber/v2"

	dashboardController "lms/controllers/dashboard"
	"lms/middleware"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/dashboard", middleware.JWTMiddleware, dashboardController.GetDashboard)
}
