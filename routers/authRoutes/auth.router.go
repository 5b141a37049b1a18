package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "lms/controllers/auth"
	"lms/middleware"
	authValidator "lms/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/signup", authValidator.Signup(), authController.Signup)
	auth.Post("/confirm-email", authValidator.ConfirmEmail(), authController.ConfirmEmail)
	auth.Post("/login", authValidator.Login(), authController.Login)
	auth.Post("/forgot-password", authValidator.ForgotPassword(), authController.ForgotPassword)
	auth.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)

	auth.Get("/session", middleware.JWTMiddleware, authController.Session)
	auth.Post("/change-password", middleware.JWTMiddleware, authValidator.ChangePassword(), authController.ChangePassword)
}
