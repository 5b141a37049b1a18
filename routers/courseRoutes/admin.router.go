package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminController "lms/controllers/admin"
	"lms/middleware"
	achievementValidator "lms/validators/achievement"
	courseValidator "lms/validators/course"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminMiddleware)

	admin.Get("/stats", adminController.Stats)
	admin.Get("/users", adminController.ListUsers)

	admin.Get("/courses", adminController.ListCourses)
	admin.Post("/courses", courseValidator.CreateCourse(), adminController.CreateCourse)
	admin.Patch("/courses/:id", courseValidator.UpdateCourse(), adminController.UpdateCourse)
	admin.Delete("/courses/:id", courseValidator.CourseID(), adminController.DeleteCourse)

	admin.Post("/courses/:id/lessons", courseValidator.CreateLesson(), adminController.CreateLesson)
	admin.Patch("/lessons/:id", courseValidator.UpdateLesson(), adminController.UpdateLesson)
	admin.Delete("/lessons/:id", courseValidator.LessonID(), adminController.DeleteLesson)

	admin.Get("/achievements", adminController.ListAchievements)
	admin.Post("/achievements", achievementValidator.CreateAchievement(), adminController.CreateAchievement)
	admin.Patch("/achievements/:id", achievementValidator.UpdateAchievement(), adminController.UpdateAchievement)
	admin.Delete("/achievements/:id", achievementValidator.AchievementID(), adminController.DeleteAchievement)
}
