package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"
	progressValidator "lms/validators/progress"
)

func SetupCourseRoutes(app *fiber.App) {
	courses := app.Group("/courses", middleware.JWTMiddleware)
	courses.Get("/", courseController.GetCourses)
	courses.Post("/:id/enroll", courseValidator.CourseID(), courseController.EnrollInCourse)

	lessons := app.Group("/lessons", middleware.JWTMiddleware)
	lessons.Get("/upcoming", progressValidator.UpcomingLessons(), courseController.GetUpcomingLessons)
	lessons.Get("/:id", courseValidator.LessonID(), courseController.GetLesson)
	lessons.Post("/:id/progress", progressValidator.UpdateLessonProgress(), courseController.UpdateLessonProgress)
	lessons.Post("/:id/quiz", progressValidator.SubmitQuiz(), courseController.SubmitQuiz)

	app.Get("/progress", middleware.JWTMiddleware, courseController.GetUserProgress)
	app.Get("/achievements", middleware.JWTMiddleware, courseController.GetUserAchievements)
	app.Get("/enrollments", middleware.JWTMiddleware, courseController.GetEnrollments)
}
