package dashboardController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	courseController "lms/controllers/course"
	"lms/database"
	"lms/middleware"
	"lms/models"
)

// GetDashboard loads everything the home screen needs in one request. The
// five reads are independent, so they run concurrently; any failure fails
// the whole aggregate.
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var (
		courses      []courseController.CourseWithProgress
		upcoming     []models.Lesson
		progress     []models.UserProgress
		achievements []models.UserAchievement
		enrollments  []models.Enrollment
	)

	g, _ := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		courses, err = courseController.FetchCourses(db, userID)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = courseController.FetchUpcomingLessons(db, userID, 4)
		return err
	})
	g.Go(func() (err error) {
		progress, err = courseController.FetchUserProgress(db, userID)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = courseController.FetchUserAchievements(db, userID)
		return err
	})
	g.Go(func() (err error) {
		enrollments, err = courseController.FetchEnrollments(db, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("Error building dashboard: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses":          courses,
		"upcoming_lessons": upcoming,
		"progress":         progress,
		"achievements":     achievements,
		"enrollments":      enrollments,
	})
}
