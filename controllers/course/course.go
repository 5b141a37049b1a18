package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lms/database"
	"lms/middleware"
)

// GetCourses lists every course with its lessons and the caller's progress.
func GetCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courses, err := FetchCourses(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}
