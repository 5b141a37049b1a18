package courseController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
)

// GetEnrollments lists the caller's enrollments with their courses.
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := FetchEnrollments(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// EnrollInCourse enrolls the caller in a course. Enrolling twice keeps a
// single row and still succeeds.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	var existing int64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&existing)

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}).Error
	if err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	// Mail only on first enrollment, not on idempotent repeats
	if existing == 0 {
		go func(userID uuid.UUID, courseTitle string) {
			var user models.User
			if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
				return
			}
			if err := utils.SendEnrollmentEmail(user.Email, user.Name, courseTitle); err != nil {
				log.Printf("Error sending enrollment email: %v", err)
			}
		}(userID, course.Title)
	}

	enrollments, err := FetchEnrollments(db, userID)
	if err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", enrollments)
}
