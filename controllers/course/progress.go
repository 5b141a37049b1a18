package courseController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/database"
	"lms/middleware"
	"lms/models"
	progressValidator "lms/validators/progress"
)

// writeProgress upserts the (user, lesson) progress row. completed_at is set
// when completing and cleared when un-completing.
func writeProgress(db *gorm.DB, userID uuid.UUID, lesson *models.Lesson, completed bool) (models.UserProgress, error) {
	row := models.UserProgress{
		UserID:    userID,
		LessonID:  lesson.ID,
		CourseID:  &lesson.CourseID,
		Completed: completed,
	}
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "course_id", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return models.UserProgress{}, err
	}

	var saved models.UserProgress
	err = db.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).First(&saved).Error
	return saved, err
}

// GetUserProgress lists every progress row belonging to the caller.
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	progress, err := FetchUserProgress(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error fetching progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// UpdateLessonProgress marks a lesson completed or not for the caller and
// returns the saved row together with the refreshed progress list.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, ok := c.Locals("lessonID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*progressValidator.UpdateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		log.Printf("Error fetching lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	saved, err := writeProgress(db, userID, &lesson, *reqData.Completed)
	if err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if *reqData.Completed {
		awardMilestones(db, userID)
	}

	progress, err := FetchUserProgress(db, userID)
	if err != nil {
		log.Printf("Error fetching progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"progress":     saved,
		"all_progress": progress,
	})
}
