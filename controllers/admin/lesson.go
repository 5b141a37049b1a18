package adminController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// CreateLesson adds a lesson to a course. The content payload has already
// been checked against the declared lesson type at the validation boundary.
func CreateLesson(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ?", courseID).First(&models.Course{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	lesson := models.Lesson{
		CourseID:   courseID,
		Title:      reqData.Title,
		Duration:   reqData.Duration,
		Type:       reqData.Type,
		Content:    datatypes.JSON(reqData.Content),
		OrderIndex: reqData.OrderIndex,
	}
	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits a lesson, content shape included.
func UpdateLesson(c *fiber.Ctx) error {
	lessonID, ok := c.Locals("lessonID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	updates := map[string]interface{}{
		"title":       reqData.Title,
		"duration":    reqData.Duration,
		"type":        reqData.Type,
		"content":     datatypes.JSON(reqData.Content),
		"order_index": reqData.OrderIndex,
	}
	if err := db.Model(&lesson).Updates(updates).Error; err != nil {
		log.Printf("Error updating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson and the progress rows pointing at it.
func DeleteLesson(c *fiber.Ctx) error {
	lessonID, ok := c.Locals("lessonID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		log.Printf("Error fetching lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	tx := db.Begin()
	if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.UserProgress{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	if err := tx.Delete(&lesson).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
