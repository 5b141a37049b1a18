package courseController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	progressValidator "lms/validators/progress"
)

// GetUpcomingLessons lists lessons the user has not yet completed, in
// order-index order, limited by the validated limit query parameter.
func GetUpcomingLessons(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit, ok := c.Locals("upcomingLimit").(int)
	if !ok {
		limit = 4
	}

	lessons, err := FetchUpcomingLessons(database.Database.Db, userID, limit)
	if err != nil {
		log.Printf("Error fetching upcoming lessons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch upcoming lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upcoming lessons fetched successfully!", lessons)
}

// GetLesson returns one lesson with its decoded content. The caller must be
// enrolled in the lesson's course. Quiz payloads are stripped of the correct
// answer index before they leave the server.
func GetLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, ok := c.Locals("lessonID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Preload("Course").Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		log.Printf("Error fetching lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, lesson.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	decoded, err := lesson.DecodeContent()

	// The decoded payload is the only content that leaves the server; the
	// raw column would expose quiz answers.
	lesson.Content = nil

	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
			"lesson":        lesson,
			"content":       nil,
			"content_error": models.ErrMalformedContent.Error(),
		})
	}

	if quiz, ok := decoded.(models.QuizContent); ok {
		decoded = fiber.Map{
			"question": quiz.Question,
			"options":  quiz.Options,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":  lesson,
		"content": decoded,
	})
}

// SubmitQuiz grades a quiz answer. A correct answer marks the lesson
// completed through the same upsert path as explicit progress writes.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, ok := c.Locals("lessonID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*progressValidator.SubmitQuizRequest)
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	quiz, err := lesson.QuizContent()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This lesson has no quiz to submit!", nil)
	}

	if *reqData.Selected >= len(quiz.Options) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Selected option is out of range!", nil)
	}

	correct := quiz.IsCorrect(*reqData.Selected)
	if correct {
		if _, err := writeProgress(db, userID, &lesson, true); err != nil {
			log.Printf("Error saving quiz progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
		awardMilestones(db, userID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"correct":        correct,
		"correct_answer": quiz.CorrectAnswer,
	})
}
