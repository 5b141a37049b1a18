package courseValidator

import (
	"encoding/json"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LessonRequest struct {
	Title      string          `json:"title" validate:"required,min=3"`
	Duration   int             `json:"duration" validate:"gte=0"`
	Type       string          `json:"type" validate:"required,oneof=text code quiz"`
	Content    json.RawMessage `json:"content" validate:"required"`
	OrderIndex int             `json:"order_index" validate:"gte=0"`
}

// checkContentShape rejects a payload that does not match the declared
// lesson type. The admin form boundary is the only place a malformed payload
// is blocked; reads degrade instead.
func checkContentShape(reqData *LessonRequest) map[string]string {
	probe := models.Lesson{
		Type:    reqData.Type,
		Content: datatypes.JSON(reqData.Content),
	}
	if _, err := probe.DecodeContent(); err != nil {
		return map[string]string{"content": err.Error()}
	}
	return nil
}

// LessonID validates the :id path parameter and stores it as a uuid.
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		if errors := checkContentShape(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		if errors := checkContentShape(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
