package progressValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type UpdateProgressRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type SubmitQuizRequest struct {
	Selected *int `json:"selected" validate:"required,gte=0"`
}

func UpdateLessonProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(UpdateProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// UpcomingLessons validates the optional limit query parameter, defaulting
// to 4 and capping at 20.
func UpcomingLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 4

		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Limit must be a positive number!", nil)
			}
			if parsed > 20 {
				parsed = 20
			}
			limit = parsed
		}

		c.Locals("upcomingLimit", limit)
		return c.Next()
	}
}
