package courseValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type CourseRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Color       string `json:"color"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// CourseID validates the :id path parameter and stores it as a uuid.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
