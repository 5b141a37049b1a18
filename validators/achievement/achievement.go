package achievementValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type AchievementRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"omitempty,oneof=trophy star target book"`
}

// AchievementID validates the :id path parameter and stores it as a uuid.
func AchievementID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		achievementID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Achievement ID!", nil)
		}

		c.Locals("achievementID", achievementID)
		return c.Next()
	}
}

func CreateAchievement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AchievementRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedAchievement", reqData)
		return c.Next()
	}
}

func UpdateAchievement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		achievementID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Achievement ID!", nil)
		}

		reqData := new(AchievementRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("achievementID", achievementID)
		c.Locals("validatedAchievement", reqData)
		return c.Next()
	}
}
