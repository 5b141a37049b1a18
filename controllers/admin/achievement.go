package adminController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	achievementValidator "lms/validators/achievement"
)

// ListAchievements returns every defined achievement.
func ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	err := database.Database.Db.Order("created_at asc").Find(&achievements).Error
	if err != nil {
		log.Printf("Error listing achievements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements fetched successfully!", achievements)
}

// CreateAchievement defines a new achievement.
func CreateAchievement(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAchievement").(*achievementValidator.AchievementRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	achievement := models.Achievement{
		Title:       reqData.Title,
		Description: reqData.Description,
		Icon:        models.NormalizeIcon(reqData.Icon),
	}
	if err := database.Database.Db.Create(&achievement).Error; err != nil {
		log.Printf("Error creating achievement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Achievement created successfully!", achievement)
}

// UpdateAchievement edits an achievement definition.
func UpdateAchievement(c *fiber.Ctx) error {
	achievementID, ok := c.Locals("achievementID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Achievement ID!", nil)
	}

	reqData, ok := c.Locals("validatedAchievement").(*achievementValidator.AchievementRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var achievement models.Achievement
	if err := db.Where("id = ?", achievementID).First(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Achievement not found!", nil)
		}
		log.Printf("Error fetching achievement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update achievement!", nil)
	}

	updates := map[string]interface{}{
		"title":       reqData.Title,
		"description": reqData.Description,
		"icon":        models.NormalizeIcon(reqData.Icon),
	}
	if err := db.Model(&achievement).Updates(updates).Error; err != nil {
		log.Printf("Error updating achievement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievement updated successfully!", achievement)
}

// DeleteAchievement removes an achievement and every grant of it.
func DeleteAchievement(c *fiber.Ctx) error {
	achievementID, ok := c.Locals("achievementID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Achievement ID!", nil)
	}

	db := database.Database.Db

	var achievement models.Achievement
	if err := db.Where("id = ?", achievementID).First(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Achievement not found!", nil)
		}
		log.Printf("Error fetching achievement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete achievement!", nil)
	}

	tx := db.Begin()
	if err := tx.Where("achievement_id = ?", achievementID).Delete(&models.UserAchievement{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting achievement grants: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete achievement!", nil)
	}
	if err := tx.Delete(&achievement).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting achievement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete achievement!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievement deleted successfully!", nil)
}
