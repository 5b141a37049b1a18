package adminController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"lms/database"
	"lms/middleware"
	"lms/models"
)

// Stats summarizes platform activity for the back office: totals plus
// today's signups, enrollments and lesson completions.
func Stats(c *fiber.Ctx) error {
	db := database.Database.Db
	dayStart := now.BeginningOfDay()

	var totalUsers, totalCourses, totalLessons, totalEnrollments int64
	var usersToday, enrollmentsToday, completionsToday int64

	queries := []error{
		db.Model(&models.User{}).Count(&totalUsers).Error,
		db.Model(&models.Course{}).Count(&totalCourses).Error,
		db.Model(&models.Lesson{}).Count(&totalLessons).Error,
		db.Model(&models.Enrollment{}).Count(&totalEnrollments).Error,
		db.Model(&models.User{}).Where("created_at >= ?", dayStart).Count(&usersToday).Error,
		db.Model(&models.Enrollment{}).Where("created_at >= ?", dayStart).Count(&enrollmentsToday).Error,
		db.Model(&models.UserProgress{}).
			Where("completed = ? AND completed_at >= ?", true, dayStart).
			Count(&completionsToday).Error,
	}
	for _, err := range queries {
		if err != nil {
			log.Printf("Error computing stats: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
		}
	}

	var recentEnrollments []models.Enrollment
	err := db.Preload("Course").
		Order("created_at desc").
		Limit(10).
		Find(&recentEnrollments).Error
	if err != nil {
		log.Printf("Error fetching recent enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total_users":       totalUsers,
		"total_courses":     totalCourses,
		"total_lessons":     totalLessons,
		"total_enrollments": totalEnrollments,
		"today": fiber.Map{
			"new_users":          usersToday,
			"new_enrollments":    enrollmentsToday,
			"lesson_completions": completionsToday,
		},
		"recent_enrollments": recentEnrollments,
	})
}

// ListUsers returns registered users, newest first.
func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	err := database.Database.Db.Order("created_at desc").Find(&users).Error
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}
