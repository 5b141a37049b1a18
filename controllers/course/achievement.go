package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/database"
	"lms/middleware"
	"lms/models"
)

// Milestones awarded automatically as lessons and courses get completed.
var milestones = []struct {
	Title       string
	Description string
	Icon        string
	Lessons     int64
}{
	{"First Steps", "Complete your first lesson", models.IconStar, 1},
	{"On a Roll", "Complete 5 lessons", models.IconTarget, 5},
	{"Dedicated Learner", "Complete 10 lessons", models.IconBook, 10},
}

const courseMilestoneTitle = "Course Champion"

// GetUserAchievements lists the achievements the caller has earned.
func GetUserAchievements(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	earned, err := FetchUserAchievements(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error fetching achievements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements fetched successfully!", earned)
}

// grantAchievement gives the user the named achievement, creating the
// achievement row when it does not exist yet. Granting twice is a no-op.
func grantAchievement(db *gorm.DB, userID uuid.UUID, title, description, icon string) {
	var achievement models.Achievement
	err := db.Where("title = ?", title).
		Attrs(models.Achievement{Description: description, Icon: icon}).
		FirstOrCreate(&achievement).Error
	if err != nil {
		log.Printf("Error ensuring achievement %q: %v", title, err)
		return
	}

	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserAchievement{
		UserID:        userID,
		AchievementID: achievement.ID,
	}).Error
	if err != nil {
		log.Printf("Error granting achievement %q: %v", title, err)
	}
}

// awardMilestones checks lesson and course completion counts and grants any
// newly reached milestones. Failures are logged, never surfaced to the
// request that triggered the check.
func awardMilestones(db *gorm.DB, userID uuid.UUID) {
	var completedLessons int64
	err := db.Model(&models.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completedLessons).Error
	if err != nil {
		log.Printf("Error counting completed lessons: %v", err)
		return
	}

	for _, m := range milestones {
		if completedLessons >= m.Lessons {
			grantAchievement(db, userID, m.Title, m.Description, m.Icon)
		}
	}

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		log.Printf("Error listing enrollments: %v", err)
		return
	}
	for _, e := range enrollments {
		completed, total, _, err := CourseCompletion(db, userID, e.CourseID)
		if err != nil {
			log.Printf("Error computing course completion: %v", err)
			continue
		}
		if total > 0 && completed == total {
			grantAchievement(db, userID, courseMilestoneTitle, "Complete every lesson in a course", models.IconTrophy)
			break
		}
	}
}
