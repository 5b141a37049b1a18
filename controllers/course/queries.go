package courseController

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/models"
)

// Query helpers shared by the per-collection handlers and the dashboard
// aggregate. Each takes the db handle so callers can scope it with a
// request context.

// CourseWithProgress is a course enriched with the caller's progress rows
// and the derived completion percentage.
type CourseWithProgress struct {
	models.Course
	Progress          []models.UserProgress `json:"user_progress"`
	CompletedLessons  int                   `json:"completed_lessons"`
	TotalLessons      int                   `json:"total_lessons"`
	CompletionPercent float64               `json:"completion_percent"`
}

// FetchCourses lists all courses with nested lessons ordered by order_index,
// embedding the user's progress rows, ordered by creation time ascending.
func FetchCourses(db *gorm.DB, userID uuid.UUID) ([]CourseWithProgress, error) {
	var courses []models.Course
	err := db.
		// Content ships only from the gated lesson endpoint
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Omit("content").Order("order_index asc")
		}).
		Order("created_at asc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	var progress []models.UserProgress
	if err := db.Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		return nil, err
	}

	byLesson := make(map[uuid.UUID]models.UserProgress, len(progress))
	for _, p := range progress {
		byLesson[p.LessonID] = p
	}

	result := make([]CourseWithProgress, len(courses))
	for i, course := range courses {
		entry := CourseWithProgress{
			Course:       course,
			Progress:     []models.UserProgress{},
			TotalLessons: len(course.Lessons),
		}
		for _, lesson := range course.Lessons {
			if p, ok := byLesson[lesson.ID]; ok {
				entry.Progress = append(entry.Progress, p)
				if p.Completed {
					entry.CompletedLessons++
				}
			}
		}
		// Guard against division by zero for courses with no lessons
		if entry.TotalLessons > 0 {
			entry.CompletionPercent = float64(entry.CompletedLessons) / float64(entry.TotalLessons) * 100
		}
		result[i] = entry
	}

	return result, nil
}

// FetchUpcomingLessons lists lessons the user has not completed, joined to
// their course, ordered by order index and truncated to limit.
func FetchUpcomingLessons(db *gorm.DB, userID uuid.UUID, limit int) ([]models.Lesson, error) {
	completed := db.Model(&models.UserProgress{}).
		Select("lesson_id").
		Where("user_id = ? AND completed = ?", userID, true)

	var lessons []models.Lesson
	err := db.
		Omit("content").
		Preload("Course").
		Where("id NOT IN (?)", completed).
		Order("order_index asc, created_at asc").
		Limit(limit).
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	return lessons, nil
}

// FetchUserProgress lists all progress rows for the user, unfiltered by course.
func FetchUserProgress(db *gorm.DB, userID uuid.UUID) ([]models.UserProgress, error) {
	var progress []models.UserProgress
	err := db.Where("user_id = ?", userID).Order("created_at asc").Find(&progress).Error
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// FetchUserAchievements lists the user's earned achievements joined to the
// achievement rows. Unknown icon tags fall back to the default icon.
func FetchUserAchievements(db *gorm.DB, userID uuid.UUID) ([]models.UserAchievement, error) {
	var earned []models.UserAchievement
	err := db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at asc").
		Find(&earned).Error
	if err != nil {
		return nil, err
	}

	for i := range earned {
		earned[i].Achievement.Icon = models.NormalizeIcon(earned[i].Achievement.Icon)
	}

	return earned, nil
}

// FetchEnrollments lists the user's enrollments with their courses.
func FetchEnrollments(db *gorm.DB, userID uuid.UUID) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := db.Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

// CourseCompletion computes the user's completion for one course, guarding
// against courses with no lessons.
func CourseCompletion(db *gorm.DB, userID, courseID uuid.UUID) (completed int64, total int64, percent float64, err error) {
	if err = db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return 0, 0, 0, err
	}
	if total == 0 {
		return 0, 0, 0, nil
	}

	err = db.Model(&models.UserProgress{}).
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND lessons.course_id = ? AND user_progress.completed = ?", userID, courseID, true).
		Count(&completed).Error
	if err != nil {
		return 0, 0, 0, err
	}

	return completed, total, float64(completed) / float64(total) * 100, nil
}
