package courseController

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/database"
	"lms/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Name:            "Test User",
		Email:           email,
		Password:        "hashed",
		IsEmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourseWithLessons(t *testing.T, db *gorm.DB, title string, lessonCount int) (models.Course, []models.Lesson) {
	t.Helper()

	course := models.Course{Title: title}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]models.Lesson, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("%s lesson %d", title, i),
			Type:       models.LessonTypeText,
			Content:    datatypes.JSON(`{"title":"t","body":"<p>b</p>"}`),
			OrderIndex: i,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons[i] = lesson
	}

	return course, lessons
}

func TestWriteProgressUpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "upsert@example.com")
	_, lessons := createCourseWithLessons(t, db, "Go Basics", 2)

	saved, err := writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)
	assert.True(t, saved.Completed)
	require.NotNil(t, saved.CompletedAt)

	// A second write for the same lesson must overwrite, not duplicate
	saved, err = writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.UserProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWriteProgressClearsCompletedAt(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "clear@example.com")
	_, lessons := createCourseWithLessons(t, db, "Go Basics", 1)

	saved, err := writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)
	require.NotNil(t, saved.CompletedAt)

	saved, err = writeProgress(db, user.ID, &lessons[0], false)
	require.NoError(t, err)
	assert.False(t, saved.Completed)
	assert.Nil(t, saved.CompletedAt)
}

func TestFetchUpcomingLessons(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "upcoming@example.com")
	_, lessons := createCourseWithLessons(t, db, "Go Basics", 5)

	// Completing a lesson removes it from the upcoming list
	_, err := writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)

	// An incomplete progress row does not remove the lesson
	_, err = writeProgress(db, user.ID, &lessons[1], false)
	require.NoError(t, err)

	upcoming, err := FetchUpcomingLessons(db, user.ID, 4)
	require.NoError(t, err)
	require.Len(t, upcoming, 4)

	assert.Equal(t, lessons[1].ID, upcoming[0].ID)
	assert.Equal(t, lessons[2].ID, upcoming[1].ID)
	assert.Equal(t, lessons[3].ID, upcoming[2].ID)
	assert.Equal(t, lessons[4].ID, upcoming[3].ID)

	// The course relation comes along for display
	require.NotNil(t, upcoming[0].Course)
	assert.Equal(t, "Go Basics", upcoming[0].Course.Title)

	limited, err := FetchUpcomingLessons(db, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestCourseCompletion(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "completion@example.com")
	course, lessons := createCourseWithLessons(t, db, "Go Basics", 4)

	completed, total, percent, err := CourseCompletion(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), completed)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, float64(0), percent)

	_, err = writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)

	completed, _, percent, err = CourseCompletion(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)
	assert.Equal(t, float64(25), percent)
}

func TestCourseCompletionWithNoLessons(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "empty@example.com")
	course, _ := createCourseWithLessons(t, db, "Empty Course", 0)

	completed, total, percent, err := CourseCompletion(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), completed)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, float64(0), percent)
}

func TestFetchCoursesEmbedsProgress(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "courses@example.com")
	_, lessons := createCourseWithLessons(t, db, "Go Basics", 2)
	createCourseWithLessons(t, db, "Advanced Go", 3)

	_, err := writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)

	courses, err := FetchCourses(db, user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)

	basics := courses[0]
	assert.Equal(t, "Go Basics", basics.Title)
	assert.Equal(t, 2, basics.TotalLessons)
	assert.Equal(t, 1, basics.CompletedLessons)
	assert.Equal(t, float64(50), basics.CompletionPercent)
	require.Len(t, basics.Progress, 1)
	assert.Equal(t, lessons[0].ID, basics.Progress[0].LessonID)

	advanced := courses[1]
	assert.Equal(t, 0, advanced.CompletedLessons)
	assert.Equal(t, float64(0), advanced.CompletionPercent)
	assert.Empty(t, advanced.Progress)
}

func TestGrantAchievementIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "grant@example.com")

	grantAchievement(db, user.ID, "First Steps", "Complete your first lesson", models.IconStar)
	grantAchievement(db, user.ID, "First Steps", "Complete your first lesson", models.IconStar)

	var grants int64
	require.NoError(t, db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&grants).Error)
	assert.Equal(t, int64(1), grants)

	var definitions int64
	require.NoError(t, db.Model(&models.Achievement{}).Where("title = ?", "First Steps").Count(&definitions).Error)
	assert.Equal(t, int64(1), definitions)
}

func TestAwardMilestones(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "milestones@example.com")
	course, lessons := createCourseWithLessons(t, db, "Go Basics", 2)

	require.NoError(t, db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error)

	_, err := writeProgress(db, user.ID, &lessons[0], true)
	require.NoError(t, err)
	awardMilestones(db, user.ID)

	earned, err := FetchUserAchievements(db, user.ID)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, "First Steps", earned[0].Achievement.Title)

	// Finishing the enrolled course adds the course milestone
	_, err = writeProgress(db, user.ID, &lessons[1], true)
	require.NoError(t, err)
	awardMilestones(db, user.ID)

	earned, err = FetchUserAchievements(db, user.ID)
	require.NoError(t, err)

	titles := make([]string, len(earned))
	for i, e := range earned {
		titles[i] = e.Achievement.Title
	}
	assert.Contains(t, titles, "First Steps")
	assert.Contains(t, titles, courseMilestoneTitle)
}

func TestFetchUserAchievementsNormalizesIcons(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "icons@example.com")

	achievement := models.Achievement{Title: "Legacy Badge", Icon: "medal"}
	require.NoError(t, db.Create(&achievement).Error)
	require.NoError(t, db.Create(&models.UserAchievement{
		UserID:        user.ID,
		AchievementID: achievement.ID,
	}).Error)

	earned, err := FetchUserAchievements(db, user.ID)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, models.DefaultIcon, earned[0].Achievement.Icon)
}

func TestEnrollmentUniquePerUserAndCourse(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "enroll@example.com")
	course, _ := createCourseWithLessons(t, db, "Go Basics", 1)

	require.NoError(t, db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error)

	err := db.Create(&models.Enrollment{UserID: user.ID, CourseID: course.ID}).Error
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
