package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/database"
	"lms/models"
)

func TestPurgeExpiredCodes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	expired := models.VerificationCode{
		Email:     "old@example.com",
		Code:      "111111",
		Purpose:   "CONFIRM_EMAIL",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	active := models.VerificationCode{
		Email:     "fresh@example.com",
		Code:      "222222",
		Purpose:   "CONFIRM_EMAIL",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&active).Error)

	PurgeExpiredCodes()

	var remaining []models.VerificationCode
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh@example.com", remaining[0].Email)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := GenerateOTP()
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
