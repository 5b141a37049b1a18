package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProgress is keyed uniquely per (user, lesson): writing progress for an
// already-progressed lesson overwrites, it does not duplicate.
type UserProgress struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson,priority:1"`
	LessonID    uuid.UUID  `json:"lesson_id" gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson,priority:2"`
	CourseID    *uuid.UUID `json:"course_id" gorm:"type:uuid;index"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName keeps the provider-compatible singular table name.
func (UserProgress) TableName() string {
	return "user_progress"
}

func (p *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
