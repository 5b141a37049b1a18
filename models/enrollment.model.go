package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment joins a user to a course. The existence of the row is the
// enrollment signal; lesson content is gated on it.
type Enrollment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:1"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:2"`
	CreatedAt time.Time `json:"created_at"`
	Course    Course    `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
