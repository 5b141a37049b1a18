package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course groups an ordered set of lessons
type Course struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Lessons     []Lesson  `json:"lessons,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Lesson belongs to exactly one course. OrderIndex is unique within the
// course and defines presentation and navigation order.
type Lesson struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID   uuid.UUID      `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:idx_lessons_course_order,priority:1"`
	Title      string         `json:"title" gorm:"not null"`
	Duration   int            `json:"duration" gorm:"default:0"` // minutes
	Type       string         `json:"type" gorm:"default:'text'"`
	Content    datatypes.JSON `json:"content"`
	OrderIndex int            `json:"order_index" gorm:"uniqueIndex:idx_lessons_course_order,priority:2"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Course     *Course        `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
