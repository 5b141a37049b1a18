package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Known achievement icons. Unknown values fall back to DefaultIcon.
const (
	IconTrophy = "trophy"
	IconStar   = "star"
	IconTarget = "target"
	IconBook   = "book"

	DefaultIcon = IconTrophy
)

var knownIcons = map[string]bool{
	IconTrophy: true,
	IconStar:   true,
	IconTarget: true,
	IconBook:   true,
}

// NormalizeIcon maps an unknown icon tag to the default icon.
func NormalizeIcon(icon string) string {
	if knownIcons[icon] {
		return icon
	}
	return DefaultIcon
}

// IsKnownIcon reports whether the icon tag is part of the fixed set.
func IsKnownIcon(icon string) bool {
	return knownIcons[icon]
}

type Achievement struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" gorm:"default:'trophy'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// UserAchievement joins a user to an earned achievement.
type UserAchievement struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:1"`
	AchievementID uuid.UUID   `json:"achievement_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement,priority:2"`
	EarnedAt      time.Time   `json:"earned_at"`
	Achievement   Achievement `json:"achievement" gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE"`
}

func (ua *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if ua.ID == uuid.Nil {
		ua.ID = uuid.New()
	}
	if ua.EarnedAt.IsZero() {
		ua.EarnedAt = time.Now()
	}
	return nil
}
