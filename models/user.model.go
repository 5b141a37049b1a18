package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name            string     `json:"name" gorm:"default:''"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	Password        string     `json:"-" gorm:"not null"`
	Role            string     `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	IsEmailVerified bool       `json:"is_email_verified" gorm:"default:false"`
	LastLogin       *time.Time `json:"last_login"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user may access the admin back-office.
func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}

// VerificationCode is a one-time code mailed to a user for email
// confirmation or password reset.
type VerificationCode struct {
	gorm.Model
	Email     string    `json:"email" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Purpose   string    `json:"purpose" gorm:"index;not null"` // CONFIRM_EMAIL, RESET_PASSWORD
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used" gorm:"default:false"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	LoginTime time.Time `json:"login_time"`
}
