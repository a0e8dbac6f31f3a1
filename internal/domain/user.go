package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can sign in, invite people and receive invitations.
type User struct {
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Email         string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PreferredName string    `gorm:"column:preferred_name;not null" json:"preferred_name"`
	PasswordHash  string    `gorm:"column:password_hash" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "Users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
