package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User ids are text so they line up with the JWT subject and the
// summaries.user_id column.
type User struct {
	ID       string  `json:"id" gorm:"type:text;primaryKey"`
	Username string  `json:"username" gorm:"type:varchar(255);not null;uniqueIndex"`
	Email    string  `json:"email" gorm:"type:varchar(255);not null"`
	FullName *string `json:"full_name,omitempty" gorm:"type:varchar(255)"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
