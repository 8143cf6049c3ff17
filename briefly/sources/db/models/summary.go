// briefly/sources/db/models/summary.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Summary is one generated article digest. It only exists after a full
// pipeline run succeeded; there is no draft or processing state.
type Summary struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey"`
	UserID    string    `json:"userId" gorm:"type:text;not null;index"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Summary) TableName() string {
	return "summaries"
}

func (s *Summary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
