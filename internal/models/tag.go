package models

import (
	"time"
)

// Tag names are stored lowercased; find-or-create is case-insensitive.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined in at query time, not a column
	QuestionCount int `gorm:"->;-:migration" json:"question_count"`
}
