package models

import (
	"time"
)

// Collection marks a question as saved by a user.
type Collection struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_question_saved" json:"user_id"`
	QuestionID uint      `gorm:"not null;index;uniqueIndex:idx_user_question_saved" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"question"`
	CreatedAt  time.Time `json:"created_at"`
}
