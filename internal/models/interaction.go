package models

import (
	"time"
)

const (
	InteractionAskQuestion    = "ask_question"
	InteractionAnswerQuestion = "answer_question"
)

// Interaction is an append-only log of what a user did and which tags were
// involved. It is only read back as the input signal for recommendations.
type Interaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	QuestionID *uint     `gorm:"index" json:"question_id"`
	Tags       []Tag     `gorm:"many2many:interaction_tags;" json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}
