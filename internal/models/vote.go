package models

import (
	"time"
)

// Vote holds exactly one of QuestionID/AnswerID. The unique indexes make a
// user's vote state per target one of {none, up, down} — never both.
// Postgres treats NULLs as distinct, so the question index does not collide
// across a user's answer votes and vice versa.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_question_vote;uniqueIndex:idx_user_answer_vote" json:"user_id"`
	QuestionID *uint     `gorm:"index;uniqueIndex:idx_user_question_vote" json:"question_id"`
	AnswerID   *uint     `gorm:"index;uniqueIndex:idx_user_answer_vote" json:"answer_id"`
	Value      int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt  time.Time `json:"created_at"`
}
