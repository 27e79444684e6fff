package models

import (
	"time"
)

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Qid       string    `gorm:"uniqueIndex;size:8;not null" json:"qid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Tags      []Tag     `gorm:"many2many:question_tags;" json:"tags"`
	Views     int       `gorm:"default:0" json:"views"`
	Score     int       `gorm:"default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not a column
	AnswerCount int `gorm:"-" json:"answer_count"`
}
