package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeAnswer NotificationType = "question_answered"
	NotificationTypeSystem NotificationType = "system"
)

type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"` // receiver
	User       User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ActorID    *uint            `gorm:"index" json:"actor_id"` // who triggered it
	Actor      User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type       NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	QuestionID *uint            `gorm:"index" json:"question_id"`
	Question   *Question        `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"question,omitempty"`
	Reason     string           `gorm:"type:text" json:"reason"`
	IsRead     bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
