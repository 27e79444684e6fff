package models

import (
	"time"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AccountID  string    `gorm:"uniqueIndex;not null" json:"account_id"` // external identity provider id
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Name       string    `json:"name"`
	// Email uniqueness belongs to the identity provider; events may omit it
	Email      string    `json:"email"`
	Bio        string    `gorm:"size:200" json:"bio"`
	Location   string    `gorm:"size:100" json:"location"`
	Website    string    `json:"website"`
	Picture    string    `json:"picture"`
	Reputation int       `gorm:"default:0" json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// No DeletedAt: identity deletion upstream hard-deletes the row
}
