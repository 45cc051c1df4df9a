package user

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"not null;type:text"`
	Email        string    `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string    `gorm:"column:password;not null;type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the unqualified table name for the User entity.
func (User) TableName() string {
	return "signupusers"
}

// Claims represents the identity carried by a bearer token.
type Claims struct {
	UserID int64 `json:"id"`
}
