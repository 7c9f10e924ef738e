package user

import (
	"time"
)

// User represents a registered account. Passwords are stored as bcrypt
// hashes only; the plaintext never leaves the registration/login handlers.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:text"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;type:text"`
	Username     string `json:"username" gorm:"type:text"`
	PasswordHash string `json:"-" gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the verified identity extracted from a bearer token: the subject
// id and the email the task store partitions on.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
