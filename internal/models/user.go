package models

import "time"

// User is an account that owns properties. PasswordHash never leaves the server.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Username     string    `gorm:"size:191;not null;uniqueIndex" json:"username" bson:"username"`
	Email        string    `gorm:"size:191;not null;uniqueIndex" json:"email" bson:"email"`
	PasswordHash string    `gorm:"size:191;not null" json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the outbound representation of a User
type PublicUser struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
}

// Public strips everything but the identifying fields
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
