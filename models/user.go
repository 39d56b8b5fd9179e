package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	Permissions   []string  `json:"permissions,omitempty" bson:"permissions,omitempty"`
	EmailVerified bool      `json:"emailVerified" bson:"email_verified"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}
