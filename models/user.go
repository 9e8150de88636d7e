package models

import "time"

type User struct {
	UserID       string    `json:"id" bson:"userid"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	PasswordHash string    `json:"-" bson:"passwordHash,omitempty"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
