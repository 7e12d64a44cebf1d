package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model `json:"-"`
	ID         uint     `json:"id" gorm:"primaryKey"`
	Name       string   `json:"name"`
	Email      string   `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password   string   `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Bio        string   `json:"bio,omitempty"`
	AvatarURL  string   `json:"avatar_url,omitempty"`
	PostIDs    []string `json:"post_ids" gorm:"serializer:json"` // Ordered list of owned post ids (MongoDB ObjectIDs as hex)
}

// PublicUser is the user shape returned by the API (no credentials)
type PublicUser struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Public strips credential and bookkeeping fields for API responses
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=300"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
