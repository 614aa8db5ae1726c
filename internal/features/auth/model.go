package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/gamification"
)

// User represents a registered user in the system
// @Description User account with preferences and gamification progress
type User struct {
	ID           primitive.ObjectID        `bson:"_id,omitempty" json:"id"`
	Name         string                    `bson:"name" json:"name" example:"Jane Cooper"`
	Email        string                    `bson:"email" json:"email" example:"jane@example.com"`
	Password     string                    `bson:"password,omitempty" json:"-"`
	Avatar       string                    `bson:"avatar" json:"avatar"`
	GoogleID     string                    `bson:"googleId,omitempty" json:"-"`
	Preferences  Preferences               `bson:"preferences" json:"preferences"`
	Gamification gamification.Gamification `bson:"gamification" json:"gamification"`
	IsActive     bool                      `bson:"isActive" json:"isActive"`
	IsAdmin      bool                      `bson:"isAdmin" json:"isAdmin"`
	LastLogin    time.Time                 `bson:"lastLogin" json:"lastLogin"`
	CreatedAt    time.Time                 `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                 `bson:"updatedAt" json:"updatedAt"`
}

// Preferences holds per-user UI and notification settings
type Preferences struct {
	Theme         string              `bson:"theme" json:"theme" example:"system" enums:"light,dark,system"`
	Notifications NotificationToggles `bson:"notifications" json:"notifications"`
	Timezone      string              `bson:"timezone" json:"timezone" example:"UTC"`
}

type NotificationToggles struct {
	Email     bool `bson:"email" json:"email"`
	Push      bool `bson:"push" json:"push"`
	Reminders bool `bson:"reminders" json:"reminders"`
}

// DefaultPreferences returns the preferences assigned to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme: "system",
		Notifications: NotificationToggles{
			Email:     true,
			Push:      true,
			Reminders: true,
		},
		Timezone: "UTC",
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Cooper"`
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"hunter2hunter2"`
}

// LoginRequest represents user login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest represents the payload for Google sign-in
type GoogleAuthRequest struct {
	GoogleIDToken string `json:"googleIdToken" binding:"required"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name        string       `json:"name,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
