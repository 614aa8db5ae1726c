package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/auth"
)

// PublicUser is the slice of a user account safe to show to other
// members when picking assignees and collaborators.
type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Avatar   string             `json:"avatar"`
	Level    int                `json:"level"`
	JoinedAt time.Time          `json:"joinedAt"`
}

// PublicView projects an account onto its public shape
func PublicView(u *auth.User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Level:    u.Gamification.Level,
		JoinedAt: u.CreatedAt,
	}
}

// SearchQuery captures the user search parameters
type SearchQuery struct {
	Q     string `form:"q" binding:"required,min=2,max=100"`
	Limit int    `form:"limit,default=10" binding:"min=1,max=50"`
}
