package projects

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collaborator roles
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Project groups tasks and carries denormalized task counters
// @Description Project with collaborators, settings and task stats
type Project struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name" example:"Website redesign"`
	Description   string             `bson:"description" json:"description"`
	Color         string             `bson:"color" json:"color" example:"#4F46E5"`
	Owner         primitive.ObjectID `bson:"owner" json:"owner"`
	Collaborators []Collaborator     `bson:"collaborators" json:"collaborators"`
	Settings      Settings           `bson:"settings" json:"settings"`
	Stats         Stats              `bson:"stats" json:"stats"`
	IsArchived    bool               `bson:"isArchived" json:"isArchived"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Collaborator is a user with a role on the project
type Collaborator struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	Role     string             `bson:"role" json:"role" enums:"viewer,editor,admin"`
	JoinedAt time.Time          `bson:"joinedAt" json:"joinedAt"`
}

// Settings holds per-project behavior toggles
type Settings struct {
	IsPublic            bool   `bson:"isPublic" json:"isPublic"`
	AllowComments       bool   `bson:"allowComments" json:"allowComments"`
	DefaultTaskPriority string `bson:"defaultTaskPriority" json:"defaultTaskPriority"`
}

// DefaultSettings returns settings for new projects
func DefaultSettings() Settings {
	return Settings{
		IsPublic:            false,
		AllowComments:       true,
		DefaultTaskPriority: "medium",
	}
}

// Stats is the denormalized task-counter snapshot, recomputed whenever
// a task in the project changes.
type Stats struct {
	TotalTasks     int64 `bson:"totalTasks" json:"totalTasks"`
	CompletedTasks int64 `bson:"completedTasks" json:"completedTasks"`
	OverdueTasks   int64 `bson:"overdueTasks" json:"overdueTasks"`
	CompletionRate int   `bson:"completionRate" json:"completionRate"` // percent
}

// CreateProjectRequest represents project creation data
type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Settings    *Settings `json:"settings"`
}

// UpdateProjectRequest represents partial project update data
type UpdateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	Settings    *Settings `json:"settings"`
	IsArchived  *bool     `json:"isArchived"`
}

// AddCollaboratorRequest adds a user to the project
type AddCollaboratorRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}
