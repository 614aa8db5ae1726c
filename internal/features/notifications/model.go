package notifications

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification type constants
const (
	TypeTaskAssigned      = "task_assigned"
	TypeCommentAdded      = "comment_added"
	TypeCollaboratorAdded = "collaborator_added"
	TypeLevelUp           = "level_up"
)

// Notification is an in-app message for one user
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Recipient primitive.ObjectID  `bson:"recipient" json:"recipient"`
	Actor     primitive.ObjectID  `bson:"actor" json:"actor"`
	Type      string              `bson:"type" json:"type"`
	Message   string              `bson:"message" json:"message"`
	TaskID    *primitive.ObjectID `bson:"taskId,omitempty" json:"taskId,omitempty"`
	ProjectID *primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	IsRead    bool                `bson:"isRead" json:"isRead"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// ListQuery captures the notification list filters
type ListQuery struct {
	Page       int  `form:"page,default=1" binding:"min=1"`
	Limit      int  `form:"limit,default=20" binding:"min=1,max=50"`
	UnreadOnly bool `form:"unreadOnly"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

type MarkAllReadResponse struct {
	MarkedCount int64 `json:"markedCount"`
}
