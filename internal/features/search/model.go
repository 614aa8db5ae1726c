package search

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Search type constants
const (
	TypeAll      = "all"
	TypeTasks    = "tasks"
	TypeProjects = "projects"
)

// UnifiedSearchQuery for GET /search
type UnifiedSearchQuery struct {
	Q     string `form:"q" binding:"required,min=2,max=100"`
	Type  string `form:"type,default=all" binding:"oneof=all tasks projects"`
	Limit int    `form:"limit,default=10" binding:"min=1,max=20"`
}

// TaskResult is a task row in the search response
type TaskResult struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Status    string             `json:"status"`
	Priority  string             `json:"priority"`
	Project   primitive.ObjectID `json:"project"`
	DueDate   *time.Time         `json:"dueDate,omitempty"`
	Tags      []string           `json:"tags"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ProjectResult is a project row in the search response
type ProjectResult struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Color       string             `json:"color"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// UnifiedSearchResponse for GET /search
type UnifiedSearchResponse struct {
	Query    string          `json:"query"`
	Tasks    []TaskResult    `json:"tasks,omitempty"`
	Projects []ProjectResult `json:"projects,omitempty"`
}

// taskDoc is the slice of a task document the search reads
type taskDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Status    string             `bson:"status"`
	Priority  string             `bson:"priority"`
	Project   primitive.ObjectID `bson:"project"`
	DueDate   *time.Time         `bson:"dueDate"`
	Tags      []string           `bson:"tags"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// projectDoc is the slice of a project document the search reads
type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Color       string             `bson:"color"`
	CreatedAt   time.Time          `bson:"createdAt"`
}
