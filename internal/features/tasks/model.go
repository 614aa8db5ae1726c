package tasks

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Recurrence types
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

// Task represents a unit of work inside a project
// @Description Task with subtasks, comments, recurrence and scheduling metadata
type Task struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title" example:"Write release notes"`
	Description   string               `bson:"description" json:"description"`
	Status        string               `bson:"status" json:"status" example:"todo" enums:"todo,in-progress,completed,cancelled"`
	Priority      string               `bson:"priority" json:"priority" example:"medium" enums:"low,medium,high,urgent"`
	DueDate       *time.Time           `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CompletedAt   *time.Time           `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	EstimatedTime int                  `bson:"estimatedTime,omitempty" json:"estimatedTime,omitempty"` // minutes
	ActualTime    int                  `bson:"actualTime,omitempty" json:"actualTime,omitempty"`       // minutes
	Project       primitive.ObjectID   `bson:"project" json:"project"`
	AssignedTo    *primitive.ObjectID  `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedBy     primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Tags          []string             `bson:"tags" json:"tags"`
	Subtasks      []Subtask            `bson:"subtasks" json:"subtasks"`
	Dependencies  []primitive.ObjectID `bson:"dependencies" json:"dependencies"`
	Recurrence    *Recurrence          `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	Reminders     []Reminder           `bson:"reminders" json:"reminders"`
	Attachments   []Attachment         `bson:"attachments" json:"attachments"`
	Comments      []Comment            `bson:"comments" json:"comments"`
	Order         float64              `bson:"order" json:"order"`
	IsArchived    bool                 `bson:"isArchived" json:"isArchived"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Subtask is an ordered checklist entry on a task
type Subtask struct {
	Title       string     `bson:"title" json:"title"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Order       int        `bson:"order" json:"order"`
}

// Recurrence describes how the next occurrence of a repeating task is generated
type Recurrence struct {
	Type     string     `bson:"type" json:"type" enums:"daily,weekly,monthly,yearly"`
	Interval int        `bson:"interval" json:"interval" example:"1"`
	EndDate  *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	NextDue  *time.Time `bson:"nextDue,omitempty" json:"nextDue,omitempty"`
}

// Reminder is a scheduled nudge relative to the due date
type Reminder struct {
	Type string `bson:"type" json:"type" enums:"email,push,sms"`
	Time int    `bson:"time" json:"time"` // minutes before due date
	Sent bool   `bson:"sent" json:"sent"`
}

// Attachment is file metadata uploaded through the media feature
type Attachment struct {
	Name       string    `bson:"name" json:"name"`
	URL        string    `bson:"url" json:"url"`
	Type       string    `bson:"type" json:"type"`
	Size       int64     `bson:"size" json:"size"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Comment is an append-only discussion entry on a task
type Comment struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CompletionPercentage derives progress from subtasks; tasks without
// subtasks are all-or-nothing.
func (t *Task) CompletionPercentage() int {
	if len(t.Subtasks) == 0 {
		if t.Status == StatusCompleted {
			return 100
		}
		return 0
	}

	completed := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(t.Subtasks)) * 100))
}

// IsOverdue reports whether the task has a due date in the past and is
// not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// CreateTaskRequest represents task creation data
type CreateTaskRequest struct {
	Title         string      `json:"title" binding:"required"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	DueDate       *time.Time  `json:"dueDate"`
	EstimatedTime int         `json:"estimatedTime"`
	Project       string      `json:"project" binding:"required"`
	AssignedTo    *string     `json:"assignedTo"`
	Tags          []string    `json:"tags"`
	Subtasks      []Subtask   `json:"subtasks"`
	Dependencies  []string    `json:"dependencies"`
	Recurrence    *Recurrence `json:"recurrence"`
	Reminders     []Reminder  `json:"reminders"`
	Order         *float64    `json:"order"`
}

// UpdateTaskRequest represents partial task update data; nil means
// "leave unchanged".
type UpdateTaskRequest struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Status        *string      `json:"status"`
	Priority      *string      `json:"priority"`
	DueDate       *time.Time   `json:"dueDate"`
	EstimatedTime *int         `json:"estimatedTime"`
	ActualTime    *int         `json:"actualTime"`
	AssignedTo    *string      `json:"assignedTo"`
	Tags          []string     `json:"tags"`
	Subtasks      []Subtask    `json:"subtasks"`
	Dependencies  []string     `json:"dependencies"`
	Recurrence    *Recurrence  `json:"recurrence"`
	Reminders     []Reminder   `json:"reminders"`
	Attachments   []Attachment `json:"attachments"`
	Order         *float64     `json:"order"`
	IsArchived    *bool        `json:"isArchived"`
}

// AddCommentRequest represents a new comment on a task
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// BulkUpdateRequest updates a set of tasks at once
type BulkUpdateRequest struct {
	TaskIDs    []string          `json:"taskIds" binding:"required"`
	UpdateData UpdateTaskRequest `json:"updateData"`
}

// ListQuery captures the supported task list filters
type ListQuery struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Project  string `form:"project"`
	Tags     string `form:"tags"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy,default=createdAt"`
	Order    string `form:"sortOrder,default=desc"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// TaskMutationResponse pairs the task with gamification feedback
type TaskMutationResponse struct {
	Task     *Task `json:"task"`
	XPGained int   `json:"xpGained"`
	LevelUp  bool  `json:"levelUp"`
}
