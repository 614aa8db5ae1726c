package tasks

import (
	"fmt"
	"strings"
	"time"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
	maxCommentLength     = 500
	maxTagLength         = 30
)

var validStatuses = map[string]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

var validPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

var validRecurrenceTypes = map[string]bool{
	RecurDaily:   true,
	RecurWeekly:  true,
	RecurMonthly: true,
	RecurYearly:  true,
}

// ValidateTitle ensures title is non-empty after trimming and within limits
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}
	if len(trimmed) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	return nil
}

// ValidateDescription ensures description is within limits
func ValidateDescription(desc string) error {
	if len(desc) > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}

// ValidateStatus ensures status is one of the known states
func ValidateStatus(status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("status must be one of: todo, in-progress, completed, cancelled")
	}
	return nil
}

// ValidatePriority ensures priority is one of the known levels
func ValidatePriority(priority string) error {
	if !validPriorities[priority] {
		return fmt.Errorf("priority must be one of: low, medium, high, urgent")
	}
	return nil
}

// ValidateRecurrence checks the recurrence type and interval
func ValidateRecurrence(rec *Recurrence) error {
	if rec == nil {
		return nil
	}
	if !validRecurrenceTypes[rec.Type] {
		return fmt.Errorf("recurrence type must be one of: daily, weekly, monthly, yearly")
	}
	if rec.Interval < 1 {
		return fmt.Errorf("recurrence interval must be at least 1")
	}
	return nil
}

// ValidateComment ensures comment text is non-empty and within limits
func ValidateComment(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("comment text is required")
	}
	if len(trimmed) > maxCommentLength {
		return fmt.Errorf("comment must be at most %d characters", maxCommentLength)
	}
	return nil
}

// ValidateCreate validates a task creation request. The due date must
// be strictly in the future on creation; updates may backdate freely.
func ValidateCreate(req *CreateTaskRequest, now time.Time) error {
	if err := ValidateTitle(req.Title); err != nil {
		return err
	}
	if err := ValidateDescription(req.Description); err != nil {
		return err
	}
	if req.Status != "" {
		if err := ValidateStatus(req.Status); err != nil {
			return err
		}
	}
	if req.Priority != "" {
		if err := ValidatePriority(req.Priority); err != nil {
			return err
		}
	}
	if req.DueDate != nil && !req.DueDate.After(now) {
		return fmt.Errorf("due date must be in the future")
	}
	if req.EstimatedTime < 0 {
		return fmt.Errorf("estimated time must be positive")
	}
	if err := ValidateRecurrence(req.Recurrence); err != nil {
		return err
	}
	for _, tag := range req.Tags {
		if len(tag) > maxTagLength {
			return fmt.Errorf("tags must be at most %d characters", maxTagLength)
		}
	}
	return nil
}

// ValidateUpdate validates a partial task update request
func ValidateUpdate(req *UpdateTaskRequest) error {
	if req.Title != nil {
		if err := ValidateTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := ValidateDescription(*req.Description); err != nil {
			return err
		}
	}
	if req.Status != nil {
		if err := ValidateStatus(*req.Status); err != nil {
			return err
		}
	}
	if req.Priority != nil {
		if err := ValidatePriority(*req.Priority); err != nil {
			return err
		}
	}
	if req.EstimatedTime != nil && *req.EstimatedTime < 0 {
		return fmt.Errorf("estimated time must be positive")
	}
	if req.ActualTime != nil && *req.ActualTime < 0 {
		return fmt.Errorf("actual time must be positive")
	}
	if err := ValidateRecurrence(req.Recurrence); err != nil {
		return err
	}
	for _, tag := range req.Tags {
		if len(tag) > maxTagLength {
			return fmt.Errorf("tags must be at most %d characters", maxTagLength)
		}
	}
	return nil
}

// normalizeTags lowercases, trims and deduplicates tags
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
