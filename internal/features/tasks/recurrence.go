package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NextDueDate advances a due date by one recurrence step. Monthly and
// yearly steps use calendar arithmetic, so Jan 15 + 2 months lands on
// Mar 15 regardless of month lengths in between.
func NextDueDate(from time.Time, rec Recurrence) time.Time {
	interval := rec.Interval
	if interval < 1 {
		interval = 1
	}

	switch rec.Type {
	case RecurDaily:
		return from.AddDate(0, 0, interval)
	case RecurWeekly:
		return from.AddDate(0, 0, 7*interval)
	case RecurMonthly:
		return from.AddDate(0, interval, 0)
	case RecurYearly:
		return from.AddDate(interval, 0, 0)
	default:
		return from
	}
}

// SpawnNextOccurrence builds the follow-up task for a completed
// recurring task. It returns nil when the task does not recur, has no
// due date to advance from, or the next due date falls past the
// recurrence end date.
func SpawnNextOccurrence(t *Task, now time.Time) *Task {
	if t.Recurrence == nil || t.DueDate == nil {
		return nil
	}

	nextDue := NextDueDate(*t.DueDate, *t.Recurrence)
	if t.Recurrence.EndDate != nil && nextDue.After(*t.Recurrence.EndDate) {
		return nil
	}

	// Subtasks carry over as a fresh checklist.
	subtasks := make([]Subtask, len(t.Subtasks))
	for i, st := range t.Subtasks {
		subtasks[i] = Subtask{Title: st.Title, Order: st.Order}
	}

	reminders := make([]Reminder, len(t.Reminders))
	for i, r := range t.Reminders {
		reminders[i] = Reminder{Type: r.Type, Time: r.Time}
	}

	rec := *t.Recurrence
	rec.NextDue = &nextDue

	next := &Task{
		Title:         t.Title,
		Description:   t.Description,
		Status:        StatusTodo,
		Priority:      t.Priority,
		DueDate:       &nextDue,
		EstimatedTime: t.EstimatedTime,
		Project:       t.Project,
		AssignedTo:    t.AssignedTo,
		CreatedBy:     t.CreatedBy,
		Tags:          append([]string(nil), t.Tags...),
		Subtasks:      subtasks,
		Dependencies:  append([]primitive.ObjectID(nil), t.Dependencies...),
		Recurrence:    &rec,
		Reminders:     reminders,
		Order:         t.Order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return next
}
