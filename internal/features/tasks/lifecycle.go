package tasks

import "time"

// CompletionTransition classifies what a mutation did to the task's
// completed state.
type CompletionTransition int

const (
	TransitionNone CompletionTransition = iota
	TransitionIntoCompleted
	TransitionOutOfCompleted
)

// MutationResult reports the side effects of ApplyMutation that callers
// act on: XP awards, stats recomputes, event payloads.
type MutationResult struct {
	StatusChanged bool
	Transition    CompletionTransition
	// XPEligiblePriority is the priority to award completion XP for,
	// empty when no award is due.
	XPEligiblePriority string
}

// ApplyMutation folds an update into the task and normalizes derived
// state. Rules run in a fixed order so later rules see the effect of
// earlier ones:
//
//  1. apply the requested field changes, stamping completedAt on newly
//     completed subtasks and clearing it on reopened ones
//  2. on an explicit change to completed, stamp completedAt and
//     complete every remaining subtask; on an explicit change away
//     from completed, clear completedAt
//  3. derive status from subtasks, even when the status was set
//     explicitly in the same mutation: every subtask completed forces
//     the task to completed; a partially completed checklist promotes
//     a todo task to in-progress
//
// The function never touches storage; persistence and side effects are
// the service's job.
func ApplyMutation(t *Task, upd UpdateTaskRequest, now time.Time) MutationResult {
	prevStatus := t.Status

	applyFields(t, upd)
	applySubtasks(t, upd.Subtasks, now)

	statusModified := upd.Status != nil && *upd.Status != prevStatus
	if statusModified && t.Status == StatusCompleted {
		stampCompleted(t, now)
	} else if statusModified {
		t.CompletedAt = nil
	}

	deriveStatusFromSubtasks(t, now)

	res := MutationResult{StatusChanged: t.Status != prevStatus}

	switch {
	case t.Status == StatusCompleted && prevStatus != StatusCompleted:
		res.Transition = TransitionIntoCompleted
		res.XPEligiblePriority = t.Priority
		stampCompleted(t, now)
	case t.Status != StatusCompleted && prevStatus == StatusCompleted:
		res.Transition = TransitionOutOfCompleted
		t.CompletedAt = nil
	}

	t.UpdatedAt = now
	return res
}

// NormalizeNew runs the derivation rules on a freshly built task before
// its first persistence, the equivalent of ApplyMutation for creation:
// a task created as completed gets completedAt and a fully completed
// checklist, and a pre-completed checklist completes the task.
func NormalizeNew(t *Task, now time.Time) {
	if t.Status == StatusCompleted {
		stampCompleted(t, now)
	}
	deriveStatusFromSubtasks(t, now)
}

// stampCompleted marks the task completed as of now, checking off any
// remaining subtasks.
func stampCompleted(t *Task, now time.Time) {
	ts := now
	t.CompletedAt = &ts
	for i := range t.Subtasks {
		if !t.Subtasks[i].Completed {
			t.Subtasks[i].Completed = true
			st := now
			t.Subtasks[i].CompletedAt = &st
		}
	}
}

// deriveStatusFromSubtasks applies the checklist-driven status rules: a
// fully completed checklist forces the task to completed; a partially
// completed one promotes a todo task to in-progress.
func deriveStatusFromSubtasks(t *Task, now time.Time) {
	if len(t.Subtasks) == 0 {
		return
	}

	completed := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			completed++
		}
	}

	if completed == len(t.Subtasks) && t.Status != StatusCompleted {
		t.Status = StatusCompleted
		ts := now
		t.CompletedAt = &ts
	} else if completed > 0 && t.Status == StatusTodo {
		t.Status = StatusInProgress
	}
}

func applyFields(t *Task, upd UpdateTaskRequest) {
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	if upd.EstimatedTime != nil {
		t.EstimatedTime = *upd.EstimatedTime
	}
	if upd.ActualTime != nil {
		t.ActualTime = *upd.ActualTime
	}
	if upd.Tags != nil {
		t.Tags = normalizeTags(upd.Tags)
	}
	if upd.Recurrence != nil {
		t.Recurrence = upd.Recurrence
	}
	if upd.Reminders != nil {
		t.Reminders = upd.Reminders
	}
	if upd.Attachments != nil {
		t.Attachments = upd.Attachments
	}
	if upd.Order != nil {
		t.Order = *upd.Order
	}
	if upd.IsArchived != nil {
		t.IsArchived = *upd.IsArchived
	}
}

// applySubtasks replaces the subtask list and stamps completion times
// by matching old entries by title.
func applySubtasks(t *Task, incoming []Subtask, now time.Time) {
	if incoming == nil {
		return
	}

	prev := make(map[string]Subtask, len(t.Subtasks))
	for _, st := range t.Subtasks {
		prev[st.Title] = st
	}

	next := make([]Subtask, len(incoming))
	for i, st := range incoming {
		old, existed := prev[st.Title]
		switch {
		case st.Completed && (!existed || !old.Completed):
			ts := now
			st.CompletedAt = &ts
		case st.Completed && existed && old.Completed:
			st.CompletedAt = old.CompletedAt
		default:
			st.CompletedAt = nil
		}
		next[i] = st
	}
	t.Subtasks = next
}
