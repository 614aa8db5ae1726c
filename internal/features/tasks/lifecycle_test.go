package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestApplyMutationCompletionStampsTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{Status: StatusTodo, Priority: PriorityHigh}

	res := ApplyMutation(task, UpdateTaskRequest{Status: strPtr(StatusCompleted)}, now)

	assert.True(t, res.StatusChanged)
	assert.Equal(t, TransitionIntoCompleted, res.Transition)
	assert.Equal(t, PriorityHigh, res.XPEligiblePriority)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
}

func TestApplyMutationReopenClearsTimestamp(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)
	task := &Task{Status: StatusCompleted, Priority: PriorityLow, CompletedAt: &done}

	res := ApplyMutation(task, UpdateTaskRequest{Status: strPtr(StatusInProgress)}, now)

	assert.Equal(t, TransitionOutOfCompleted, res.Transition)
	assert.Empty(t, res.XPEligiblePriority)
	assert.Nil(t, task.CompletedAt)
}

func TestApplyMutationNoStatusChangeNoTransition(t *testing.T) {
	task := &Task{Status: StatusInProgress, Priority: PriorityMedium}

	res := ApplyMutation(task, UpdateTaskRequest{Title: strPtr("new title")}, time.Now())

	assert.False(t, res.StatusChanged)
	assert.Equal(t, TransitionNone, res.Transition)
	assert.Equal(t, "new title", task.Title)
}

func TestApplyMutationAllSubtasksCompletedForcesCompleted(t *testing.T) {
	now := time.Now()
	task := &Task{
		Status:   StatusInProgress,
		Priority: PriorityMedium,
		Subtasks: []Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: false},
		},
	}

	res := ApplyMutation(task, UpdateTaskRequest{
		Subtasks: []Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: true},
		},
	}, now)

	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, TransitionIntoCompleted, res.Transition)
	assert.Equal(t, PriorityMedium, res.XPEligiblePriority)
	require.NotNil(t, task.CompletedAt)
}

func TestApplyMutationReopenedSubtaskKeepsTaskCompleted(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)
	task := &Task{
		Status:      StatusCompleted,
		Priority:    PriorityUrgent,
		CompletedAt: &done,
		Subtasks: []Subtask{
			{Title: "a", Completed: true, CompletedAt: &done},
			{Title: "b", Completed: true, CompletedAt: &done},
		},
	}

	// Reopening a subtask alone does not demote a completed task; only
	// an explicit status change does.
	res := ApplyMutation(task, UpdateTaskRequest{
		Subtasks: []Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: false},
		},
	}, now)

	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, TransitionNone, res.Transition)
	assert.NotNil(t, task.CompletedAt)
}

func TestApplyMutationPartialChecklistPromotesTodo(t *testing.T) {
	task := &Task{
		Status:   StatusTodo,
		Priority: PriorityMedium,
		Subtasks: []Subtask{
			{Title: "a", Completed: false},
			{Title: "b", Completed: false},
		},
	}

	res := ApplyMutation(task, UpdateTaskRequest{
		Subtasks: []Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: false},
		},
	}, time.Now())

	assert.Equal(t, StatusInProgress, task.Status)
	assert.True(t, res.StatusChanged)
	assert.Equal(t, TransitionNone, res.Transition)
	assert.Nil(t, task.CompletedAt)
}

func TestApplyMutationExplicitCompleteForcesSubtasks(t *testing.T) {
	task := &Task{
		Status:   StatusInProgress,
		Priority: PriorityLow,
		Subtasks: []Subtask{{Title: "a", Completed: false}},
	}

	// Caller sets completed even though a subtask is open; the open
	// subtask is forced completed along with the task.
	ApplyMutation(task, UpdateTaskRequest{Status: strPtr(StatusCompleted)}, time.Now())
	assert.Equal(t, StatusCompleted, task.Status)
	assert.True(t, task.Subtasks[0].Completed)
	assert.NotNil(t, task.Subtasks[0].CompletedAt)
}

func TestApplyMutationChecklistOverridesExplicitReopen(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)
	task := &Task{
		Status:      StatusCompleted,
		Priority:    PriorityLow,
		CompletedAt: &done,
		Subtasks: []Subtask{
			{Title: "a", Completed: true, CompletedAt: &done},
			{Title: "b", Completed: true, CompletedAt: &done},
		},
	}

	// Setting todo while every subtask stays completed settles back on
	// completed: the checklist derivation runs after the explicit
	// change.
	res := ApplyMutation(task, UpdateTaskRequest{Status: strPtr(StatusTodo)}, now)

	assert.Equal(t, StatusCompleted, task.Status)
	assert.False(t, res.StatusChanged)
	assert.Equal(t, TransitionNone, res.Transition)
	require.NotNil(t, task.CompletedAt)
}

func TestApplyMutationCompletedChecklistForcesCancelled(t *testing.T) {
	task := &Task{
		Status:   StatusCancelled,
		Priority: PriorityLow,
		Subtasks: []Subtask{{Title: "a", Completed: true}},
	}

	res := ApplyMutation(task, UpdateTaskRequest{
		Subtasks: []Subtask{{Title: "a", Completed: true}},
	}, time.Now())

	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, TransitionIntoCompleted, res.Transition)
	assert.NotNil(t, task.CompletedAt)
}

func TestNormalizeNewCompletedStatusStampsTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{
		Status:   StatusCompleted,
		Priority: PriorityHigh,
		Subtasks: []Subtask{{Title: "a", Completed: false}},
	}

	NormalizeNew(task, now)

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
	assert.True(t, task.Subtasks[0].Completed)
}

func TestNormalizeNewCompletedChecklistCompletesTask(t *testing.T) {
	task := &Task{
		Status:   StatusTodo,
		Priority: PriorityLow,
		Subtasks: []Subtask{
			{Title: "a", Completed: true},
			{Title: "b", Completed: true},
		},
	}

	NormalizeNew(task, time.Now())

	assert.Equal(t, StatusCompleted, task.Status)
	assert.NotNil(t, task.CompletedAt)
}

func TestApplyMutationSubtaskStamping(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)
	task := &Task{
		Status:   StatusInProgress,
		Priority: PriorityMedium,
		Subtasks: []Subtask{
			{Title: "kept", Completed: true, CompletedAt: &earlier},
			{Title: "fresh", Completed: false},
		},
	}

	ApplyMutation(task, UpdateTaskRequest{
		Status: strPtr(StatusInProgress),
		Subtasks: []Subtask{
			{Title: "kept", Completed: true},
			{Title: "fresh", Completed: true},
			{Title: "reopened", Completed: false},
		},
	}, now)

	require.Len(t, task.Subtasks, 3)
	// Already-completed subtask keeps its original stamp.
	require.NotNil(t, task.Subtasks[0].CompletedAt)
	assert.Equal(t, earlier, *task.Subtasks[0].CompletedAt)
	// Newly completed one is stamped now.
	require.NotNil(t, task.Subtasks[1].CompletedAt)
	assert.Equal(t, now, *task.Subtasks[1].CompletedAt)
	// Open one has no stamp.
	assert.Nil(t, task.Subtasks[2].CompletedAt)
}

func TestApplyMutationNormalizesTags(t *testing.T) {
	task := &Task{Status: StatusTodo, Priority: PriorityLow}

	ApplyMutation(task, UpdateTaskRequest{Tags: []string{" Work ", "work", "URGENT"}}, time.Now())

	assert.Equal(t, []string{"work", "urgent"}, task.Tags)
}

func TestCompletionPercentage(t *testing.T) {
	task := &Task{Status: StatusTodo}
	assert.Equal(t, 0, task.CompletionPercentage())

	task.Status = StatusCompleted
	assert.Equal(t, 100, task.CompletionPercentage())

	task.Status = StatusInProgress
	task.Subtasks = []Subtask{
		{Completed: true},
		{Completed: true},
		{Completed: false},
	}
	assert.Equal(t, 67, task.CompletionPercentage())
}
