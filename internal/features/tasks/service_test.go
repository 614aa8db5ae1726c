package tasks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/gamification"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/realtime"
	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

// memStore keeps tasks in a map so service behavior can be exercised
// without a database.
type memStore struct {
	tasks map[primitive.ObjectID]*Task
}

func newMemStore() *memStore {
	return &memStore{tasks: make(map[primitive.ObjectID]*Task)}
}

func (m *memStore) Create(ctx context.Context, task *Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID: %w", apperrors.ErrValidation)
	}
	task, ok := m.tasks[oid]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (m *memStore) Replace(ctx context.Context, task *Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return fmt.Errorf("task %s: %w", task.ID.Hex(), apperrors.ErrNotFound)
	}
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *memStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	delete(m.tasks, id)
	return nil
}

func (m *memStore) List(ctx context.Context, userID primitive.ObjectID, q ListQuery) ([]Task, int64, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.CreatedBy == userID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memStore) Overdue(ctx context.Context, userID primitive.ObjectID) ([]Task, error) {
	return nil, nil
}

func (m *memStore) DueToday(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]Task, error) {
	return nil, nil
}

// fakeDirectory records stats refreshes so tests can assert when the
// service asks for a recompute.
type fakeDirectory struct {
	refreshed []primitive.ObjectID
}

func (f *fakeDirectory) Exists(ctx context.Context, projectID primitive.ObjectID) (bool, error) {
	return true, nil
}

func (f *fakeDirectory) IsMember(ctx context.Context, projectID, userID primitive.ObjectID) (bool, error) {
	return true, nil
}

func (f *fakeDirectory) RecomputeStats(ctx context.Context, projectID primitive.ObjectID) error {
	f.refreshed = append(f.refreshed, projectID)
	return nil
}

type memUserStore struct {
	progress map[primitive.ObjectID]*gamification.Gamification
}

func (m *memUserStore) GetGamification(ctx context.Context, userID primitive.ObjectID) (*gamification.Gamification, error) {
	if g, ok := m.progress[userID]; ok {
		copied := *g
		return &copied, nil
	}
	g := gamification.New()
	return &g, nil
}

func (m *memUserStore) SaveGamification(ctx context.Context, userID primitive.ObjectID, g *gamification.Gamification) error {
	if m.progress == nil {
		m.progress = make(map[primitive.ObjectID]*gamification.Gamification)
	}
	copied := *g
	m.progress[userID] = &copied
	return nil
}

func newTestService(store Store, dir ProjectDirectory) *Service {
	log := logger.New(logger.ERROR)
	xp := gamification.NewService(&memUserStore{}, log)
	return NewService(store, dir, xp, realtime.NewHub(log), nil, log)
}

func seedTask(store *memStore, task *Task) *Task {
	_ = store.Create(context.Background(), task)
	return store.tasks[task.ID]
}

func TestServiceCreatePersistsCompletedState(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &fakeDirectory{})
	userID := primitive.NewObjectID()

	resp, err := svc.Create(context.Background(), userID, &CreateTaskRequest{
		Title:   "Import backlog",
		Project: primitive.NewObjectID().Hex(),
		Status:  StatusCompleted,
		Subtasks: []Subtask{
			{Title: "step one"},
			{Title: "step two", Completed: true},
		},
	})
	require.NoError(t, err)

	stored := store.tasks[resp.Task.ID]
	require.NotNil(t, stored)
	assert.Equal(t, StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	for _, st := range stored.Subtasks {
		assert.True(t, st.Completed)
		assert.NotNil(t, st.CompletedAt)
	}
}

func TestServiceCreateDerivesStatusFromChecklist(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &fakeDirectory{})
	userID := primitive.NewObjectID()

	resp, err := svc.Create(context.Background(), userID, &CreateTaskRequest{
		Title:   "Migrated item",
		Project: primitive.NewObjectID().Hex(),
		Subtasks: []Subtask{
			{Title: "done already", Completed: true},
		},
	})
	require.NoError(t, err)

	stored := store.tasks[resp.Task.ID]
	require.NotNil(t, stored)
	assert.Equal(t, StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
}

func TestServiceUpdateAlwaysRefreshesProjectStats(t *testing.T) {
	store := newMemStore()
	dir := &fakeDirectory{}
	svc := newTestService(store, dir)

	userID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()
	task := seedTask(store, &Task{
		Title:     "Plan sprint",
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		Project:   projectID,
		CreatedBy: userID,
	})
	dir.refreshed = nil

	// A due-date-only change still feeds the project's overdue counter.
	due := time.Now().AddDate(0, 0, 3)
	_, err := svc.Update(context.Background(), userID, task.ID.Hex(), &UpdateTaskRequest{DueDate: &due})
	require.NoError(t, err)

	require.Len(t, dir.refreshed, 1)
	assert.Equal(t, projectID, dir.refreshed[0])
}

func TestServiceUpdateCompletionAwardsXP(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &fakeDirectory{})

	userID := primitive.NewObjectID()
	task := seedTask(store, &Task{
		Title:     "Fix flaky login",
		Status:    StatusInProgress,
		Priority:  PriorityUrgent,
		Project:   primitive.NewObjectID(),
		CreatedBy: userID,
	})

	status := StatusCompleted
	resp, err := svc.Update(context.Background(), userID, task.ID.Hex(), &UpdateTaskRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 50, resp.XPGained)
	require.NotNil(t, resp.Task.CompletedAt)
}

func TestServiceUpdateForbiddenForOutsiders(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &fakeDirectory{})

	task := seedTask(store, &Task{
		Title:     "Private item",
		Status:    StatusTodo,
		Project:   primitive.NewObjectID(),
		CreatedBy: primitive.NewObjectID(),
	})

	title := "hijacked"
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), task.ID.Hex(), &UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
