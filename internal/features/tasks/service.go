package tasks

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/gamification"
	"github.com/taskhive/taskhive/internal/features/notifications"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/realtime"
	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

// ProjectDirectory is the slice of the projects feature the task
// service needs. Routes wiring provides an adapter to avoid an import
// cycle with the projects package.
type ProjectDirectory interface {
	Exists(ctx context.Context, projectID primitive.ObjectID) (bool, error)
	IsMember(ctx context.Context, projectID, userID primitive.ObjectID) (bool, error)
	RecomputeStats(ctx context.Context, projectID primitive.ObjectID) error
}

// Store is the slice of the repository the service touches, satisfied
// by *Repository.
type Store interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	Replace(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, userID primitive.ObjectID, q ListQuery) ([]Task, int64, error)
	Overdue(ctx context.Context, userID primitive.ObjectID) ([]Task, error)
	DueToday(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]Task, error)
}

type Service struct {
	repo     Store
	projects ProjectDirectory
	xp       *gamification.Service
	hub      *realtime.Hub
	notifier *notifications.Service
	log      *logger.Logger
}

func NewService(repo Store, projects ProjectDirectory, xp *gamification.Service, hub *realtime.Hub, notifier *notifications.Service, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		xp:       xp,
		hub:      hub,
		notifier: notifier,
		log:      log,
	}
}

// Create validates and persists a new task, awards creation XP and
// notifies project subscribers.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, req *CreateTaskRequest) (*TaskMutationResponse, error) {
	now := time.Now()
	if err := ValidateCreate(req, now); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	projectID, err := primitive.ObjectIDFromHex(req.Project)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", apperrors.ErrValidation)
	}

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("project %s: %w", req.Project, apperrors.ErrNotFound)
	}

	member, err := s.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("not a member of project %s: %w", req.Project, apperrors.ErrForbidden)
	}

	task := &Task{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		EstimatedTime: req.EstimatedTime,
		Project:       projectID,
		CreatedBy:     userID,
		Tags:          normalizeTags(req.Tags),
		Subtasks:      req.Subtasks,
		Recurrence:    req.Recurrence,
		Reminders:     req.Reminders,
	}
	if task.Status == "" {
		task.Status = StatusTodo
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if req.Order != nil {
		task.Order = *req.Order
	}

	if req.AssignedTo != nil {
		assigneeID, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee ID: %w", apperrors.ErrValidation)
		}
		task.AssignedTo = &assigneeID
	}

	for _, dep := range req.Dependencies {
		depID, err := primitive.ObjectIDFromHex(dep)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency ID: %w", apperrors.ErrValidation)
		}
		task.Dependencies = append(task.Dependencies, depID)
	}

	NormalizeNew(task, now)

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.refreshProjectStats(ctx, task.Project)

	resp := &TaskMutationResponse{Task: task}
	if award, err := s.xp.AwardCreation(ctx, userID); err != nil {
		s.log.Warn("tasks: creation XP award failed for user %s: %v", userID.Hex(), err)
	} else {
		resp.XPGained = award.XPGained
		resp.LevelUp = award.LevelUp
	}

	if task.AssignedTo != nil && s.notifier != nil {
		s.notifier.Notify(ctx, *task.AssignedTo, userID, notifications.TypeTaskAssigned,
			fmt.Sprintf("You were assigned the task %q", task.Title), &task.ID, &task.Project)
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventTaskCreated,
		ProjectID: task.Project.Hex(),
		UserID:    userID.Hex(),
		Payload:   task,
	})

	return resp, nil
}

// Get returns a task the user can see
func (s *Service) Get(ctx context.Context, userID primitive.ObjectID, id string) (*Task, error) {
	task, err := s.loadVisible(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the user's tasks with filters and pagination
func (s *Service) List(ctx context.Context, userID primitive.ObjectID, q ListQuery) ([]Task, int64, error) {
	return s.repo.List(ctx, userID, q)
}

// Update applies a partial mutation through the lifecycle rules, then
// handles the fallout: XP on completion, recurrence spawning, project
// stats and events.
func (s *Service) Update(ctx context.Context, userID primitive.ObjectID, id string, req *UpdateTaskRequest) (*TaskMutationResponse, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	task, err := s.loadEditable(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var newAssignee *primitive.ObjectID
	if req.AssignedTo != nil {
		assigneeID, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee ID: %w", apperrors.ErrValidation)
		}
		if task.AssignedTo == nil || *task.AssignedTo != assigneeID {
			newAssignee = &assigneeID
		}
		task.AssignedTo = &assigneeID
	}
	if req.Dependencies != nil {
		deps := make([]primitive.ObjectID, 0, len(req.Dependencies))
		for _, dep := range req.Dependencies {
			depID, err := primitive.ObjectIDFromHex(dep)
			if err != nil {
				return nil, fmt.Errorf("invalid dependency ID: %w", apperrors.ErrValidation)
			}
			deps = append(deps, depID)
		}
		task.Dependencies = deps
	}

	now := time.Now()
	result := ApplyMutation(task, *req, now)

	if err := s.repo.Replace(ctx, task); err != nil {
		return nil, err
	}

	resp := &TaskMutationResponse{Task: task}

	if result.Transition == TransitionIntoCompleted {
		if award, err := s.xp.AwardCompletion(ctx, userID, result.XPEligiblePriority); err != nil {
			s.log.Warn("tasks: completion XP award failed for user %s: %v", userID.Hex(), err)
		} else {
			resp.XPGained = award.XPGained
			resp.LevelUp = award.LevelUp
		}

		if next := SpawnNextOccurrence(task, now); next != nil {
			if err := s.repo.Create(ctx, next); err != nil {
				s.log.Error("tasks: failed to spawn recurring task from %s: %v", task.ID.Hex(), err)
			} else {
				s.hub.Publish(realtime.Event{
					Type:      realtime.EventTaskCreated,
					ProjectID: next.Project.Hex(),
					UserID:    userID.Hex(),
					Payload:   next,
				})
			}
		}
	}

	if newAssignee != nil && s.notifier != nil {
		s.notifier.Notify(ctx, *newAssignee, userID, notifications.TypeTaskAssigned,
			fmt.Sprintf("You were assigned the task %q", task.Title), &task.ID, &task.Project)
	}

	s.refreshProjectStats(ctx, task.Project)

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventTaskUpdated,
		ProjectID: task.Project.Hex(),
		UserID:    userID.Hex(),
		Payload:   task,
	})

	return resp, nil
}

// Delete removes a task. Only the creator may delete.
func (s *Service) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	task, err := s.loadVisible(ctx, userID, id)
	if err != nil {
		return err
	}
	if task.CreatedBy != userID {
		return fmt.Errorf("only the creator can delete a task: %w", apperrors.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return err
	}

	s.refreshProjectStats(ctx, task.Project)

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventTaskDeleted,
		ProjectID: task.Project.Hex(),
		UserID:    userID.Hex(),
		Payload:   map[string]string{"taskId": task.ID.Hex()},
	})

	return nil
}

// AddComment appends a comment to the task's thread
func (s *Service) AddComment(ctx context.Context, userID primitive.ObjectID, id string, text string) (*Task, error) {
	if err := ValidateComment(text); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	task, err := s.loadVisible(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Comments = append(task.Comments, Comment{
		User:      userID,
		Text:      text,
		CreatedAt: now,
	})
	task.UpdatedAt = now

	if err := s.repo.Replace(ctx, task); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		recipients := []primitive.ObjectID{task.CreatedBy}
		if task.AssignedTo != nil {
			recipients = append(recipients, *task.AssignedTo)
		}
		s.notifier.NotifyMany(ctx, recipients, userID, notifications.TypeCommentAdded,
			fmt.Sprintf("New comment on the task %q", task.Title), &task.ID, &task.Project)
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventCommentAdded,
		ProjectID: task.Project.Hex(),
		UserID:    userID.Hex(),
		Payload:   task,
	})

	return task, nil
}

// Overdue returns the user's overdue tasks
func (s *Service) Overdue(ctx context.Context, userID primitive.ObjectID) ([]Task, error) {
	return s.repo.Overdue(ctx, userID)
}

// DueToday returns the user's tasks due today
func (s *Service) DueToday(ctx context.Context, userID primitive.ObjectID) ([]Task, error) {
	return s.repo.DueToday(ctx, userID, time.Now())
}

// BulkUpdate applies one update to many tasks. Tasks the user cannot
// touch are skipped; the count of updated tasks is returned.
func (s *Service) BulkUpdate(ctx context.Context, userID primitive.ObjectID, req *BulkUpdateRequest) (int, error) {
	if err := ValidateUpdate(&req.UpdateData); err != nil {
		return 0, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	updated := 0
	for _, id := range req.TaskIDs {
		upd := req.UpdateData
		if _, err := s.Update(ctx, userID, id, &upd); err != nil {
			s.log.Warn("tasks: bulk update skipped task %s: %v", id, err)
			continue
		}
		updated++
	}
	return updated, nil
}

// loadVisible fetches a task and checks the caller can see it: creator,
// assignee, or project member.
func (s *Service) loadVisible(ctx context.Context, userID primitive.ObjectID, id string) (*Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
	}

	if task.CreatedBy == userID {
		return task, nil
	}
	if task.AssignedTo != nil && *task.AssignedTo == userID {
		return task, nil
	}

	member, err := s.projects.IsMember(ctx, task.Project, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("no access to task %s: %w", id, apperrors.ErrForbidden)
	}
	return task, nil
}

// loadEditable is stricter: only the creator or assignee may mutate a
// task.
func (s *Service) loadEditable(ctx context.Context, userID primitive.ObjectID, id string) (*Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", id, apperrors.ErrNotFound)
	}
	if task.CreatedBy != userID && (task.AssignedTo == nil || *task.AssignedTo != userID) {
		return nil, fmt.Errorf("only the creator or assignee can edit task %s: %w", id, apperrors.ErrForbidden)
	}
	return task, nil
}

// refreshProjectStats recomputes project counters best effort; a
// failure is logged and never fails the task operation.
func (s *Service) refreshProjectStats(ctx context.Context, projectID primitive.ObjectID) {
	if err := s.projects.RecomputeStats(ctx, projectID); err != nil {
		s.log.Warn("tasks: project %s stats refresh failed: %v", projectID.Hex(), err)
	}
}
