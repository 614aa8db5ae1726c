package projects

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/notifications"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/realtime"
	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

// TaskCounter is the slice of the tasks feature the stats recompute
// needs. The tasks repository satisfies it; routes wiring closes the
// loop.
type TaskCounter interface {
	CountsByProject(ctx context.Context, projectID primitive.ObjectID) (total, completed, overdue int64, err error)
}

type Service struct {
	repo     *Repository
	tasks    TaskCounter
	hub      *realtime.Hub
	notifier *notifications.Service
	log      *logger.Logger
}

func NewService(repo *Repository, hub *realtime.Hub, notifier *notifications.Service, log *logger.Logger) *Service {
	return &Service{repo: repo, hub: hub, notifier: notifier, log: log}
}

// SetTaskCounter wires the tasks dependency after construction; the
// tasks feature itself depends on this service, so one side has to be
// attached late.
func (s *Service) SetTaskCounter(tasks TaskCounter) {
	s.tasks = tasks
}

// Create validates and persists a new project owned by the caller
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, req *CreateProjectRequest) (*Project, error) {
	if err := ValidateCreate(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	project := &Project{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Owner:       userID,
		Settings:    DefaultSettings(),
	}
	if project.Color == "" {
		project.Color = "#4F46E5"
	}
	if req.Settings != nil {
		project.Settings = *req.Settings
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns the caller's projects
func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]Project, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Get returns a project the caller is a member of
func (s *Service) Get(ctx context.Context, userID primitive.ObjectID, id string) (*Project, error) {
	project, err := s.loadMember(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a partial update. Owner and admin collaborators may
// edit; everyone else gets forbidden.
func (s *Service) Update(ctx context.Context, userID primitive.ObjectID, id string, req *UpdateProjectRequest) (*Project, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	project, err := s.loadMember(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(project, userID) {
		return nil, fmt.Errorf("no edit rights on project %s: %w", id, apperrors.ErrForbidden)
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Color != nil {
		update["color"] = *req.Color
	}
	if req.Settings != nil {
		update["settings"] = *req.Settings
	}
	if req.IsArchived != nil {
		update["isArchived"] = *req.IsArchived
	}

	if len(update) > 0 {
		if err := s.repo.Update(ctx, project.ID, update); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventProjectUpdated,
		ProjectID: project.ID.Hex(),
		UserID:    userID.Hex(),
		Payload:   updated,
	})

	return updated, nil
}

// Delete removes a project. Owner only.
func (s *Service) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	project, err := s.loadMember(ctx, userID, id)
	if err != nil {
		return err
	}
	if project.Owner != userID {
		return fmt.Errorf("only the owner can delete a project: %w", apperrors.ErrForbidden)
	}
	return s.repo.Delete(ctx, project.ID)
}

// AddCollaborator adds a user with a role. Owner and admins only.
func (s *Service) AddCollaborator(ctx context.Context, userID primitive.ObjectID, id string, req *AddCollaboratorRequest) (*Project, error) {
	role := req.Role
	if role == "" {
		role = RoleEditor
	}
	if err := ValidateRole(role); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	project, err := s.loadMember(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(project, userID) {
		return nil, fmt.Errorf("no edit rights on project %s: %w", id, apperrors.ErrForbidden)
	}

	collabID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", apperrors.ErrValidation)
	}
	if collabID == project.Owner {
		return nil, fmt.Errorf("owner is already a member: %w", apperrors.ErrDuplicate)
	}

	err = s.repo.AddCollaborator(ctx, project.ID, Collaborator{
		User:     collabID,
		Role:     role,
		JoinedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, collabID, userID, notifications.TypeCollaboratorAdded,
			fmt.Sprintf("You were added to the project %q", project.Name), nil, &project.ID)
	}

	s.hub.Publish(realtime.Event{
		Type:      realtime.EventProjectUpdated,
		ProjectID: project.ID.Hex(),
		UserID:    userID.Hex(),
		Payload:   updated,
	})

	return updated, nil
}

// RemoveCollaborator drops a user from the project. Owner and admins
// may remove anyone; collaborators may remove themselves.
func (s *Service) RemoveCollaborator(ctx context.Context, userID primitive.ObjectID, id, collaboratorID string) (*Project, error) {
	project, err := s.loadMember(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	collabID, err := primitive.ObjectIDFromHex(collaboratorID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", apperrors.ErrValidation)
	}

	if collabID != userID && !canEdit(project, userID) {
		return nil, fmt.Errorf("no edit rights on project %s: %w", id, apperrors.ErrForbidden)
	}

	if err := s.repo.RemoveCollaborator(ctx, project.ID, collabID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, project.ID)
}

// Exists reports whether the project exists
func (s *Service) Exists(ctx context.Context, projectID primitive.ObjectID) (bool, error) {
	return s.repo.Exists(ctx, projectID)
}

// IsMember reports whether the user can see the project
func (s *Service) IsMember(ctx context.Context, projectID, userID primitive.ObjectID) (bool, error) {
	return s.repo.IsMember(ctx, projectID, userID)
}

// RecomputeStats refreshes the project's counter snapshot from live
// task counts.
func (s *Service) RecomputeStats(ctx context.Context, projectID primitive.ObjectID) error {
	if s.tasks == nil {
		return fmt.Errorf("task counter not wired: %w", apperrors.ErrInternal)
	}

	total, completed, overdue, err := s.tasks.CountsByProject(ctx, projectID)
	if err != nil {
		return err
	}
	return s.repo.SaveStats(ctx, projectID, ComputeStats(total, completed, overdue))
}

func (s *Service) loadMember(ctx context.Context, userID primitive.ObjectID, id string) (*Project, error) {
	projectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", apperrors.ErrValidation)
	}

	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}

	if !isMemberOf(project, userID) && !project.Settings.IsPublic {
		return nil, fmt.Errorf("no access to project %s: %w", id, apperrors.ErrForbidden)
	}
	return project, nil
}

func isMemberOf(p *Project, userID primitive.ObjectID) bool {
	if p.Owner == userID {
		return true
	}
	for _, c := range p.Collaborators {
		if c.User == userID {
			return true
		}
	}
	return false
}

// canEdit reports whether the user may mutate the project: the owner
// or an admin collaborator.
func canEdit(p *Project, userID primitive.ObjectID) bool {
	if p.Owner == userID {
		return true
	}
	for _, c := range p.Collaborators {
		if c.User == userID && c.Role == RoleAdmin {
			return true
		}
	}
	return false
}
