package analytics

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/projects"
	"github.com/taskhive/taskhive/internal/features/tasks"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

// DefaultPeriodDays is the lookback window when the caller gives none
const DefaultPeriodDays = 30

// TaskSource reads task documents; the tasks repository satisfies it
type TaskSource interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]tasks.Task, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]tasks.Task, error)
	ListSince(ctx context.Context, since time.Time) ([]tasks.Task, error)
	CountAll(ctx context.Context) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
}

// ProjectSource reads project documents; the projects repository
// satisfies it.
type ProjectSource interface {
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]projects.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*projects.Project, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
}

// UserSource reads user counters and gamification state; the auth
// repository satisfies it.
type UserSource interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	GetStreak(ctx context.Context, userID primitive.ObjectID) (int, error)
	IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error)
	NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

type Service struct {
	tasks    TaskSource
	projects ProjectSource
	users    UserSource
	log      *logger.Logger
}

func NewService(tasks TaskSource, projects ProjectSource, users UserSource, log *logger.Logger) *Service {
	return &Service{tasks: tasks, projects: projects, users: users, log: log}
}

// UserReport computes the combined per-user analytics over the window
func (s *Service) UserReport(ctx context.Context, userID primitive.ObjectID, periodDays int) (*Report, error) {
	if periodDays < 1 {
		periodDays = DefaultPeriodDays
	}
	now := time.Now()
	cutoff := WindowCutoff(now, periodDays)

	userTasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userProjects, err := s.projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	projectTasks := make(map[primitive.ObjectID][]tasks.Task, len(userProjects))
	for _, p := range userProjects {
		if p.CreatedAt.Before(cutoff) {
			continue
		}
		list, err := s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		projectTasks[p.ID] = list
	}

	return &Report{
		Period:               periodDays,
		TaskStats:            ComputeTaskStats(userTasks, userID, cutoff),
		CompletionTrend:      ComputeCompletionTrend(userTasks, userID, cutoff),
		PriorityDistribution: ComputePriorityDistribution(userTasks, userID, cutoff),
		ProjectStats:         ComputeProjectStats(userProjects, projectTasks, cutoff),
		TimeStats:            ComputeTimeStats(userTasks, userID, cutoff),
	}, nil
}

// Insights derives productivity signals from the user's report plus
// live overdue counts and streak state.
func (s *Service) Insights(ctx context.Context, userID primitive.ObjectID, periodDays int) ([]Insight, error) {
	if periodDays < 1 {
		periodDays = DefaultPeriodDays
	}
	now := time.Now()
	cutoff := WindowCutoff(now, periodDays)

	userTasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.users.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := ComputeTaskStats(userTasks, userID, cutoff)
	timeStats := ComputeTimeStats(userTasks, userID, cutoff)
	overdue := CountOverdue(userTasks, userID, now)

	return ComputeInsights(stats, timeStats, overdue, streak), nil
}

// Team computes per-member contributions for a project the caller
// belongs to.
func (s *Service) Team(ctx context.Context, userID primitive.ObjectID, projectID string, periodDays int) (*TeamReport, error) {
	if periodDays < 1 {
		periodDays = DefaultPeriodDays
	}

	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", apperrors.ErrValidation)
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	if !memberOf(project, userID) {
		return nil, fmt.Errorf("no access to project %s: %w", projectID, apperrors.ErrForbidden)
	}

	projectTasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	memberIDs := []primitive.ObjectID{project.Owner}
	for _, c := range project.Collaborators {
		memberIDs = append(memberIDs, c.User)
	}
	names, err := s.users.NamesByID(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	cutoff := WindowCutoff(time.Now(), periodDays)
	report := ComputeTeamReport(project, projectTasks, names, periodDays, cutoff)
	return &report, nil
}

// System computes the platform-wide report. Admin callers only.
func (s *Service) System(ctx context.Context, userID primitive.ObjectID, periodDays int) (*SystemReport, error) {
	if periodDays < 1 {
		periodDays = DefaultPeriodDays
	}

	admin, err := s.users.IsAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, fmt.Errorf("system analytics require admin access: %w", apperrors.ErrForbidden)
	}

	cutoff := WindowCutoff(time.Now(), periodDays)

	var counts SystemCounts
	if counts.TotalUsers, err = s.users.CountUsers(ctx); err != nil {
		return nil, err
	}
	if counts.NewUsers, err = s.users.CountCreatedSince(ctx, cutoff); err != nil {
		return nil, err
	}
	if counts.ActiveUsers, err = s.users.CountActiveSince(ctx, cutoff); err != nil {
		return nil, err
	}
	if counts.TotalTasks, err = s.tasks.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.CompletedTasks, err = s.tasks.CountCompletedSince(ctx, cutoff); err != nil {
		return nil, err
	}
	if counts.TotalProjects, err = s.projects.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.NewProjects, err = s.projects.CountCreatedSince(ctx, cutoff); err != nil {
		return nil, err
	}
	if counts.ActiveProjects, err = s.projects.CountActiveSince(ctx, cutoff); err != nil {
		return nil, err
	}

	windowTasks, err := s.tasks.ListSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	report := ComputeSystemReport(counts, windowTasks, periodDays)
	return &report, nil
}

func memberOf(p *projects.Project, userID primitive.ObjectID) bool {
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
