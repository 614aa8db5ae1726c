package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/projects"
	"github.com/taskhive/taskhive/internal/features/tasks"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

type fakeTaskSource struct {
	byUser    []tasks.Task
	byProject map[primitive.ObjectID][]tasks.Task
	since     []tasks.Task
	total     int64
	completed int64
}

func (f *fakeTaskSource) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]tasks.Task, error) {
	return f.byUser, nil
}

func (f *fakeTaskSource) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]tasks.Task, error) {
	return f.byProject[projectID], nil
}

func (f *fakeTaskSource) ListSince(ctx context.Context, since time.Time) ([]tasks.Task, error) {
	return f.since, nil
}

func (f *fakeTaskSource) CountAll(ctx context.Context) (int64, error) {
	return f.total, nil
}

func (f *fakeTaskSource) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	return f.completed, nil
}

type fakeProjectSource struct {
	projects []projects.Project
}

func (f *fakeProjectSource) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]projects.Project, error) {
	return f.projects, nil
}

func (f *fakeProjectSource) GetByID(ctx context.Context, id primitive.ObjectID) (*projects.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			return &f.projects[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProjectSource) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.projects)), nil
}

func (f *fakeProjectSource) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(f.projects)), nil
}

func (f *fakeProjectSource) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(f.projects)), nil
}

type fakeUserSource struct {
	streak int
	admin  bool
	names  map[primitive.ObjectID]string
}

func (f *fakeUserSource) CountUsers(ctx context.Context) (int64, error) { return 10, nil }
func (f *fakeUserSource) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return 2, nil
}
func (f *fakeUserSource) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return 5, nil
}
func (f *fakeUserSource) GetStreak(ctx context.Context, userID primitive.ObjectID) (int, error) {
	return f.streak, nil
}
func (f *fakeUserSource) IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	return f.admin, nil
}
func (f *fakeUserSource) NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}

func newTestService(ts *fakeTaskSource, ps *fakeProjectSource, us *fakeUserSource) *Service {
	return NewService(ts, ps, us, logger.New(logger.ERROR))
}

func TestUserReport(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()

	var list []tasks.Task
	for i := 0; i < 6; i++ {
		list = append(list, tasks.Task{CreatedBy: userID, Status: tasks.StatusCompleted, Priority: tasks.PriorityMedium, CreatedAt: now.AddDate(0, 0, -1)})
	}
	for i := 0; i < 4; i++ {
		list = append(list, tasks.Task{CreatedBy: userID, Status: tasks.StatusTodo, Priority: tasks.PriorityLow, CreatedAt: now.AddDate(0, 0, -1)})
	}

	svc := newTestService(&fakeTaskSource{byUser: list}, &fakeProjectSource{}, &fakeUserSource{})

	report, err := svc.UserReport(context.Background(), userID, 30)
	require.NoError(t, err)

	assert.Equal(t, 30, report.Period)
	assert.Equal(t, 10, report.TaskStats.Total)
	assert.Equal(t, 60, report.TaskStats.CompletionRate)
	assert.Equal(t, 6, report.PriorityDistribution[tasks.PriorityMedium])
	assert.Empty(t, report.ProjectStats)
}

func TestTeamReportUnknownProject(t *testing.T) {
	svc := newTestService(&fakeTaskSource{}, &fakeProjectSource{}, &fakeUserSource{})

	_, err := svc.Team(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex(), 30)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTeamReportNonMember(t *testing.T) {
	project := projects.Project{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID()}
	svc := newTestService(&fakeTaskSource{}, &fakeProjectSource{projects: []projects.Project{project}}, &fakeUserSource{})

	_, err := svc.Team(context.Background(), primitive.NewObjectID(), project.ID.Hex(), 30)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSystemReportRequiresAdmin(t *testing.T) {
	svc := newTestService(&fakeTaskSource{}, &fakeProjectSource{}, &fakeUserSource{admin: false})

	_, err := svc.System(context.Background(), primitive.NewObjectID(), 30)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSystemReportForAdmin(t *testing.T) {
	now := time.Now()
	ts := &fakeTaskSource{
		since: []tasks.Task{
			{Status: tasks.StatusCompleted, CreatedAt: now.AddDate(0, 0, -1)},
			{Status: tasks.StatusTodo, CreatedAt: now.AddDate(0, 0, -1)},
		},
		total:     40,
		completed: 1,
	}
	svc := newTestService(ts, &fakeProjectSource{}, &fakeUserSource{admin: true})

	report, err := svc.System(context.Background(), primitive.NewObjectID(), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(10), report.TotalUsers)
	assert.Equal(t, 2, report.NewTasks)
	assert.Equal(t, int64(40), report.TotalTasks)
	assert.Equal(t, int64(1), report.CompletedTasks)
	assert.Equal(t, 50, report.CompletionRate)
}

// Tasks finished inside the window count as completed even when they
// were created before it, so the completed count can exceed what a scan
// of the window's new tasks would find.
func TestSystemReportCountsBackloggedCompletions(t *testing.T) {
	now := time.Now()
	ts := &fakeTaskSource{
		since: []tasks.Task{
			{Status: tasks.StatusTodo, CreatedAt: now.AddDate(0, 0, -2)},
			{Status: tasks.StatusTodo, CreatedAt: now.AddDate(0, 0, -1)},
		},
		total:     100,
		completed: 6,
	}
	svc := newTestService(ts, &fakeProjectSource{}, &fakeUserSource{admin: true})

	report, err := svc.System(context.Background(), primitive.NewObjectID(), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(6), report.CompletedTasks)
	assert.Equal(t, int64(100), report.TotalTasks)
	assert.Equal(t, int64(0), report.TotalProjects)
}

func TestTeamReportResolvesMemberNames(t *testing.T) {
	owner := primitive.NewObjectID()
	collab := primitive.NewObjectID()
	project := projects.Project{
		ID:    primitive.NewObjectID(),
		Owner: owner,
		Collaborators: []projects.Collaborator{
			{User: collab, Role: "editor"},
		},
	}
	us := &fakeUserSource{names: map[primitive.ObjectID]string{
		owner:  "Ada",
		collab: "Grace",
	}}
	svc := newTestService(&fakeTaskSource{}, &fakeProjectSource{projects: []projects.Project{project}}, us)

	report, err := svc.Team(context.Background(), owner, project.ID.Hex(), 30)
	require.NoError(t, err)

	require.Len(t, report.Members, 2)
	assert.Equal(t, "Ada", report.Members[0].UserName)
	assert.Equal(t, "owner", report.Members[0].Role)
	assert.Equal(t, "Grace", report.Members[1].UserName)
}

func TestInsightsUsesStreak(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := newTestService(&fakeTaskSource{}, &fakeProjectSource{}, &fakeUserSource{streak: 12})

	insights, err := svc.Insights(context.Background(), userID, 30)
	require.NoError(t, err)

	require.NotNil(t, findInsight(insights, "Great Streak!"))
}
