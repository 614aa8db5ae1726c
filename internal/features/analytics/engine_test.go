package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/projects"
	"github.com/taskhive/taskhive/internal/features/tasks"
)

var (
	testNow    = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	testCutoff = testNow.AddDate(0, 0, -30)
)

func makeTask(userID primitive.ObjectID, status string, createdDaysAgo int) tasks.Task {
	return tasks.Task{
		Status:    status,
		Priority:  tasks.PriorityMedium,
		CreatedBy: userID,
		CreatedAt: testNow.AddDate(0, 0, -createdDaysAgo),
	}
}

func TestComputeTaskStatsCompletionRate(t *testing.T) {
	userID := primitive.NewObjectID()

	var list []tasks.Task
	for i := 0; i < 6; i++ {
		list = append(list, makeTask(userID, tasks.StatusCompleted, 5))
	}
	for i := 0; i < 2; i++ {
		list = append(list, makeTask(userID, tasks.StatusInProgress, 5))
	}
	for i := 0; i < 2; i++ {
		list = append(list, makeTask(userID, tasks.StatusTodo, 5))
	}

	stats := ComputeTaskStats(list, userID, testCutoff)

	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 6, stats.Completed)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, 2, stats.Todo)
	assert.Equal(t, 60, stats.CompletionRate)
}

func TestComputeTaskStatsExcludesOutOfWindowAndOtherUsers(t *testing.T) {
	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	list := []tasks.Task{
		makeTask(userID, tasks.StatusCompleted, 5),
		makeTask(userID, tasks.StatusCompleted, 60), // too old
		makeTask(other, tasks.StatusCompleted, 5),   // not ours
	}

	stats := ComputeTaskStats(list, userID, testCutoff)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 100, stats.CompletionRate)
}

func TestComputeTaskStatsEmpty(t *testing.T) {
	stats := ComputeTaskStats(nil, primitive.NewObjectID(), testCutoff)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.CompletionRate)
}

func TestComputeCompletionTrend(t *testing.T) {
	userID := primitive.NewObjectID()
	day1 := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	day1later := time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	old := testCutoff.AddDate(0, 0, -1)

	list := []tasks.Task{
		{CreatedBy: userID, Status: tasks.StatusCompleted, CompletedAt: &day2},
		{CreatedBy: userID, Status: tasks.StatusCompleted, CompletedAt: &day1},
		{CreatedBy: userID, Status: tasks.StatusCompleted, CompletedAt: &day1later},
		{CreatedBy: userID, Status: tasks.StatusCompleted, CompletedAt: &old},
		{CreatedBy: userID, Status: tasks.StatusTodo},
		{CreatedBy: primitive.NewObjectID(), Status: tasks.StatusCompleted, CompletedAt: &day1},
	}

	trend := ComputeCompletionTrend(list, userID, testCutoff)

	require.Len(t, trend, 2)
	assert.Equal(t, TrendPoint{Date: "2024-06-10", Count: 2}, trend[0])
	assert.Equal(t, TrendPoint{Date: "2024-06-12", Count: 1}, trend[1])
}

func TestComputePriorityDistribution(t *testing.T) {
	userID := primitive.NewObjectID()
	list := []tasks.Task{
		{CreatedBy: userID, Priority: tasks.PriorityUrgent, CreatedAt: testNow},
		{CreatedBy: userID, Priority: tasks.PriorityUrgent, CreatedAt: testNow},
		{CreatedBy: userID, Priority: tasks.PriorityLow, CreatedAt: testNow},
		{CreatedBy: userID, Priority: tasks.PriorityLow, CreatedAt: testCutoff.AddDate(0, 0, -1)},
		{CreatedBy: primitive.NewObjectID(), Priority: tasks.PriorityHigh, CreatedAt: testNow},
	}

	dist := ComputePriorityDistribution(list, userID, testCutoff)

	assert.Equal(t, 2, dist[tasks.PriorityUrgent])
	assert.Equal(t, 1, dist[tasks.PriorityLow])
	assert.Equal(t, 0, dist[tasks.PriorityHigh])
}

func TestComputeProjectStats(t *testing.T) {
	userID := primitive.NewObjectID()
	inWindow := projects.Project{ID: primitive.NewObjectID(), Name: "Fresh", Owner: userID, CreatedAt: testNow.AddDate(0, 0, -3)}
	tooOld := projects.Project{ID: primitive.NewObjectID(), Name: "Old", Owner: userID, CreatedAt: testNow.AddDate(0, -6, 0)}

	// Task counts are not window-filtered, only the project is.
	projectTasks := map[primitive.ObjectID][]tasks.Task{
		inWindow.ID: {
			{Status: tasks.StatusCompleted, CreatedAt: testNow.AddDate(0, -6, 0)},
			{Status: tasks.StatusTodo, CreatedAt: testNow},
		},
	}

	stats := ComputeProjectStats([]projects.Project{inWindow, tooOld}, projectTasks, testCutoff)

	require.Len(t, stats, 1)
	assert.Equal(t, "Fresh", stats[0].ProjectName)
	assert.Equal(t, 2, stats[0].TotalTasks)
	assert.Equal(t, 1, stats[0].CompletedTasks)
	assert.Equal(t, 50, stats[0].CompletionRate)
}

func TestComputeTimeStats(t *testing.T) {
	userID := primitive.NewObjectID()
	list := []tasks.Task{
		{CreatedBy: userID, CreatedAt: testNow, EstimatedTime: 60, ActualTime: 90},
		{CreatedBy: userID, CreatedAt: testNow, EstimatedTime: 40, ActualTime: 30},
		{CreatedBy: userID, CreatedAt: testNow, EstimatedTime: 100}, // no actual, skipped
		{CreatedBy: primitive.NewObjectID(), CreatedAt: testNow, EstimatedTime: 10, ActualTime: 10},
	}

	stats := ComputeTimeStats(list, userID, testCutoff)

	assert.Equal(t, 100, stats.TotalEstimated)
	assert.Equal(t, 120, stats.TotalActual)
	assert.Equal(t, 50, stats.AverageEstimated)
	assert.Equal(t, 60, stats.AverageActual)
	assert.Equal(t, 120, stats.TimeAccuracy)
}

func TestComputeTimeStatsNoQualifyingTasks(t *testing.T) {
	userID := primitive.NewObjectID()
	stats := ComputeTimeStats([]tasks.Task{{CreatedBy: userID, CreatedAt: testNow, EstimatedTime: 60}}, userID, testCutoff)
	assert.Equal(t, TimeStats{}, stats)
}

func TestCountOverdue(t *testing.T) {
	userID := primitive.NewObjectID()
	past := testNow.AddDate(0, 0, -2)
	future := testNow.AddDate(0, 0, 2)

	list := []tasks.Task{
		{CreatedBy: userID, Status: tasks.StatusTodo, DueDate: &past},
		{CreatedBy: userID, Status: tasks.StatusCompleted, DueDate: &past},
		{CreatedBy: userID, Status: tasks.StatusTodo, DueDate: &future},
		{CreatedBy: primitive.NewObjectID(), Status: tasks.StatusTodo, DueDate: &past},
	}

	assert.Equal(t, 1, CountOverdue(list, userID, testNow))
}

func TestComputeTeamReport(t *testing.T) {
	owner := primitive.NewObjectID()
	collab := primitive.NewObjectID()

	project := &projects.Project{
		ID:    primitive.NewObjectID(),
		Name:  "Launch",
		Owner: owner,
		Collaborators: []projects.Collaborator{
			{User: collab, Role: projects.RoleEditor},
		},
	}

	list := []tasks.Task{
		{CreatedBy: owner, Status: tasks.StatusCompleted, CreatedAt: testNow},
		{CreatedBy: owner, Status: tasks.StatusTodo, CreatedAt: testNow},
		{CreatedBy: owner, AssignedTo: &collab, Status: tasks.StatusCompleted, CreatedAt: testNow},
		{CreatedBy: collab, Status: tasks.StatusTodo, CreatedAt: testCutoff.AddDate(0, 0, -1)}, // out of window
	}

	names := map[primitive.ObjectID]string{owner: "Ada", collab: "Grace"}
	report := ComputeTeamReport(project, list, names, 30, testCutoff)

	require.Len(t, report.Members, 2)

	ownerStat := report.Members[0]
	assert.Equal(t, "owner", ownerStat.Role)
	assert.Equal(t, "Ada", ownerStat.UserName)
	assert.Equal(t, 3, ownerStat.TotalTasks)
	assert.Equal(t, 2, ownerStat.CompletedTasks)
	assert.Equal(t, 67, ownerStat.CompletionRate)

	collabStat := report.Members[1]
	assert.Equal(t, "Grace", collabStat.UserName)
	assert.Equal(t, 1, collabStat.TotalTasks)
	assert.Equal(t, 1, collabStat.AssignedTasks)
	assert.Equal(t, 1, collabStat.CompletedTasks)
	assert.Equal(t, 100, collabStat.CompletionRate)
}

func TestComputeSystemReport(t *testing.T) {
	counts := SystemCounts{
		TotalUsers: 100, NewUsers: 10, ActiveUsers: 40,
		TotalTasks: 500, CompletedTasks: 2,
		TotalProjects: 30, NewProjects: 5, ActiveProjects: 12,
	}

	list := []tasks.Task{
		{Status: tasks.StatusCompleted, CreatedAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
		{Status: tasks.StatusTodo, CreatedAt: time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)},
		{Status: tasks.StatusCompleted, CreatedAt: time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)},
		{Status: tasks.StatusTodo, CreatedAt: time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)},
	}

	report := ComputeSystemReport(counts, list, 30)

	assert.Equal(t, 4, report.NewTasks)
	assert.Equal(t, int64(2), report.CompletedTasks)
	assert.Equal(t, int64(500), report.TotalTasks)
	assert.Equal(t, int64(30), report.TotalProjects)
	// Rate is completed over new tasks, not over all tasks ever.
	assert.Equal(t, 50, report.CompletionRate)
	assert.Equal(t, int64(100), report.TotalUsers)

	require.Len(t, report.DailyActivity, 2)
	assert.Equal(t, TrendPoint{Date: "2024-06-10", Count: 2}, report.DailyActivity[0])
	assert.Equal(t, TrendPoint{Date: "2024-06-11", Count: 2}, report.DailyActivity[1])
}
