// Package analytics computes productivity reports over tasks, projects
// and users. Aggregation happens in memory over plain query results,
// which keeps every computation unit-testable without a database.
package analytics

import (
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/projects"
	"github.com/taskhive/taskhive/internal/features/tasks"
)

// TaskStats counts a user's in-window tasks by status
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Todo           int `json:"todo"`
	Cancelled      int `json:"cancelled"`
	CompletionRate int `json:"completionRate"` // percent
}

// TrendPoint is one day of the completion trend
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// ProjectStat summarises one project's task counts
type ProjectStat struct {
	ProjectID      string `json:"projectId"`
	ProjectName    string `json:"projectName"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	CompletionRate int    `json:"completionRate"`
}

// TimeStats compares estimated against actual minutes over tasks that
// carry both.
type TimeStats struct {
	TotalEstimated   int `json:"totalEstimated"`
	TotalActual      int `json:"totalActual"`
	AverageEstimated int `json:"averageEstimated"`
	AverageActual    int `json:"averageActual"`
	TimeAccuracy     int `json:"timeAccuracy"` // percent, actual vs estimated
}

// Report is the combined per-user analytics payload
type Report struct {
	Period               int            `json:"period"` // days
	TaskStats            TaskStats      `json:"taskStats"`
	CompletionTrend      []TrendPoint   `json:"completionTrend"`
	PriorityDistribution map[string]int `json:"priorityDistribution"`
	ProjectStats         []ProjectStat  `json:"projectStats"`
	TimeStats            TimeStats      `json:"timeStats"`
}

// ComputeTaskStats groups tasks the user created in-window by status.
// A user with 10 in-window tasks, 6 completed, yields completionRate 60.
func ComputeTaskStats(userTasks []tasks.Task, userID primitive.ObjectID, cutoff time.Time) TaskStats {
	var stats TaskStats
	for _, t := range userTasks {
		if t.CreatedBy != userID || t.CreatedAt.Before(cutoff) {
			continue
		}
		stats.Total++
		switch t.Status {
		case tasks.StatusCompleted:
			stats.Completed++
		case tasks.StatusInProgress:
			stats.InProgress++
		case tasks.StatusTodo:
			stats.Todo++
		case tasks.StatusCancelled:
			stats.Cancelled++
		}
	}
	stats.CompletionRate = percent(stats.Completed, stats.Total)
	return stats
}

// ComputeCompletionTrend counts tasks the user created and completed
// in-window, grouped by calendar day, ascending.
func ComputeCompletionTrend(userTasks []tasks.Task, userID primitive.ObjectID, cutoff time.Time) []TrendPoint {
	byDay := make(map[string]int)
	for _, t := range userTasks {
		if t.CreatedBy != userID || t.CompletedAt == nil || t.CompletedAt.Before(cutoff) {
			continue
		}
		byDay[t.CompletedAt.Format("2006-01-02")]++
	}

	trend := make([]TrendPoint, 0, len(byDay))
	for day, count := range byDay {
		trend = append(trend, TrendPoint{Date: day, Count: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

// ComputePriorityDistribution counts tasks the user created in-window
// by priority.
func ComputePriorityDistribution(userTasks []tasks.Task, userID primitive.ObjectID, cutoff time.Time) map[string]int {
	dist := map[string]int{
		tasks.PriorityLow:    0,
		tasks.PriorityMedium: 0,
		tasks.PriorityHigh:   0,
		tasks.PriorityUrgent: 0,
	}
	for _, t := range userTasks {
		if t.CreatedBy != userID || t.CreatedAt.Before(cutoff) {
			continue
		}
		dist[t.Priority]++
	}
	return dist
}

// ComputeProjectStats summarises in-window-created projects the user
// belongs to. Task counts cover all tasks under each project; only the
// project itself is window-filtered.
func ComputeProjectStats(userProjects []projects.Project, projectTasks map[primitive.ObjectID][]tasks.Task, cutoff time.Time) []ProjectStat {
	stats := make([]ProjectStat, 0, len(userProjects))
	for _, p := range userProjects {
		if p.CreatedAt.Before(cutoff) {
			continue
		}

		total, completed := 0, 0
		for _, t := range projectTasks[p.ID] {
			total++
			if t.Status == tasks.StatusCompleted {
				completed++
			}
		}

		stats = append(stats, ProjectStat{
			ProjectID:      p.ID.Hex(),
			ProjectName:    p.Name,
			TotalTasks:     total,
			CompletedTasks: completed,
			CompletionRate: percent(completed, total),
		})
	}
	return stats
}

// ComputeTimeStats aggregates estimate accuracy over in-window tasks
// the user created that carry both estimated and actual time. Zeroed
// when nothing qualifies.
func ComputeTimeStats(userTasks []tasks.Task, userID primitive.ObjectID, cutoff time.Time) TimeStats {
	var stats TimeStats
	count := 0
	for _, t := range userTasks {
		if t.CreatedBy != userID || t.CreatedAt.Before(cutoff) || t.EstimatedTime <= 0 || t.ActualTime <= 0 {
			continue
		}
		stats.TotalEstimated += t.EstimatedTime
		stats.TotalActual += t.ActualTime
		count++
	}
	if count == 0 {
		return stats
	}

	stats.AverageEstimated = int(math.Round(float64(stats.TotalEstimated) / float64(count)))
	stats.AverageActual = int(math.Round(float64(stats.TotalActual) / float64(count)))
	stats.TimeAccuracy = percent(stats.TotalActual, stats.TotalEstimated)
	return stats
}

// CountOverdue counts the user's live overdue tasks: past due, not
// completed, created by the user. Not window-filtered.
func CountOverdue(userTasks []tasks.Task, userID primitive.ObjectID, now time.Time) int {
	count := 0
	for _, t := range userTasks {
		if t.CreatedBy == userID && t.IsOverdue(now) {
			count++
		}
	}
	return count
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
