package analytics

import (
	"sort"
	"time"

	"github.com/taskhive/taskhive/internal/features/tasks"
)

// SystemReport is the admin-scope platform overview
type SystemReport struct {
	Period         int          `json:"period"`
	TotalUsers     int64        `json:"totalUsers"`
	NewUsers       int64        `json:"newUsers"`
	ActiveUsers    int64        `json:"activeUsers"`
	TotalTasks     int64        `json:"totalTasks"`
	NewTasks       int          `json:"newTasks"`
	CompletedTasks int64        `json:"completedTasks"`
	CompletionRate int          `json:"completionRate"` // completed/new, not completed/total
	TotalProjects  int64        `json:"totalProjects"`
	NewProjects    int64        `json:"newProjects"`
	ActiveProjects int64        `json:"activeProjects"`
	DailyActivity  []TrendPoint `json:"dailyActivity"`
}

// SystemCounts are the counters the report needs from storage.
// CompletedTasks counts by completion time, so tasks created before the
// window but finished inside it still count.
type SystemCounts struct {
	TotalUsers     int64
	NewUsers       int64
	ActiveUsers    int64
	TotalTasks     int64
	CompletedTasks int64
	TotalProjects  int64
	NewProjects    int64
	ActiveProjects int64
}

// ComputeSystemReport combines stored counts with an in-memory pass
// over the window's tasks. Task creation is the activity proxy for the
// daily histogram.
func ComputeSystemReport(counts SystemCounts, windowTasks []tasks.Task, periodDays int) SystemReport {
	report := SystemReport{
		Period:         periodDays,
		TotalUsers:     counts.TotalUsers,
		NewUsers:       counts.NewUsers,
		ActiveUsers:    counts.ActiveUsers,
		TotalTasks:     counts.TotalTasks,
		CompletedTasks: counts.CompletedTasks,
		TotalProjects:  counts.TotalProjects,
		NewProjects:    counts.NewProjects,
		ActiveProjects: counts.ActiveProjects,
	}

	byDay := make(map[string]int)
	for _, t := range windowTasks {
		report.NewTasks++
		byDay[t.CreatedAt.Format("2006-01-02")]++
	}
	report.CompletionRate = percent(int(report.CompletedTasks), report.NewTasks)

	report.DailyActivity = make([]TrendPoint, 0, len(byDay))
	for day, count := range byDay {
		report.DailyActivity = append(report.DailyActivity, TrendPoint{Date: day, Count: count})
	}
	sort.Slice(report.DailyActivity, func(i, j int) bool {
		return report.DailyActivity[i].Date < report.DailyActivity[j].Date
	})

	return report
}

// WindowCutoff converts a lookback period in days to the earliest
// timestamp inside the window. Periods below one day are clamped.
func WindowCutoff(now time.Time, periodDays int) time.Time {
	if periodDays < 1 {
		periodDays = 30
	}
	return now.AddDate(0, 0, -periodDays)
}
