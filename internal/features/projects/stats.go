package projects

import "math"

// ComputeStats derives the counter snapshot from raw task counts.
// Archived tasks are included; overdue means past due and not
// completed.
func ComputeStats(total, completed, overdue int64) Stats {
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return Stats{
		TotalTasks:     total,
		CompletedTasks: completed,
		OverdueTasks:   overdue,
		CompletionRate: rate,
	}
}
