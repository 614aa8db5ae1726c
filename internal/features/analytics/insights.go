package analytics

import "fmt"

// Insight severities
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
	SeveritySuccess = "success"
)

// Insight is a derived, human-readable productivity signal
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ComputeInsights evaluates each signal independently, so several can
// fire at once.
func ComputeInsights(stats TaskStats, timeStats TimeStats, overdueCount, streak int) []Insight {
	insights := []Insight{}

	if stats.CompletionRate < 50 {
		insights = append(insights, Insight{
			Type:    SeverityWarning,
			Title:   "Low Completion Rate",
			Message: fmt.Sprintf("Your completion rate is %d%%. Try breaking tasks into smaller pieces.", stats.CompletionRate),
		})
	}

	if stats.CompletionRate > 80 {
		insights = append(insights, Insight{
			Type:    SeveritySuccess,
			Title:   "Excellent Completion Rate",
			Message: fmt.Sprintf("Great job! You completed %d%% of your tasks.", stats.CompletionRate),
		})
	}

	if overdueCount > 0 {
		insights = append(insights, Insight{
			Type:    SeverityError,
			Title:   "Overdue Tasks",
			Message: fmt.Sprintf("You have %d overdue tasks. Consider rescheduling or completing them.", overdueCount),
		})
	}

	if timeStats.TimeAccuracy > 0 && timeStats.TimeAccuracy < 80 {
		insights = append(insights, Insight{
			Type:    SeverityInfo,
			Title:   "Time Estimation",
			Message: fmt.Sprintf("Your tasks take %d%% of estimated time. Consider adjusting your estimates.", timeStats.TimeAccuracy),
		})
	}

	if streak > 7 {
		insights = append(insights, Insight{
			Type:    SeveritySuccess,
			Title:   "Great Streak!",
			Message: fmt.Sprintf("You are on a %d-day streak. Keep it up!", streak),
		})
	}

	return insights
}
