package gamification

import "time"

// Gamification is the per-user progress document embedded on the user.
type Gamification struct {
	Level        int       `bson:"level" json:"level" example:"3"`
	XP           int       `bson:"xp" json:"xp" example:"250"`
	Streak       int       `bson:"streak" json:"streak" example:"5"`
	LastActivity time.Time `bson:"lastActivity" json:"lastActivity"`
	Badges       []string  `bson:"badges" json:"badges"`
}

// New returns the progress assigned to fresh accounts.
func New() Gamification {
	return Gamification{
		Level:  1,
		Badges: []string{},
	}
}

// Result reports the outcome of an XP award.
type Result struct {
	LevelUp  bool `json:"levelUp"`
	NewLevel int  `json:"newLevel,omitempty"`
	XPGained int  `json:"xpGained"`
}

// CreationAward is the flat XP granted for creating a task, regardless
// of its priority.
const CreationAward = 10

// CompletionAward returns the XP granted when a task transitions into
// completed, keyed by its priority.
func CompletionAward(priority string) int {
	switch priority {
	case "urgent":
		return 50
	case "high":
		return 30
	case "medium":
		return 20
	default:
		return 10
	}
}

// AddXP adds points and re-derives the level as xp/100+1. The level is
// only ever raised; XP is never deducted by any operation, so a level
// cannot drop.
func AddXP(g *Gamification, points int) Result {
	g.XP += points
	newLevel := g.XP/100 + 1
	if newLevel > g.Level {
		g.Level = newLevel
		return Result{LevelUp: true, NewLevel: newLevel, XPGained: points}
	}
	return Result{XPGained: points}
}

// TouchStreak records activity for streak accounting: activity on
// consecutive calendar days extends the streak, a same-day repeat keeps
// it, and a gap resets it to 1.
func TouchStreak(g *Gamification, now time.Time) {
	last := g.LastActivity
	g.LastActivity = now

	if g.Streak == 0 || last.IsZero() {
		g.Streak = 1
		return
	}

	lastDay := calendarDay(last)
	today := calendarDay(now)

	switch {
	case today.Equal(lastDay):
		// same day, streak unchanged
	case today.Equal(lastDay.AddDate(0, 0, 1)):
		g.Streak++
	default:
		g.Streak = 1
	}
}

// calendarDay buckets a timestamp to local midnight. Truncate would
// slice on 24h periods from the Unix epoch instead of calendar days,
// which misfires on DST shifts and non-UTC zones.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
