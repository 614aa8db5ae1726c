package tasks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)
	past := now.AddDate(0, 0, -7)

	valid := CreateTaskRequest{Title: "Ship it", Project: "665a0000000000000000aaaa", DueDate: &future}
	assert.NoError(t, ValidateCreate(&valid, now))

	cases := []struct {
		name string
		mod  func(r *CreateTaskRequest)
	}{
		{"empty title", func(r *CreateTaskRequest) { r.Title = "   " }},
		{"title too long", func(r *CreateTaskRequest) { r.Title = strings.Repeat("x", 201) }},
		{"description too long", func(r *CreateTaskRequest) { r.Description = strings.Repeat("x", 1001) }},
		{"bad status", func(r *CreateTaskRequest) { r.Status = "done" }},
		{"bad priority", func(r *CreateTaskRequest) { r.Priority = "critical" }},
		{"past due date", func(r *CreateTaskRequest) { r.DueDate = &past }},
		{"due date equal to now", func(r *CreateTaskRequest) { r.DueDate = &now }},
		{"negative estimate", func(r *CreateTaskRequest) { r.EstimatedTime = -5 }},
		{"bad recurrence type", func(r *CreateTaskRequest) { r.Recurrence = &Recurrence{Type: "hourly", Interval: 1} }},
		{"zero recurrence interval", func(r *CreateTaskRequest) { r.Recurrence = &Recurrence{Type: RecurDaily, Interval: 0} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mod(&req)
			assert.Error(t, ValidateCreate(&req, now))
		})
	}
}

// A due date later the same day is fine; one earlier the same day is
// already in the past and gets rejected.
func TestValidateCreateSameDayDueDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	laterToday := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	earlierToday := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	req := CreateTaskRequest{Title: "t", Project: "x", DueDate: &laterToday}
	assert.NoError(t, ValidateCreate(&req, now))

	req.DueDate = &earlierToday
	assert.Error(t, ValidateCreate(&req, now))
}

func TestValidateUpdateAllowsBackdating(t *testing.T) {
	past := time.Now().AddDate(0, 0, -30)
	req := UpdateTaskRequest{DueDate: &past}
	assert.NoError(t, ValidateUpdate(&req))
}

func TestValidateUpdate(t *testing.T) {
	bad := "done"
	neg := -1
	assert.Error(t, ValidateUpdate(&UpdateTaskRequest{Status: &bad}))
	assert.Error(t, ValidateUpdate(&UpdateTaskRequest{ActualTime: &neg}))

	good := StatusInProgress
	assert.NoError(t, ValidateUpdate(&UpdateTaskRequest{Status: &good}))
}

func TestValidateComment(t *testing.T) {
	assert.Error(t, ValidateComment("  "))
	assert.Error(t, ValidateComment(strings.Repeat("x", 501)))
	assert.NoError(t, ValidateComment("looks good"))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"work", "home"}, normalizeTags([]string{" Work", "HOME", "work", ""}))
	assert.Empty(t, normalizeTags(nil))
}
