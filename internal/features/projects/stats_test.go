package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(5, 2, 1)

	assert.Equal(t, int64(5), stats.TotalTasks)
	assert.Equal(t, int64(2), stats.CompletedTasks)
	assert.Equal(t, int64(1), stats.OverdueTasks)
	assert.Equal(t, 40, stats.CompletionRate)
}

func TestComputeStatsEmptyProject(t *testing.T) {
	stats := ComputeStats(0, 0, 0)
	assert.Equal(t, 0, stats.CompletionRate)
}

func TestComputeStatsRounding(t *testing.T) {
	// 2/3 rounds to 67, 1/3 rounds to 33
	assert.Equal(t, 67, ComputeStats(3, 2, 0).CompletionRate)
	assert.Equal(t, 33, ComputeStats(3, 1, 0).CompletionRate)
	assert.Equal(t, 100, ComputeStats(4, 4, 0).CompletionRate)
}

func TestValidateCreateProject(t *testing.T) {
	assert.NoError(t, ValidateCreate(&CreateProjectRequest{Name: "Ops", Color: "#fff"}))
	assert.Error(t, ValidateCreate(&CreateProjectRequest{Name: "  "}))
	assert.Error(t, ValidateCreate(&CreateProjectRequest{Name: "Ops", Color: "blue"}))
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleAdmin))
	assert.Error(t, ValidateRole("owner"))
}
