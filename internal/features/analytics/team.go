package analytics

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/features/projects"
	"github.com/taskhive/taskhive/internal/features/tasks"
)

// MemberStat is one member's contribution to a project
type MemberStat struct {
	UserID         string `json:"userId"`
	UserName       string `json:"userName"`
	Role           string `json:"role"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	AssignedTasks  int    `json:"assignedTasks"`
	CompletionRate int    `json:"completionRate"`
}

// TeamReport breaks a project's in-window tasks down per member
type TeamReport struct {
	ProjectID   string       `json:"projectId"`
	ProjectName string       `json:"projectName"`
	Period      int          `json:"period"`
	Members     []MemberStat `json:"members"`
}

// ComputeTeamReport builds per-member stats for the owner and every
// collaborator. A member's tasks are the project's in-window tasks they
// created or are assigned to. Display names come from the names map;
// members missing from it keep an empty userName.
func ComputeTeamReport(project *projects.Project, projectTasks []tasks.Task, names map[primitive.ObjectID]string, periodDays int, cutoff time.Time) TeamReport {
	report := TeamReport{
		ProjectID:   project.ID.Hex(),
		ProjectName: project.Name,
		Period:      periodDays,
		Members:     []MemberStat{},
	}

	members := []struct {
		id   primitive.ObjectID
		role string
	}{{project.Owner, "owner"}}
	for _, c := range project.Collaborators {
		members = append(members, struct {
			id   primitive.ObjectID
			role string
		}{c.User, c.Role})
	}

	for _, m := range members {
		stat := MemberStat{UserID: m.id.Hex(), UserName: names[m.id], Role: m.role}
		for _, t := range projectTasks {
			if t.CreatedAt.Before(cutoff) {
				continue
			}
			assigned := t.AssignedTo != nil && *t.AssignedTo == m.id
			if t.CreatedBy != m.id && !assigned {
				continue
			}
			stat.TotalTasks++
			if assigned {
				stat.AssignedTasks++
			}
			if t.Status == tasks.StatusCompleted {
				stat.CompletedTasks++
			}
		}
		stat.CompletionRate = percent(stat.CompletedTasks, stat.TotalTasks)
		report.Members = append(report.Members, stat)
	}

	return report
}
