package search

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user session")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Unified godoc
// @Summary Search tasks and projects
// @Description Search the user's tasks and projects in one call
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param type query string false "Result type: all, tasks or projects (default all)"
// @Param limit query int false "Max results per type (default 10, max 20)"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /search [get]
func (h *Handler) Unified(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q UnifiedSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindJSONError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp := UnifiedSearchResponse{Query: q.Q}

	if q.Type == TypeAll || q.Type == TypeTasks {
		docs, err := h.repo.SearchTasks(ctx, userID, q.Q, q.Limit)
		if err != nil {
			response.FromError(c, err)
			return
		}
		resp.Tasks = make([]TaskResult, 0, len(docs))
		for _, d := range docs {
			resp.Tasks = append(resp.Tasks, TaskResult(d))
		}
	}

	if q.Type == TypeAll || q.Type == TypeProjects {
		docs, err := h.repo.SearchProjects(ctx, userID, q.Q, q.Limit)
		if err != nil {
			response.FromError(c, err)
			return
		}
		resp.Projects = make([]ProjectResult, 0, len(docs))
		for _, d := range docs {
			resp.Projects = append(resp.Projects, ProjectResult(d))
		}
	}

	response.Success(c, resp)
}
