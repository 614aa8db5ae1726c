package tasks

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/pkg/pagination"
	"github.com/taskhive/taskhive/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user session")
		return primitive.NilObjectID, false
	}
	return id, true
}

// List godoc
// @Summary List tasks
// @Description List the authenticated user's tasks with filters and pagination
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param project query string false "Filter by project ID"
// @Param tags query string false "Comma-separated tags"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /tasks [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindJSONError(c, err)
		return
	}

	tasks, total, err := h.service.List(c.Request.Context(), userID, q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Paginated(c, tasks, pagination.New(q.Page, q.Limit, total))
}

// Create godoc
// @Summary Create a new task
// @Description Create a task inside a project the user belongs to
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task creation data"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// Get godoc
// @Summary Get a task by ID
// @Description Get a task the user created, is assigned to, or can see through project membership
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, task)
}

// Update godoc
// @Summary Update a task
// @Description Apply a partial update; status transitions trigger XP awards and recurrence
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Task update data"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// Delete godoc
// @Summary Delete a task
// @Description Delete a task; only the creator may delete
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Task deleted"})
}

// AddComment godoc
// @Summary Comment on a task
// @Description Append a comment to the task's discussion thread
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body AddCommentRequest true "Comment data"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	task, err := h.service.AddComment(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, task)
}

// Overdue godoc
// @Summary List overdue tasks
// @Description List the user's tasks past their due date and not completed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /tasks/overdue [get]
func (h *Handler) Overdue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.service.Overdue(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tasks)
}

// DueToday godoc
// @Summary List tasks due today
// @Description List the user's tasks due within the current calendar day
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /tasks/due-today [get]
func (h *Handler) DueToday(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.service.DueToday(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, tasks)
}

// BulkUpdate godoc
// @Summary Bulk update tasks
// @Description Apply one update to many tasks; inaccessible tasks are skipped
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkUpdateRequest true "Bulk update data"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /tasks/bulk [put]
func (h *Handler) BulkUpdate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updated, err := h.service.BulkUpdate(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"updated": updated})
}
