package analytics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

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

func periodDays(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("period", "30"))
	return days
}

// UserAnalytics godoc
// @Summary Get user analytics
// @Description Task, project and time statistics for the authenticated user over a lookback window
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query int false "Lookback window in days" default(30)
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /tasks/analytics [get]
func (h *Handler) UserAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.service.UserReport(c.Request.Context(), userID, periodDays(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, report)
}

// Insights godoc
// @Summary Get productivity insights
// @Description Human-readable signals derived from the user's analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query int false "Lookback window in days" default(30)
// @Success 200 {object} response.SuccessResponse
// @Router /analytics/insights [get]
func (h *Handler) Insights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	insights, err := h.service.Insights(c.Request.Context(), userID, periodDays(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, insights)
}

// TeamAnalytics godoc
// @Summary Get team analytics for a project
// @Description Per-member contribution stats; project members only
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param period query int false "Lookback window in days" default(30)
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id}/analytics [get]
func (h *Handler) TeamAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.service.Team(c.Request.Context(), userID, c.Param("id"), periodDays(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, report)
}

// SystemAnalytics godoc
// @Summary Get system analytics
// @Description Platform-wide user, task and project counters; admin only
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query int false "Lookback window in days" default(30)
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /analytics/system [get]
func (h *Handler) SystemAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.service.System(c.Request.Context(), userID, periodDays(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, report)
}
