package realtime

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/pkg/response"
)

// MembershipChecker guards the event stream; only project members may
// subscribe.
type MembershipChecker interface {
	IsMember(ctx context.Context, projectID, userID primitive.ObjectID) (bool, error)
}

type Handler struct {
	hub     *Hub
	members MembershipChecker
	log     *logger.Logger
}

func NewHandler(hub *Hub, members MembershipChecker, log *logger.Logger) *Handler {
	return &Handler{hub: hub, members: members, log: log}
}

// Stream godoc
// @Summary Subscribe to project events
// @Description Server-sent event stream of task and project changes for one project
// @Tags realtime
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {string} string "event stream"
// @Failure 403 {object} response.ErrorResponse
// @Router /projects/{id}/events [get]
func (h *Handler) Stream(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Invalid user session")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	member, err := h.members.IsMember(c.Request.Context(), projectID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !member {
		response.Forbidden(c, "Not a member of this project")
		return
	}

	events, cancel := h.hub.Subscribe(projectID.Hex())
	defer cancel()

	h.log.Debug("realtime: user %s subscribed to project %s", userID.Hex(), projectID.Hex())

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// RegisterRoutes wires the event stream endpoint
func RegisterRoutes(router *gin.RouterGroup, hub *Hub, members MembershipChecker, log *logger.Logger) {
	handler := NewHandler(hub, members, log)

	events := router.Group("/projects/:id/events")
	events.Use(middleware.Auth())
	events.GET("", handler.Stream)
}
