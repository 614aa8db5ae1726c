package users

import (
	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/features/auth"
	"github.com/taskhive/taskhive/internal/pkg/response"
)

// Handler serves the user directory: search and public profiles for
// assignee and collaborator picking.
type Handler struct {
	users *auth.Repository
}

func NewHandler(users *auth.Repository) *Handler {
	return &Handler{users: users}
}

// Search godoc
// @Summary Search users
// @Description Search users by name or email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param limit query int false "Max results (default 10, max 50)"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /users/search [get]
func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindJSONError(c, err)
		return
	}

	matches, err := h.users.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	results := make([]PublicUser, 0, len(matches))
	for i := range matches {
		results = append(results, PublicView(&matches[i]))
	}
	response.Success(c, results)
}

// Get godoc
// @Summary Get a user profile
// @Description Get the public profile of a user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, PublicView(user))
}
