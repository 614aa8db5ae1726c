package response

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/pkg/pagination"
	apperrors "github.com/taskhive/taskhive/pkg/errors"
)

func TestSuccessAndErrorResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// Test Success
	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "success", body["status"])
	require.Contains(t, body, "data")

	// Test Error
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	var bodyErr map[string]any
	err = json.Unmarshal(w.Body.Bytes(), &bodyErr)
	require.NoError(t, err)
	require.Equal(t, "bad request", bodyErr["error"])
	require.Equal(t, "BAD_REQ", bodyErr["code"])
}

func TestPaginatedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	items := []map[string]any{{"id": 1}, {"id": 2}}
	Paginated(c, items, pagination.New(1, 10, 2))

	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "success", body["status"])
	meta, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(2), meta["total"])
	require.Equal(t, float64(10), meta["limit"])
	require.Equal(t, float64(1), meta["page"])
	require.Equal(t, float64(1), meta["pages"])
}

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("task: %w", apperrors.ErrNotFound), 404},
		{fmt.Errorf("task: %w", apperrors.ErrForbidden), 403},
		{fmt.Errorf("title: %w", apperrors.ErrValidation), 422},
		{fmt.Errorf("email: %w", apperrors.ErrDuplicate), 409},
		{fmt.Errorf("boom"), 500},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, tc.err)
		require.Equal(t, tc.code, w.Code)
	}
}
