package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroom/api-go/workflow"
)

func TestSearchWithoutFiltersReturnsEmptySet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	nc := NewNewsController(nil) // the unfiltered branch returns before any query
	r.GET("/api/public/posts/search", nc.Search)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/posts/search", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var posts []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Empty(t, posts, "empty search must not return the whole archive")
}

func TestWorkflowErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, workflowErrorStatus(workflow.ErrFeedbackRequired))
	assert.Equal(t, http.StatusBadRequest, workflowErrorStatus(workflow.ErrInvalidStatus))
	assert.Equal(t, http.StatusForbidden, workflowErrorStatus(workflow.ErrNotOwner))
	assert.Equal(t, http.StatusForbidden, workflowErrorStatus(workflow.ErrNotAllowed))
}

func TestContentUpdatesSkipsEmptyFields(t *testing.T) {
	updates := contentUpdates(PostContentRequest{Title: "New headline"})
	assert.Equal(t, map[string]interface{}{"title": "New headline"}, updates)

	assert.Empty(t, contentUpdates(PostContentRequest{}))

	scheduled := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	updates = contentUpdates(PostContentRequest{
		Content:     "body",
		Tags:        []string{"politics"},
		Priority:    "high",
		ScheduledAt: &scheduled,
	})
	assert.Len(t, updates, 4)
	assert.NotContains(t, updates, "status", "content edits never touch status")
	assert.NotContains(t, updates, "feedback")
}
