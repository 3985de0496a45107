package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQaqfLevelsSeeded(t *testing.T) {
	status, envelope := doJSON(t, http.MethodGet, "/api/qaqf/levels", plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	levels := listOf(t, envelope)
	require.Len(t, levels, 9)

	first := levels[0].(map[string]interface{})
	last := levels[8].(map[string]interface{})
	assert.EqualValues(t, 1, first["level"])
	assert.Equal(t, "Basic Foundation", first["name"])
	assert.EqualValues(t, 9, last["level"])
	assert.Equal(t, "Advanced Leadership", last["name"])
}

func TestQaqfCharacteristicsSeeded(t *testing.T) {
	status, envelope := doJSON(t, http.MethodGet, "/api/qaqf/characteristics", plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, listOf(t, envelope), 10)
}

func TestQaqfLevelDuplicateConflicts(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/qaqf/levels", adminToken, map[string]interface{}{
		"level":       1,
		"name":        "Duplicate",
		"description": "already seeded",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestQaqfCharacteristicUpdate(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/qaqf/characteristics", adminToken, map[string]interface{}{
		"name":        "Renameable",
		"description": "starts here",
		"category":    "quality",
	})
	require.Equal(t, http.StatusCreated, status)
	characteristicID := idOf(t, dataOf(t, envelope))

	// Partial update touches only the supplied fields.
	status, envelope = doJSON(t, http.MethodPatch, fmt.Sprintf("/api/qaqf/characteristics/%d", characteristicID), adminToken, map[string]interface{}{
		"description": "updated description",
	})
	require.Equal(t, http.StatusOK, status)
	updated := dataOf(t, envelope)
	assert.Equal(t, "Renameable", updated["name"])
	assert.Equal(t, "updated description", updated["description"])
	assert.Equal(t, "quality", updated["category"])

	// Renaming onto a seeded characteristic is refused.
	status, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("/api/qaqf/characteristics/%d", characteristicID), adminToken, map[string]interface{}{
		"name": "Critical thinking",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Taxonomy writes stay admin-only.
	status, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("/api/qaqf/characteristics/%d", characteristicID), plainToken, map[string]interface{}{
		"description": "not allowed",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodPatch, "/api/qaqf/characteristics/99999", adminToken, map[string]interface{}{
		"description": "missing",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDashboardStats(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/content/", plainToken, map[string]interface{}{
		"title":       "Stats fixture",
		"description": "fixture",
		"type":        "lecture",
		"qaqf_level":  1,
		"content":     "body",
	})
	require.Equal(t, http.StatusCreated, status)

	status, envelope := doJSON(t, http.MethodGet, "/api/dashboard/stats", plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, envelope)
	assert.GreaterOrEqual(t, data["content_count"].(float64), 1.0)
	assert.GreaterOrEqual(t, data["user_count"].(float64), 2.0)
	for _, key := range []string{"verified_content_count", "material_count", "course_count"} {
		_, present := data[key]
		assert.True(t, present, key)
	}
}

func TestActivitiesFeed(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/content/", plainToken, map[string]interface{}{
		"title":       "Feed fixture",
		"description": "fixture",
		"type":        "lecture",
		"qaqf_level":  1,
		"content":     "body",
	})
	require.Equal(t, http.StatusCreated, status)

	status, envelope := doJSON(t, http.MethodGet, "/api/activities", plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	activities := listOf(t, envelope)
	require.NotEmpty(t, activities)

	newest := activities[0].(map[string]interface{})
	assert.Equal(t, "create", newest["action"])
	assert.Equal(t, "content", newest["entity_type"])
	assert.Equal(t, plainUser.Username, newest["username"])
}

func TestHealthIsPublic(t *testing.T) {
	status, envelope := doJSON(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", envelope["status"])
	assert.Equal(t, "ok", envelope["database"])
}
