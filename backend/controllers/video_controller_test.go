package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoLifecycle(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/videos/", plainToken, map[string]interface{}{
		"title":           "Cell division animated",
		"description":     "Mitosis walkthrough",
		"qaqf_level":      4,
		"animation_style": "2D",
		"duration":        "5:30",
		"url":             "/uploads/videos/mitosis.mp4",
	})
	require.Equal(t, http.StatusCreated, status)

	created := dataOf(t, envelope)
	videoID := idOf(t, created)
	assert.Equal(t, "pending", created["verification_status"])
	assert.EqualValues(t, plainUser.ID, created["created_by_user_id"])

	status, envelope = doJSON(t, http.MethodGet, fmt.Sprintf("/api/videos/%d", videoID), plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cell division animated", dataOf(t, envelope)["title"])

	// Partial update leaves untouched fields alone.
	status, envelope = doJSON(t, http.MethodPatch, fmt.Sprintf("/api/videos/%d", videoID), plainToken, map[string]interface{}{
		"duration": "6:00",
	})
	require.Equal(t, http.StatusOK, status)
	updated := dataOf(t, envelope)
	assert.Equal(t, "6:00", updated["duration"])
	assert.Equal(t, "2D", updated["animation_style"])
	assert.Equal(t, "Mitosis walkthrough", updated["description"])

	// Verification mirrors the content workflow.
	status, envelope = doJSON(t, http.MethodPatch, fmt.Sprintf("/api/videos/%d", videoID), adminToken, map[string]interface{}{
		"verification_status": "verified",
	})
	require.Equal(t, http.StatusOK, status)
	verified := dataOf(t, envelope)
	assert.Equal(t, "verified", verified["verification_status"])
	assert.EqualValues(t, adminUser.ID, verified["verified_by_user_id"])

	status, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("/api/videos/%d", videoID), plainToken, map[string]interface{}{
		"verification_status": "bogus",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestVideoCreateValidation(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/videos/", plainToken, map[string]interface{}{
		"title": "Missing everything else",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	details, ok := envelope["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "description")
	assert.Contains(t, details, "qaqflevel")
	assert.Contains(t, details, "animationstyle")
	assert.Contains(t, details, "duration")
}

func TestVideoNotFound(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/videos/99999", plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodPatch, "/api/videos/99999", plainToken, map[string]interface{}{
		"title": "nope",
	})
	assert.Equal(t, http.StatusNotFound, status)
}
