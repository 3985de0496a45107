package controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"qaqfplatform/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentLifecycle(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/content/", plainToken, map[string]interface{}{
		"title":           "Intro to Algebra",
		"description":     "Foundational algebra content",
		"type":            "lecture",
		"qaqf_level":      3,
		"module_code":     "MATH101",
		"content":         "Variables, expressions, equations.",
		"characteristics": []string{"clarity", "relevance"},
	})
	require.Equal(t, http.StatusCreated, status)

	created := dataOf(t, envelope)
	contentID := idOf(t, created)
	assert.Equal(t, "pending", created["verification_status"])
	assert.EqualValues(t, plainUser.ID, created["created_by_user_id"])

	// Partial update touches only the named fields.
	status, envelope = doJSON(t, http.MethodPut, "/api/content/3000", plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, envelope = doJSON(t, http.MethodPut, contentPath(contentID), plainToken, map[string]interface{}{
		"title": "Intro to Linear Algebra",
	})
	require.Equal(t, http.StatusOK, status)
	updated := dataOf(t, envelope)
	assert.Equal(t, "Intro to Linear Algebra", updated["title"])
	assert.Equal(t, "Foundational algebra content", updated["description"])
	assert.EqualValues(t, 3, updated["qaqf_level"])

	status, _ = doJSON(t, http.MethodPut, contentPath(contentID), plainToken, map[string]interface{}{
		"qaqf_level": 12,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Verification workflow.
	status, envelope = doJSON(t, http.MethodPatch, contentPath(contentID)+"/verify", adminToken, map[string]interface{}{
		"verification_status": "verified",
	})
	require.Equal(t, http.StatusOK, status)
	verified := dataOf(t, envelope)
	assert.Equal(t, "verified", verified["verification_status"])
	assert.EqualValues(t, adminUser.ID, verified["verified_by_user_id"])

	status, _ = doJSON(t, http.MethodPatch, contentPath(contentID)+"/verify", adminToken, map[string]interface{}{
		"verification_status": "bogus",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, http.MethodDelete, contentPath(contentID), plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodGet, contentPath(contentID), plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodDelete, contentPath(contentID), plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestContentCreateValidation(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/content/", plainToken, map[string]interface{}{
		"title": "Only a title",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	details, ok := envelope["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "description")
	assert.Contains(t, details, "type")
	assert.Contains(t, details, "qaqflevel")
	assert.Contains(t, details, "content")
}

func TestContentListFilters(t *testing.T) {
	for _, level := range []int{2, 7} {
		status, _ := doJSON(t, http.MethodPost, "/api/content/", plainToken, map[string]interface{}{
			"title":       "Filter fixture",
			"description": "fixture",
			"type":        "assessment",
			"qaqf_level":  level,
			"content":     "body",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, envelope := doJSON(t, http.MethodGet, "/api/content/?qaqf_level=7&type=assessment", plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	for _, item := range listOf(t, envelope) {
		row := item.(map[string]interface{})
		assert.EqualValues(t, 7, row["qaqf_level"])
		assert.Equal(t, "assessment", row["type"])
	}
}

func TestContentActivityRecorded(t *testing.T) {
	var before int64
	db.Model(&models.Activity{}).Where("entity_type = ?", "content").Count(&before)

	status, _ := doJSON(t, http.MethodPost, "/api/content/", plainToken, map[string]interface{}{
		"title":       "Audited",
		"description": "fixture",
		"type":        "lecture",
		"qaqf_level":  1,
		"content":     "body",
	})
	require.Equal(t, http.StatusCreated, status)

	var after int64
	db.Model(&models.Activity{}).Where("entity_type = ?", "content").Count(&after)
	assert.Equal(t, before+1, after)
}

func contentPath(id uint) string {
	return "/api/content/" + strconv.FormatUint(uint64(id), 10)
}
