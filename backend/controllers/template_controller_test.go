package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTemplate(t *testing.T, token string, isPublic bool) uint {
	t.Helper()
	status, envelope := doJSON(t, http.MethodPost, "/api/templates/", token, map[string]interface{}{
		"name":       "Weekly lesson plan",
		"type":       "lesson_plan",
		"qaqf_level": 4,
		"is_public":  isPublic,
		"content_structure": map[string]interface{}{
			"sections": []string{"objectives", "activities", "assessment"},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	return idOf(t, dataOf(t, envelope))
}

func TestTemplateUseIncrementsUsage(t *testing.T) {
	templateID := createTemplate(t, plainToken, true)

	for i := 0; i < 2; i++ {
		status, _ := doJSON(t, http.MethodPost, fmt.Sprintf("/api/templates/%d/use", templateID), adminToken, nil)
		require.Equal(t, http.StatusOK, status)
	}

	status, envelope := doJSON(t, http.MethodGet, fmt.Sprintf("/api/templates/%d", templateID), plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, dataOf(t, envelope)["usage_count"])
}

func TestTemplateTypeValidated(t *testing.T) {
	status, envelope := doJSON(t, http.MethodPost, "/api/templates/", plainToken, map[string]interface{}{
		"name":              "Bad type",
		"type":              "mixtape",
		"qaqf_level":        4,
		"content_structure": map[string]interface{}{"a": 1},
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	details, ok := envelope["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "type")
}

func TestTemplateVisibilityAndOwnership(t *testing.T) {
	owner := createUser("tplowner", "tplowner@example.com", "password", "user")
	ownerToken := tokenFor(owner)

	privateID := createTemplate(t, ownerToken, false)

	status, _ := doJSON(t, http.MethodGet, fmt.Sprintf("/api/templates/%d", privateID), plainToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodPost, fmt.Sprintf("/api/templates/%d/use", privateID), plainToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/templates/%d", privateID), plainToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Admin may delete anyone's template.
	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/templates/%d", privateID), adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}
