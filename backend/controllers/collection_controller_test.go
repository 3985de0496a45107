package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCollection(t *testing.T, token, name string, isPublic bool) uint {
	t.Helper()
	status, envelope := doJSON(t, http.MethodPost, "/api/collections/", token, map[string]interface{}{
		"name":      name,
		"is_public": isPublic,
	})
	require.Equal(t, http.StatusCreated, status)
	return idOf(t, dataOf(t, envelope))
}

func TestCollectionVisibility(t *testing.T) {
	other := createUser("colowner", "colowner@example.com", "password", "user")
	otherToken := tokenFor(other)

	privateID := createCollection(t, otherToken, "Private shelf", false)
	publicID := createCollection(t, otherToken, "Public shelf", true)

	// Listing for another user includes the public one only.
	status, envelope := doJSON(t, http.MethodGet, "/api/collections/", plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	seen := map[float64]bool{}
	for _, item := range listOf(t, envelope) {
		seen[item.(map[string]interface{})["id"].(float64)] = true
	}
	assert.True(t, seen[float64(publicID)])
	assert.False(t, seen[float64(privateID)])

	// Direct reads follow the same rule.
	status, _ = doJSON(t, http.MethodGet, fmt.Sprintf("/api/collections/%d", privateID), plainToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodGet, fmt.Sprintf("/api/collections/%d", privateID), otherToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// Admins see everything.
	status, _ = doJSON(t, http.MethodGet, fmt.Sprintf("/api/collections/%d", privateID), adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	// Only owner or admin may modify.
	status, _ = doJSON(t, http.MethodPut, fmt.Sprintf("/api/collections/%d", publicID), plainToken, map[string]interface{}{
		"name": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/collections/%d", publicID), plainToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCollectionResolvesMaterialsAndDropsMissing(t *testing.T) {
	status, envelope := postMultipart(t, "/api/study-materials/", plainToken, map[string]string{
		"title":       "Collected material",
		"description": "in a collection",
		"qaqf_level":  "3",
	}, "", nil)
	require.Equal(t, http.StatusCreated, status)
	materialID := idOf(t, dataOf(t, envelope))

	status, envelope = doJSON(t, http.MethodPost, "/api/collections/", plainToken, map[string]interface{}{
		"name":         "Mixed ids",
		"material_ids": []uint{materialID, 99999},
	})
	require.Equal(t, http.StatusCreated, status)
	collectionID := idOf(t, dataOf(t, envelope))

	status, envelope = doJSON(t, http.MethodGet, fmt.Sprintf("/api/collections/%d", collectionID), plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, envelope)
	materials, ok := data["materials"].([]interface{})
	require.True(t, ok)
	require.Len(t, materials, 1)
	assert.EqualValues(t, materialID, materials[0].(map[string]interface{})["id"])
}
