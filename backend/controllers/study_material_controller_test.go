package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMultipart(t *testing.T, path, token string, fields map[string]string, fileName string, fileData []byte) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	envelope := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func TestMaterialUploadExtractsText(t *testing.T) {
	status, envelope := postMultipart(t, "/api/study-materials/", plainToken, map[string]string{
		"title":       "Lecture notes",
		"description": "Week one notes",
		"qaqf_level":  "4",
		"tags":        "algebra, notes",
	}, "notes.txt", []byte("The   quick brown fox"))
	require.Equal(t, http.StatusCreated, status)

	material := dataOf(t, envelope)
	assert.Equal(t, "Lecture notes", material["title"])
	assert.Equal(t, "notes.txt", material["file_name"])
	assert.Equal(t, "The quick brown fox", material["content"])
	assert.Len(t, material["file_hash"], 32)
	assert.Equal(t, plainUser.Name, material["creator_name"])
	assert.NotEmpty(t, material["file_url"])
}

func TestMaterialUploadRejectsDisallowedType(t *testing.T) {
	status, _ := postMultipart(t, "/api/study-materials/", plainToken, map[string]string{
		"title":       "Bad upload",
		"description": "should fail",
		"qaqf_level":  "4",
	}, "clip.mp4", []byte("fake video"))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMaterialRequiredFields(t *testing.T) {
	status, envelope := postMultipart(t, "/api/study-materials/", plainToken, map[string]string{
		"qaqf_level": "42",
	}, "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	details, ok := envelope["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "description")
	assert.Contains(t, details, "qaqf_level")
}

func TestMaterialUpdateAndDelete(t *testing.T) {
	status, envelope := postMultipart(t, "/api/study-materials/", plainToken, map[string]string{
		"title":       "Mutable material",
		"description": "original",
		"qaqf_level":  "2",
	}, "", nil)
	require.Equal(t, http.StatusCreated, status)
	materialID := idOf(t, dataOf(t, envelope))

	status, envelope = doJSON(t, http.MethodPut, fmt.Sprintf("/api/study-materials/%d", materialID), plainToken, map[string]interface{}{
		"description": "revised",
	})
	require.Equal(t, http.StatusOK, status)
	updated := dataOf(t, envelope)
	assert.Equal(t, "revised", updated["description"])
	assert.Equal(t, "Mutable material", updated["title"])

	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/study-materials/%d", materialID), plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodGet, fmt.Sprintf("/api/study-materials/%d", materialID), plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
