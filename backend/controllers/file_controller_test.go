package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, name string, data []byte, category string) map[string]interface{} {
	t.Helper()
	fields := map[string]string{}
	if category != "" {
		fields["category"] = category
	}
	status, envelope := postMultipart(t, "/api/files/upload", plainToken, fields, name, data)
	require.Equal(t, http.StatusCreated, status)

	file, ok := dataOf(t, envelope)["file"].(map[string]interface{})
	require.True(t, ok)
	return file
}

func TestFileUploadInfersCategory(t *testing.T) {
	file := uploadFile(t, "clip.mp4", []byte("fake video bytes"), "")

	// Videos are allowed here; the study-material path rejects them.
	assert.Equal(t, "videos", file["category"])
	assert.Equal(t, "clip.mp4", file["name"])
	assert.NotEmpty(t, file["url"])
	assert.Len(t, file["hash"], 32)
}

func TestFileUploadRejectsUnknownExtension(t *testing.T) {
	status, _ := postMultipart(t, "/api/files/upload", plainToken, nil, "malware.exe", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFileListAndInfoAndDelete(t *testing.T) {
	file := uploadFile(t, "report.pdf", []byte("%PDF-1.4 stub"), "documents")
	path := file["path"].(string)

	status, envelope := doJSON(t, http.MethodGet, "/api/files/list?category=documents", plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, envelope)
	files, ok := data["files"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, files)
	found := false
	for _, item := range files {
		if item.(map[string]interface{})["path"] == path {
			found = true
		}
	}
	assert.True(t, found)

	status, envelope = doJSON(t, http.MethodGet, "/api/files/info/"+path, plainToken, nil)
	require.Equal(t, http.StatusOK, status)
	info := dataOf(t, envelope)
	assert.Equal(t, path, info["path"])
	assert.Equal(t, "documents", info["category"])
	assert.EqualValues(t, len("%PDF-1.4 stub"), info["size"])

	status, _ = doJSON(t, http.MethodDelete, "/api/files/delete/"+path, plainToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodGet, "/api/files/info/"+path, plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodDelete, "/api/files/delete/"+path, plainToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFileStatsAdminOnly(t *testing.T) {
	uploadFile(t, "track.mp3", []byte("audio bytes"), "")

	status, _ := doJSON(t, http.MethodGet, "/api/files/stats", plainToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, envelope := doJSON(t, http.MethodGet, "/api/files/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	stats := dataOf(t, envelope)
	assert.GreaterOrEqual(t, stats["total_files"].(float64), 1.0)
	categories, ok := stats["categories"].(map[string]interface{})
	require.True(t, ok)
	audio, ok := categories["audio"].(map[string]interface{})
	require.True(t, ok)
	assert.GreaterOrEqual(t, audio["file_count"].(float64), 1.0)
}
