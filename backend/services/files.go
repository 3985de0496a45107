package services

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo describes one stored file for the management endpoints.
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	URL      string    `json:"url"`
	Category string    `json:"category"`
	Size     int64     `json:"size"`
	MimeType string    `json:"mime_type"`
	Modified time.Time `json:"modified"`
}

// CategoryStats aggregates one category's directory.
type CategoryStats struct {
	FileCount int   `json:"file_count"`
	Size      int64 `json:"size"`
}

// StorageStats is the storage overview for the admin endpoint.
type StorageStats struct {
	TotalFiles int                      `json:"total_files"`
	TotalSize  int64                    `json:"total_size"`
	Categories map[string]CategoryStats `json:"categories"`
}

// storageCategories returns the category names in stable order.
func storageCategories() []string {
	return []string{"archives", "audio", "documents", "images", "videos"}
}

// safeRelPath rejects paths that would escape the upload directory.
func (s *FileService) safeRelPath(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid file path %q", relPath)
	}
	return cleaned, nil
}

// Info stats a stored file by its relative path. A missing file yields nil
// without an error.
func (s *FileService) Info(relPath string) (*FileInfo, error) {
	cleaned, err := s.safeRelPath(relPath)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(filepath.Join(s.UploadDir, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if stat.IsDir() {
		return nil, nil
	}

	slashed := filepath.ToSlash(cleaned)
	category := ""
	if i := strings.Index(slashed, "/"); i > 0 {
		category = slashed[:i]
	}

	return &FileInfo{
		Name:     stat.Name(),
		Path:     slashed,
		URL:      "/uploads/" + slashed,
		Category: category,
		Size:     stat.Size(),
		MimeType: mime.TypeByExtension(filepath.Ext(stat.Name())),
		Modified: stat.ModTime(),
	}, nil
}

// List enumerates stored files, optionally restricted to one category.
// Unknown or missing category directories produce an empty list.
func (s *FileService) List(category string) ([]FileInfo, error) {
	categories := storageCategories()
	if category != "" {
		categories = []string{category}
	}

	files := []FileInfo{}
	for _, cat := range categories {
		entries, err := os.ReadDir(filepath.Join(s.UploadDir, cat))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := s.Info(cat + "/" + entry.Name())
			if err != nil || info == nil {
				continue
			}
			files = append(files, *info)
		}
	}
	return files, nil
}

// Stats totals file counts and sizes per category.
func (s *FileService) Stats() (*StorageStats, error) {
	stats := &StorageStats{Categories: map[string]CategoryStats{}}

	for _, cat := range storageCategories() {
		entries, err := os.ReadDir(filepath.Join(s.UploadDir, cat))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		var categoryStats CategoryStats
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			categoryStats.FileCount++
			categoryStats.Size += info.Size()
		}

		stats.Categories[cat] = categoryStats
		stats.TotalFiles += categoryStats.FileCount
		stats.TotalSize += categoryStats.Size
	}
	return stats, nil
}

// Remove deletes a stored file by relative path and reports whether a file
// was actually removed.
func (s *FileService) Remove(relPath string) (bool, error) {
	cleaned, err := s.safeRelPath(relPath)
	if err != nil {
		return false, err
	}

	err = os.Remove(filepath.Join(s.UploadDir, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
