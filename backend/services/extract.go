package services

import (
	"archive/zip"
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"qaqfplatform/backend/config"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// allowedExtensions maps storage categories to their extension allow-lists.
var allowedExtensions = map[string]map[string]bool{
	"images":    {".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".webp": true},
	"documents": {".pdf": true, ".doc": true, ".docx": true, ".txt": true, ".rtf": true, ".odt": true, ".md": true},
	"videos":    {".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true, ".webm": true},
	"audio":     {".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".aac": true},
	"archives":  {".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true},
}

// materialExtensions is the stricter allow-list for the study-material path.
var materialExtensions = map[string]bool{
	".pdf": true, ".txt": true, ".doc": true, ".docx": true, ".md": true,
}

var (
	dashRunRe       = regexp.MustCompile(`[-\x{2013}\x{2014}]{2,}`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// Extraction is the result of a successful file ingestion. Text may be empty
// when the extractor failed; ingestion itself still succeeds.
type Extraction struct {
	OriginalName string `json:"name"`
	StoredName   string `json:"filename"`
	Path         string `json:"path"`
	URL          string `json:"url"`
	Category     string `json:"category"`
	Size         int64  `json:"size"`
	Hash         string `json:"hash"`
	Text         string `json:"text"`
}

// FileService validates, stores and text-extracts uploaded files under an
// uploads directory tree partitioned by category.
type FileService struct {
	UploadDir string
	MaxBytes  int64
	Logger    *log.Logger
}

func NewFileService(cfg *config.Config, logger *log.Logger) *FileService {
	return &FileService{
		UploadDir: cfg.UploadDir,
		MaxBytes:  int64(cfg.MaxUploadMB) * 1024 * 1024,
		Logger:    logger,
	}
}

// ValidateUpload rejects disallowed extensions and oversized payloads. Both
// checks run before any disk write. With strict set, only the study-material
// extension list is accepted.
func (s *FileService) ValidateUpload(filename string, size int64, strict bool) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("filename %q has no extension", filename)
	}

	if strict {
		if !materialExtensions[ext] {
			return fmt.Errorf("file type %s not allowed; supported: .pdf, .txt, .doc, .docx, .md", ext)
		}
	} else {
		allowed := false
		for _, exts := range allowedExtensions {
			if exts[ext] {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("file type %s not allowed", ext)
		}
	}

	if size > s.MaxBytes {
		return fmt.Errorf("file too large, maximum size is %dMB", s.MaxBytes/(1024*1024))
	}

	return nil
}

// DetermineCategory infers the storage category from the file extension.
// Unmatched extensions fall back to "documents".
func DetermineCategory(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for category, exts := range allowedExtensions {
		if exts[ext] {
			return category
		}
	}
	return "documents"
}

// Ingest validates, stores and extracts text from an uploaded file. The
// stored name is a fresh UUID so uploads never collide; the MD5 hash is
// recorded for deduplication bookkeeping but nothing acts on it.
func (s *FileService) Ingest(data []byte, filename, category string, strict bool) (*Extraction, error) {
	if err := s.ValidateUpload(filename, int64(len(data)), strict); err != nil {
		return nil, err
	}

	if category == "" {
		category = DetermineCategory(filename)
	}
	if _, ok := allowedExtensions[category]; !ok {
		category = "documents"
	}

	ext := strings.ToLower(filepath.Ext(filename))
	storedName := uuid.NewString() + ext
	dir := filepath.Join(s.UploadDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	fullPath := filepath.Join(dir, storedName)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	sum := md5.Sum(data)
	relPath := filepath.ToSlash(filepath.Join(category, storedName))

	return &Extraction{
		OriginalName: filename,
		StoredName:   storedName,
		Path:         relPath,
		URL:          "/uploads/" + relPath,
		Category:     category,
		Size:         int64(len(data)),
		Hash:         hex.EncodeToString(sum[:]),
		Text:         s.ExtractText(data, filename),
	}, nil
}

// ExtractText dispatches to the extractor for the file's type. Extraction is
// best effort: any failure is logged and yields an empty string, never an
// error.
func (s *FileService) ExtractText(data []byte, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error

	switch ext {
	case ".txt", ".md":
		text = strings.ToValidUTF8(string(data), "")
	case ".pdf":
		text, err = extractPDFText(data)
	case ".doc", ".docx":
		text, err = extractDocText(data)
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
		// No OCR engine is bundled; report what the file is instead of
		// failing the upload.
		text = fmt.Sprintf("Image content from %s (OCR engine not available)", filename)
	default:
		text = strings.ToValidUTF8(string(data), "")
	}

	if err != nil {
		s.Logger.Printf("text extraction failed for %s: %v", filename, err)
		return ""
	}

	return CleanText(text)
}

// extractPDFText concatenates page-by-page plain text.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// extractDocText reads paragraph text out of the WordprocessingML part of a
// .docx container. Legacy binary .doc files are not a zip and fail here,
// which surfaces as an empty extraction.
func extractDocText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open document container: %w", err)
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open document part: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("no word/document.xml in container")
	}
	defer doc.Close()

	decoder := xml.NewDecoder(doc)
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document part: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}

// CleanText normalizes extracted text: Unicode NFKD, non-printables dropped,
// bullet glyphs and dash runs collapsed to "-", whitespace runs collapsed.
func CleanText(text string) string {
	text = norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == ' ':
			b.WriteRune(' ')
		case r == '•' || r == '':
			b.WriteRune('-')
		case unicode.IsPrint(r) || r == '\n' || r == '\t':
			b.WriteRune(r)
		}
	}

	cleaned := dashRunRe.ReplaceAllString(b.String(), "-")
	cleaned = whitespaceRunRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Delete removes a stored file by its relative path. Missing files are not
// an error.
func (s *FileService) Delete(relPath string) error {
	full := filepath.Join(s.UploadDir, filepath.FromSlash(relPath))
	err := os.Remove(full)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
