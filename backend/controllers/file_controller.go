package controllers

import (
	"io"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/services"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FileController is the generic file-management surface: upload into a
// category, browse, stat and delete stored files. Study materials use their
// own stricter path.
type FileController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Files *services.FileService
}

func NewFileController(db *gorm.DB, cfg *config.Config, files *services.FileService) *FileController {
	return &FileController{DB: db, Cfg: cfg, Files: files}
}

// Upload stores a file under its category (inferred from the extension when
// not supplied) and returns the stored descriptor including extracted text.
func (fc *FileController) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.InternalServerError(c, "Could not read uploaded file")
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return utils.InternalServerError(c, "Could not read uploaded file")
	}

	extraction, err := fc.Files.Ingest(data, fileHeader.Filename, c.FormValue("category"), false)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	services.RecordActivity(fc.DB, utils.Logger, currentUserID(c), "upload", "file", 0,
		map[string]interface{}{"filename": extraction.OriginalName, "category": extraction.Category})

	return utils.Created(c, fiber.Map{
		"message": "File uploaded successfully",
		"file":    extraction,
	})
}

// List enumerates stored files, optionally filtered by category.
func (fc *FileController) List(c *fiber.Ctx) error {
	files, err := fc.Files.List(c.Query("category"))
	if err != nil {
		return utils.InternalServerError(c, "Could not list files")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"files": files,
		"total": len(files),
	})
}

// Stats reports per-category storage totals. Admin only.
func (fc *FileController) Stats(c *fiber.Ctx) error {
	stats, err := fc.Files.Stats()
	if err != nil {
		return utils.InternalServerError(c, "Could not read storage")
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// Info stats one stored file by its relative path.
func (fc *FileController) Info(c *fiber.Ctx) error {
	info, err := fc.Files.Info(c.Params("*"))
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if info == nil {
		return utils.NotFound(c, "File not found")
	}
	return utils.Success(c, fiber.StatusOK, info)
}

// Delete removes one stored file by its relative path.
func (fc *FileController) Delete(c *fiber.Ctx) error {
	removed, err := fc.Files.Remove(c.Params("*"))
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if !removed {
		return utils.NotFound(c, "File not found")
	}

	services.RecordActivity(fc.DB, utils.Logger, currentUserID(c), "delete", "file", 0,
		map[string]interface{}{"path": c.Params("*")})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "File deleted successfully"})
}
