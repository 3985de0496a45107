package controllers

import (
	"io"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/services"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ExtractController exposes text extraction without creating a study
// material: upload a file or point at a website, get the text back.
type ExtractController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Files    *services.FileService
	Websites *services.WebsiteExtractor
}

func NewExtractController(db *gorm.DB, cfg *config.Config, files *services.FileService, websites *services.WebsiteExtractor) *ExtractController {
	return &ExtractController{DB: db, Cfg: cfg, Files: files, Websites: websites}
}

// ExtractFile accepts a multipart file and returns its extracted text. The
// file is validated but not persisted.
func (ec *ExtractController) ExtractFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}

	if err := ec.Files.ValidateUpload(fileHeader.Filename, fileHeader.Size, false); err != nil {
		return utils.BadRequest(c, err.Error())
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

	text := ec.Files.ExtractText(data, fileHeader.Filename)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"filename":    fileHeader.Filename,
		"text":        text,
		"text_length": len(text),
	})
}

type websiteRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ExtractWebsite fetches a page and returns its readable text.
func (ec *ExtractController) ExtractWebsite(c *fiber.Ctx) error {
	var req websiteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	text, meta, err := ec.Websites.Extract(c.Context(), req.URL)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"text": text,
		"meta": meta,
	})
}
