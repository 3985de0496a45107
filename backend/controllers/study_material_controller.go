package controllers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/services"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StudyMaterialController manages uploaded learning materials. Creation is
// multipart: metadata fields plus an optional file that gets stored and
// text-extracted.
type StudyMaterialController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Files *services.FileService
}

func NewStudyMaterialController(db *gorm.DB, cfg *config.Config, files *services.FileService) *StudyMaterialController {
	return &StudyMaterialController{DB: db, Cfg: cfg, Files: files}
}

type materialView struct {
	models.StudyMaterial
	CreatorName string `json:"creator_name"`
}

func (sc *StudyMaterialController) withCreatorName(material models.StudyMaterial) materialView {
	var user models.User
	name := "Unknown"
	if err := sc.DB.First(&user, material.CreatedByUserID).Error; err == nil {
		name = user.Name
	}
	return materialView{StudyMaterial: material, CreatorName: name}
}

func (sc *StudyMaterialController) GetMaterials(c *fiber.Ctx) error {
	query := sc.DB.Model(&models.StudyMaterial{})

	if level := c.QueryInt("qaqf_level"); level > 0 {
		query = query.Where("qaqf_level = ?", level)
	}
	if materialType := c.Query("type"); materialType != "" {
		query = query.Where("type = ?", materialType)
	}

	var materials []models.StudyMaterial
	if err := query.Order("created_at desc").Find(&materials).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	views := make([]materialView, 0, len(materials))
	for _, material := range materials {
		views = append(views, sc.withCreatorName(material))
	}
	return utils.Success(c, fiber.StatusOK, views)
}

func (sc *StudyMaterialController) GetMaterial(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid material ID")
	}

	var material models.StudyMaterial
	if err := sc.DB.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Study material not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, sc.withCreatorName(material))
}

// CreateMaterial accepts a multipart form. The file part is optional; when
// present it must pass the strict extension list and its extracted text is
// stored as the material content unless the form supplied one.
func (sc *StudyMaterialController) CreateMaterial(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	materialType := c.FormValue("type", "document")
	qaqfLevel, _ := strconv.Atoi(c.FormValue("qaqf_level"))

	fieldErrors := make(map[string]string)
	if title == "" {
		fieldErrors["title"] = "This field is required"
	}
	if description == "" {
		fieldErrors["description"] = "This field is required"
	}
	if qaqfLevel < 1 || qaqfLevel > 9 {
		fieldErrors["qaqf_level"] = "Must be between 1 and 9"
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	material := models.StudyMaterial{
		Title:              title,
		Description:        description,
		Type:               materialType,
		QaqfLevel:          qaqfLevel,
		ModuleCode:         c.FormValue("module_code"),
		CreatedByUserID:    currentUserID(c),
		VerificationStatus: models.VerificationPending,
		Content:            c.FormValue("content"),
		Characteristics:    toJSONArray(splitCommaList(c.FormValue("characteristics"))),
		Tags:               toJSONArray(splitCommaList(c.FormValue("tags"))),
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return utils.InternalServerError(c, "Could not read uploaded file")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return utils.InternalServerError(c, "Could not read uploaded file")
		}

		extraction, err := sc.Files.Ingest(data, fileHeader.Filename, "documents", true)
		if err != nil {
			return utils.BadRequest(c, err.Error())
		}

		material.FileURL = extraction.URL
		material.FileName = extraction.OriginalName
		material.FileSize = extraction.Size
		material.FileHash = extraction.Hash
		if material.Content == "" {
			material.Content = extraction.Text
		}
	}

	if err := sc.DB.Create(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not create study material")
	}

	services.RecordActivity(sc.DB, utils.Logger, material.CreatedByUserID, "create", "study_material", material.ID,
		map[string]interface{}{"title": material.Title})

	return utils.Created(c, sc.withCreatorName(material))
}

func (sc *StudyMaterialController) UpdateMaterial(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid material ID")
	}

	var material models.StudyMaterial
	if err := sc.DB.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Study material not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Type        *string   `json:"type"`
		QaqfLevel   *int      `json:"qaqf_level"`
		ModuleCode  *string   `json:"module_code"`
		Content     *string   `json:"content"`
		Tags        *[]string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.QaqfLevel != nil && (*req.QaqfLevel < 1 || *req.QaqfLevel > 9) {
		return utils.ValidationError(c, map[string]string{"qaqf_level": "Must be between 1 and 9"})
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.Type != nil {
		material.Type = *req.Type
	}
	if req.QaqfLevel != nil {
		material.QaqfLevel = *req.QaqfLevel
	}
	if req.ModuleCode != nil {
		material.ModuleCode = *req.ModuleCode
	}
	if req.Content != nil {
		material.Content = *req.Content
	}
	if req.Tags != nil {
		material.Tags = toJSONArray(*req.Tags)
	}

	if err := sc.DB.Save(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not update study material")
	}

	services.RecordActivity(sc.DB, utils.Logger, currentUserID(c), "update", "study_material", material.ID, nil)

	return utils.Success(c, fiber.StatusOK, sc.withCreatorName(material))
}

// DeleteMaterial removes the row and, best effort, the stored file.
func (sc *StudyMaterialController) DeleteMaterial(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid material ID")
	}

	var material models.StudyMaterial
	if err := sc.DB.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Study material not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := sc.DB.Delete(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete study material")
	}

	if material.FileURL != "" {
		relPath := strings.TrimPrefix(material.FileURL, "/uploads/")
		if err := sc.Files.Delete(relPath); err != nil {
			utils.Logger.Printf("could not remove stored file %s: %v", relPath, err)
		}
	}

	services.RecordActivity(sc.DB, utils.Logger, currentUserID(c), "delete", "study_material", uint(id), nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Study material deleted"})
}

func splitCommaList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
