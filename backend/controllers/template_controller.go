package controllers

import (
	"errors"
	"strconv"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/services"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateController manages reusable content templates. The same
// visibility rule as collections applies.
type TemplateController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTemplateController(db *gorm.DB, cfg *config.Config) *TemplateController {
	return &TemplateController{DB: db, Cfg: cfg}
}

type templateRequest struct {
	Name             string         `json:"name" validate:"required"`
	Description      string         `json:"description"`
	Type             string         `json:"type" validate:"required,oneof=lesson_plan assessment course_outline"`
	QaqfLevel        int            `json:"qaqf_level" validate:"required,min=1,max=9"`
	ContentStructure datatypes.JSON `json:"content_structure" validate:"required"`
	IsPublic         bool           `json:"is_public"`
}

func (tc *TemplateController) GetTemplates(c *fiber.Ctx) error {
	query := tc.DB.Model(&models.Template{})
	if !isAdmin(c) {
		query = query.Where("is_public = ? OR created_by_user_id = ?", true, currentUserID(c))
	}
	if templateType := c.Query("type"); templateType != "" {
		query = query.Where("type = ?", templateType)
	}

	var templates []models.Template
	if err := query.Order("usage_count desc").Find(&templates).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, templates)
}

func (tc *TemplateController) GetTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var template models.Template
	if err := tc.DB.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !template.IsPublic && template.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to view this template")
	}
	return utils.Success(c, fiber.StatusOK, template)
}

func (tc *TemplateController) CreateTemplate(c *fiber.Ctx) error {
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	userID := currentUserID(c)
	template := models.Template{
		Name:             req.Name,
		Description:      req.Description,
		Type:             req.Type,
		QaqfLevel:        req.QaqfLevel,
		ContentStructure: req.ContentStructure,
		CreatedByUserID:  userID,
		IsPublic:         req.IsPublic,
	}
	if err := tc.DB.Create(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not create template")
	}

	services.RecordActivity(tc.DB, utils.Logger, userID, "create", "template", template.ID,
		map[string]interface{}{"name": template.Name})

	return utils.Created(c, template)
}

func (tc *TemplateController) UpdateTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var template models.Template
	if err := tc.DB.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if template.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to modify this template")
	}

	var req struct {
		Name             *string         `json:"name"`
		Description      *string         `json:"description"`
		Type             *string         `json:"type"`
		QaqfLevel        *int            `json:"qaqf_level"`
		ContentStructure *datatypes.JSON `json:"content_structure"`
		IsPublic         *bool           `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.QaqfLevel != nil && (*req.QaqfLevel < 1 || *req.QaqfLevel > 9) {
		return utils.ValidationError(c, map[string]string{"qaqf_level": "Must be between 1 and 9"})
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Type != nil {
		template.Type = *req.Type
	}
	if req.QaqfLevel != nil {
		template.QaqfLevel = *req.QaqfLevel
	}
	if req.ContentStructure != nil {
		template.ContentStructure = *req.ContentStructure
	}
	if req.IsPublic != nil {
		template.IsPublic = *req.IsPublic
	}

	if err := tc.DB.Save(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not update template")
	}
	return utils.Success(c, fiber.StatusOK, template)
}

// UseTemplate records a usage and hands back the structure for the client
// to instantiate.
func (tc *TemplateController) UseTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var template models.Template
	if err := tc.DB.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !template.IsPublic && template.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to use this template")
	}

	template.UsageCount++
	if err := tc.DB.Save(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not update template")
	}

	services.RecordActivity(tc.DB, utils.Logger, currentUserID(c), "use", "template", template.ID, nil)

	return utils.Success(c, fiber.StatusOK, template)
}

func (tc *TemplateController) DeleteTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var template models.Template
	if err := tc.DB.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if template.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to delete this template")
	}

	if err := tc.DB.Delete(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete template")
	}

	services.RecordActivity(tc.DB, utils.Logger, currentUserID(c), "delete", "template", uint(id), nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Template deleted"})
}
