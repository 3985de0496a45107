package controllers

import (
	"encoding/json"
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

type ContentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewContentController(db *gorm.DB, cfg *config.Config) *ContentController {
	return &ContentController{DB: db, Cfg: cfg}
}

type contentRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Type            string   `json:"type" validate:"required"`
	QaqfLevel       int      `json:"qaqf_level" validate:"required,min=1,max=9"`
	ModuleCode      string   `json:"module_code"`
	Content         string   `json:"content" validate:"required"`
	Characteristics []string `json:"characteristics"`
}

func toJSONArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return raw
}

func (cc *ContentController) GetContents(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Content{})

	if status := c.Query("verification_status"); status != "" {
		query = query.Where("verification_status = ?", status)
	}
	if level := c.QueryInt("qaqf_level"); level > 0 {
		query = query.Where("qaqf_level = ?", level)
	}
	if contentType := c.Query("type"); contentType != "" {
		query = query.Where("type = ?", contentType)
	}

	var contents []models.Content
	if err := query.Order("created_at desc").Find(&contents).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, contents)
}

func (cc *ContentController) GetContent(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	var content models.Content
	if err := cc.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, content)
}

func (cc *ContentController) CreateContent(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	userID := currentUserID(c)
	content := models.Content{
		Title:              req.Title,
		Description:        req.Description,
		Type:               req.Type,
		QaqfLevel:          req.QaqfLevel,
		ModuleCode:         req.ModuleCode,
		CreatedByUserID:    userID,
		VerificationStatus: models.VerificationPending,
		Content:            req.Content,
		Characteristics:    toJSONArray(req.Characteristics),
	}
	if err := cc.DB.Create(&content).Error; err != nil {
		return utils.InternalServerError(c, "Could not create content")
	}

	services.RecordActivity(cc.DB, utils.Logger, userID, "create", "content", content.ID,
		map[string]interface{}{"title": content.Title})

	return utils.Created(c, content)
}

// UpdateContent applies a partial update; absent fields keep their values.
func (cc *ContentController) UpdateContent(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	var content models.Content
	if err := cc.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Title           *string   `json:"title"`
		Description     *string   `json:"description"`
		Type            *string   `json:"type"`
		QaqfLevel       *int      `json:"qaqf_level"`
		ModuleCode      *string   `json:"module_code"`
		Content         *string   `json:"content"`
		Characteristics *[]string `json:"characteristics"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.QaqfLevel != nil && (*req.QaqfLevel < 1 || *req.QaqfLevel > 9) {
		return utils.ValidationError(c, map[string]string{"qaqf_level": "Must be between 1 and 9"})
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Description != nil {
		content.Description = *req.Description
	}
	if req.Type != nil {
		content.Type = *req.Type
	}
	if req.QaqfLevel != nil {
		content.QaqfLevel = *req.QaqfLevel
	}
	if req.ModuleCode != nil {
		content.ModuleCode = *req.ModuleCode
	}
	if req.Content != nil {
		content.Content = *req.Content
	}
	if req.Characteristics != nil {
		content.Characteristics = toJSONArray(*req.Characteristics)
	}

	if err := cc.DB.Save(&content).Error; err != nil {
		return utils.InternalServerError(c, "Could not update content")
	}

	services.RecordActivity(cc.DB, utils.Logger, currentUserID(c), "update", "content", content.ID, nil)

	return utils.Success(c, fiber.StatusOK, content)
}

// UpdateVerification moves content through the review workflow and records
// who made the decision.
func (cc *ContentController) UpdateVerification(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	var req struct {
		VerificationStatus string `json:"verification_status" validate:"required,oneof=pending verified rejected in_review"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var content models.Content
	if err := cc.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	userID := currentUserID(c)
	content.VerificationStatus = req.VerificationStatus
	if req.VerificationStatus == models.VerificationVerified || req.VerificationStatus == models.VerificationRejected {
		content.VerifiedByUserID = &userID
	} else {
		content.VerifiedByUserID = nil
	}

	if err := cc.DB.Save(&content).Error; err != nil {
		return utils.InternalServerError(c, "Could not update content")
	}

	services.RecordActivity(cc.DB, utils.Logger, userID, "verify", "content", content.ID,
		map[string]interface{}{"verification_status": req.VerificationStatus})

	return utils.Success(c, fiber.StatusOK, content)
}

func (cc *ContentController) DeleteContent(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid content ID")
	}

	var content models.Content
	if err := cc.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Content not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&content).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete content")
	}

	services.RecordActivity(cc.DB, utils.Logger, currentUserID(c), "delete", "content", uint(id), nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Content deleted"})
}
