package controllers

import (
	"errors"
	"strconv"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QaqfController serves the QAQF taxonomy. Levels and characteristics are
// seeded at startup; mutating them is an admin operation.
type QaqfController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQaqfController(db *gorm.DB, cfg *config.Config) *QaqfController {
	return &QaqfController{DB: db, Cfg: cfg}
}

func (qc *QaqfController) GetLevels(c *fiber.Ctx) error {
	var levels []models.QaqfLevel
	if err := qc.DB.Order("level asc").Find(&levels).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, levels)
}

func (qc *QaqfController) GetCharacteristics(c *fiber.Ctx) error {
	var characteristics []models.QaqfCharacteristic
	if err := qc.DB.Order("name asc").Find(&characteristics).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, characteristics)
}

type levelRequest struct {
	Level       int    `json:"level" validate:"required,min=1,max=9"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (qc *QaqfController) CreateLevel(c *fiber.Ctx) error {
	var req levelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var existing models.QaqfLevel
	if err := qc.DB.Where("level = ?", req.Level).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Level already exists")
	}

	level := models.QaqfLevel{Level: req.Level, Name: req.Name, Description: req.Description}
	if err := qc.DB.Create(&level).Error; err != nil {
		return utils.InternalServerError(c, "Could not create level")
	}
	return utils.Created(c, level)
}

func (qc *QaqfController) UpdateLevel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid level ID")
	}

	var level models.QaqfLevel
	if err := qc.DB.First(&level, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Level not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if req.Name != nil {
		level.Name = *req.Name
	}
	if req.Description != nil {
		level.Description = *req.Description
	}

	if err := qc.DB.Save(&level).Error; err != nil {
		return utils.InternalServerError(c, "Could not update level")
	}
	return utils.Success(c, fiber.StatusOK, level)
}

func (qc *QaqfController) DeleteLevel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid level ID")
	}

	var level models.QaqfLevel
	if err := qc.DB.First(&level, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Level not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := qc.DB.Delete(&level).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete level")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Level deleted"})
}

type characteristicRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

func (qc *QaqfController) CreateCharacteristic(c *fiber.Ctx) error {
	var req characteristicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var existing models.QaqfCharacteristic
	if err := qc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Characteristic already exists")
	}

	characteristic := models.QaqfCharacteristic{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := qc.DB.Create(&characteristic).Error; err != nil {
		return utils.InternalServerError(c, "Could not create characteristic")
	}
	return utils.Created(c, characteristic)
}

func (qc *QaqfController) UpdateCharacteristic(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid characteristic ID")
	}

	var characteristic models.QaqfCharacteristic
	if err := qc.DB.First(&characteristic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Characteristic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.Name != nil && *req.Name != characteristic.Name {
		var existing models.QaqfCharacteristic
		if err := qc.DB.Where("name = ?", *req.Name).First(&existing).Error; err == nil {
			return utils.Conflict(c, "Characteristic already exists")
		}
		characteristic.Name = *req.Name
	}
	if req.Description != nil {
		characteristic.Description = *req.Description
	}
	if req.Category != nil {
		characteristic.Category = *req.Category
	}

	if err := qc.DB.Save(&characteristic).Error; err != nil {
		return utils.InternalServerError(c, "Could not update characteristic")
	}
	return utils.Success(c, fiber.StatusOK, characteristic)
}

func (qc *QaqfController) DeleteCharacteristic(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid characteristic ID")
	}

	var characteristic models.QaqfCharacteristic
	if err := qc.DB.First(&characteristic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Characteristic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := qc.DB.Delete(&characteristic).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete characteristic")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Characteristic deleted"})
}
