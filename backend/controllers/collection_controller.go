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
	"gorm.io/gorm"
)

// CollectionController manages named groupings of study materials.
// Visibility: a caller sees public collections and their own; admins see all.
type CollectionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCollectionController(db *gorm.DB, cfg *config.Config) *CollectionController {
	return &CollectionController{DB: db, Cfg: cfg}
}

type collectionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	MaterialIDs []uint `json:"material_ids"`
}

func toIDArray(ids []uint) []byte {
	if ids == nil {
		ids = []uint{}
	}
	raw, _ := json.Marshal(ids)
	return raw
}

func (cc *CollectionController) visibleScope(c *fiber.Ctx) *gorm.DB {
	query := cc.DB.Model(&models.Collection{})
	if !isAdmin(c) {
		query = query.Where("is_public = ? OR created_by_user_id = ?", true, currentUserID(c))
	}
	return query
}

func (cc *CollectionController) GetCollections(c *fiber.Ctx) error {
	var collections []models.Collection
	if err := cc.visibleScope(c).Order("created_at desc").Find(&collections).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, collections)
}

func (cc *CollectionController) GetCollection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid collection ID")
	}

	var collection models.Collection
	if err := cc.DB.First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Collection not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !collection.IsPublic && collection.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to view this collection")
	}

	// Resolve still-existing materials; ids pointing at deleted rows are
	// silently dropped from the view.
	var ids []uint
	_ = json.Unmarshal(collection.MaterialIDs, &ids)
	var materials []models.StudyMaterial
	if len(ids) > 0 {
		if err := cc.DB.Where("id IN ?", ids).Find(&materials).Error; err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"collection": collection,
		"materials":  materials,
	})
}

func (cc *CollectionController) CreateCollection(c *fiber.Ctx) error {
	var req collectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	userID := currentUserID(c)
	collection := models.Collection{
		Name:            req.Name,
		Description:     req.Description,
		CreatedByUserID: userID,
		IsPublic:        req.IsPublic,
		MaterialIDs:     toIDArray(req.MaterialIDs),
	}
	if err := cc.DB.Create(&collection).Error; err != nil {
		return utils.InternalServerError(c, "Could not create collection")
	}

	services.RecordActivity(cc.DB, utils.Logger, userID, "create", "collection", collection.ID,
		map[string]interface{}{"name": collection.Name})

	return utils.Created(c, collection)
}

func (cc *CollectionController) UpdateCollection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid collection ID")
	}

	var collection models.Collection
	if err := cc.DB.First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Collection not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if collection.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to modify this collection")
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"is_public"`
		MaterialIDs *[]uint `json:"material_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.Name != nil {
		collection.Name = *req.Name
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}
	if req.IsPublic != nil {
		collection.IsPublic = *req.IsPublic
	}
	if req.MaterialIDs != nil {
		collection.MaterialIDs = toIDArray(*req.MaterialIDs)
	}

	if err := cc.DB.Save(&collection).Error; err != nil {
		return utils.InternalServerError(c, "Could not update collection")
	}
	return utils.Success(c, fiber.StatusOK, collection)
}

func (cc *CollectionController) DeleteCollection(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid collection ID")
	}

	var collection models.Collection
	if err := cc.DB.First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Collection not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if collection.CreatedByUserID != currentUserID(c) && !isAdmin(c) {
		return utils.Forbidden(c, "Not allowed to delete this collection")
	}

	if err := cc.DB.Delete(&collection).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete collection")
	}

	services.RecordActivity(cc.DB, utils.Logger, currentUserID(c), "delete", "collection", uint(id), nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Collection deleted"})
}
