package controllers

import (
	"errors"
	"strconv"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/services"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VideoController manages video artifacts. They follow the same pending ->
// verified workflow as content.
type VideoController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewVideoController(db *gorm.DB, cfg *config.Config) *VideoController {
	return &VideoController{DB: db, Cfg: cfg}
}

type videoRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	QaqfLevel       int      `json:"qaqf_level" validate:"required,min=1,max=9"`
	ModuleCode      string   `json:"module_code"`
	AnimationStyle  string   `json:"animation_style" validate:"required"`
	Duration        string   `json:"duration" validate:"required"`
	Characteristics []string `json:"characteristics"`
	URL             string   `json:"url"`
	ThumbnailURL    string   `json:"thumbnail_url"`
}

func (vc *VideoController) GetVideos(c *fiber.Ctx) error {
	query := vc.DB.Model(&models.Video{})
	if level := c.QueryInt("qaqf_level"); level > 0 {
		query = query.Where("qaqf_level = ?", level)
	}
	if status := c.Query("verification_status"); status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var videos []models.Video
	if err := query.Order("created_at desc").Find(&videos).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, videos)
}

func (vc *VideoController) GetVideo(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid video ID")
	}

	var video models.Video
	if err := vc.DB.First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Video not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, video)
}

func (vc *VideoController) CreateVideo(c *fiber.Ctx) error {
	var req videoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	userID := currentUserID(c)
	video := models.Video{
		Title:              req.Title,
		Description:        req.Description,
		QaqfLevel:          req.QaqfLevel,
		ModuleCode:         req.ModuleCode,
		CreatedByUserID:    userID,
		VerificationStatus: models.VerificationPending,
		AnimationStyle:     req.AnimationStyle,
		Duration:           req.Duration,
		Characteristics:    toJSONArray(req.Characteristics),
		URL:                req.URL,
		ThumbnailURL:       req.ThumbnailURL,
	}
	if err := vc.DB.Create(&video).Error; err != nil {
		return utils.InternalServerError(c, "Could not create video")
	}

	services.RecordActivity(vc.DB, utils.Logger, userID, "create", "video", video.ID,
		map[string]interface{}{"title": video.Title})

	return utils.Created(c, video)
}

// UpdateVideo applies a partial update; absent fields keep their values. A
// verification_status change records the deciding user, mirroring content.
func (vc *VideoController) UpdateVideo(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid video ID")
	}

	var video models.Video
	if err := vc.DB.First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Video not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Title              *string   `json:"title"`
		Description        *string   `json:"description"`
		QaqfLevel          *int      `json:"qaqf_level"`
		ModuleCode         *string   `json:"module_code"`
		AnimationStyle     *string   `json:"animation_style"`
		Duration           *string   `json:"duration"`
		Characteristics    *[]string `json:"characteristics"`
		URL                *string   `json:"url"`
		ThumbnailURL       *string   `json:"thumbnail_url"`
		VerificationStatus *string   `json:"verification_status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.QaqfLevel != nil && (*req.QaqfLevel < 1 || *req.QaqfLevel > 9) {
		return utils.ValidationError(c, map[string]string{"qaqf_level": "Must be between 1 and 9"})
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.QaqfLevel != nil {
		video.QaqfLevel = *req.QaqfLevel
	}
	if req.ModuleCode != nil {
		video.ModuleCode = *req.ModuleCode
	}
	if req.AnimationStyle != nil {
		video.AnimationStyle = *req.AnimationStyle
	}
	if req.Duration != nil {
		video.Duration = *req.Duration
	}
	if req.Characteristics != nil {
		video.Characteristics = toJSONArray(*req.Characteristics)
	}
	if req.URL != nil {
		video.URL = *req.URL
	}
	if req.ThumbnailURL != nil {
		video.ThumbnailURL = *req.ThumbnailURL
	}
	if req.VerificationStatus != nil {
		switch *req.VerificationStatus {
		case models.VerificationPending, models.VerificationVerified,
			models.VerificationRejected, models.VerificationInReview:
		default:
			return utils.ValidationError(c, map[string]string{
				"verification_status": "Must be one of: pending verified rejected in_review",
			})
		}
		userID := currentUserID(c)
		video.VerificationStatus = *req.VerificationStatus
		if *req.VerificationStatus == models.VerificationVerified || *req.VerificationStatus == models.VerificationRejected {
			video.VerifiedByUserID = &userID
		} else {
			video.VerifiedByUserID = nil
		}
	}

	if err := vc.DB.Save(&video).Error; err != nil {
		return utils.InternalServerError(c, "Could not update video")
	}

	services.RecordActivity(vc.DB, utils.Logger, currentUserID(c), "update", "video", video.ID, nil)

	return utils.Success(c, fiber.StatusOK, video)
}
