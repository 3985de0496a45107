package controllers

import (
	"time"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetStats aggregates the headline counters of the dashboard.
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	var contentCount, verifiedCount, materialCount, userCount, courseCount int64

	if err := dc.DB.Model(&models.Content{}).Count(&contentCount).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	dc.DB.Model(&models.Content{}).
		Where("verification_status = ?", models.VerificationVerified).
		Count(&verifiedCount)
	dc.DB.Model(&models.StudyMaterial{}).Count(&materialCount)
	dc.DB.Model(&models.User{}).Count(&userCount)
	dc.DB.Model(&models.Course{}).Count(&courseCount)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"content_count":          contentCount,
		"verified_content_count": verifiedCount,
		"material_count":         materialCount,
		"user_count":             userCount,
		"course_count":           courseCount,
	})
}

type activityView struct {
	ID         uint           `json:"id"`
	UserID     uint           `json:"user_id"`
	Username   string         `json:"username"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}

// GetActivities lists the hundred most recent audit records with the acting
// user's name resolved.
func (dc *DashboardController) GetActivities(c *fiber.Ctx) error {
	var activities []activityView
	err := dc.DB.Table("activities").
		Select("activities.id, activities.user_id, users.username, activities.action, activities.entity_type, activities.entity_id, activities.details, activities.created_at").
		Joins("LEFT JOIN users ON users.id = activities.user_id").
		Order("activities.created_at desc, activities.id desc").
		Limit(100).
		Scan(&activities).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, activities)
}

// Health is the unauthenticated liveness probe.
func (dc *DashboardController) Health(c *fiber.Ctx) error {
	sqlDB, err := dc.DB.DB()
	dbStatus := "ok"
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": dbStatus,
	})
}
