package services

import (
	"encoding/json"
	"log"

	"qaqfplatform/backend/models"

	"gorm.io/gorm"
)

// RecordActivity appends an audit record for a mutating operation. The write
// is best effort: a failure is logged and never propagated, so it cannot
// fail the request that triggered it.
func RecordActivity(db *gorm.DB, logger *log.Logger, userID uint, action, entityType string, entityID uint, details map[string]interface{}) {
	activity := models.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			logger.Printf("activity details not serializable: %v", err)
		} else {
			activity.Details = raw
		}
	}

	if err := db.Create(&activity).Error; err != nil {
		logger.Printf("failed to record activity %s/%s: %v", action, entityType, err)
	}
}
