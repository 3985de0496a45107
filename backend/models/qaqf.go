package models

import "gorm.io/gorm"

// QaqfLevel is one of the nine proficiency levels of the QAQF framework.
type QaqfLevel struct {
	gorm.Model
	Level       int    `gorm:"unique;not null" json:"level"` // 1..9
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

// QaqfCharacteristic is a named pedagogical quality tag attachable to content.
type QaqfCharacteristic struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null" json:"category"` // cognitive, application, interpersonal, personal
}
