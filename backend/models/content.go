package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Verification states of a content artifact.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
	VerificationInReview = "in_review"
)

type Content struct {
	gorm.Model
	Title              string         `gorm:"not null" json:"title"`
	Description        string         `gorm:"type:text;not null" json:"description"`
	Type               string         `gorm:"not null" json:"type"` // academic_paper, assessment, video, lecture, course
	QaqfLevel          int            `gorm:"not null" json:"qaqf_level"`
	ModuleCode         string         `json:"module_code"`
	CreatedByUserID    uint           `gorm:"not null" json:"created_by_user_id"`
	VerificationStatus string         `gorm:"not null;default:pending" json:"verification_status"`
	VerifiedByUserID   *uint          `json:"verified_by_user_id"`
	Content            string         `gorm:"type:text;not null" json:"content"`
	Characteristics    datatypes.JSON `json:"characteristics"`
}

type StudyMaterial struct {
	gorm.Model
	Title              string         `gorm:"not null" json:"title"`
	Description        string         `gorm:"type:text;not null" json:"description"`
	Type               string         `gorm:"not null" json:"type"` // document, video, audio, link
	QaqfLevel          int            `gorm:"not null" json:"qaqf_level"`
	ModuleCode         string         `json:"module_code"`
	CreatedByUserID    uint           `gorm:"not null" json:"created_by_user_id"`
	VerificationStatus string         `gorm:"not null;default:pending" json:"verification_status"`
	VerifiedByUserID   *uint          `json:"verified_by_user_id"`
	Content            string         `gorm:"type:text" json:"content"`
	FileURL            string         `json:"file_url"`
	FileName           string         `json:"file_name"`
	FileSize           int64          `json:"file_size"`
	FileHash           string         `json:"file_hash"` // MD5, recorded for dedup bookkeeping
	Characteristics    datatypes.JSON `json:"characteristics"`
	Tags               datatypes.JSON `json:"tags"`
}

// Collection groups study materials by id. Referenced materials may be
// deleted out from under the collection; the ids are not guarded.
type Collection struct {
	gorm.Model
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	CreatedByUserID uint           `gorm:"not null" json:"created_by_user_id"`
	IsPublic        bool           `gorm:"default:false" json:"is_public"`
	MaterialIDs     datatypes.JSON `json:"material_ids"`
}

// Video is a generated or linked video artifact. It shares the verification
// workflow with Content but carries playback metadata instead of a body.
type Video struct {
	gorm.Model
	Title              string         `gorm:"not null" json:"title"`
	Description        string         `gorm:"type:text;not null" json:"description"`
	QaqfLevel          int            `gorm:"not null" json:"qaqf_level"`
	ModuleCode         string         `json:"module_code"`
	CreatedByUserID    uint           `gorm:"not null" json:"created_by_user_id"`
	VerificationStatus string         `gorm:"not null;default:pending" json:"verification_status"`
	VerifiedByUserID   *uint          `json:"verified_by_user_id"`
	AnimationStyle     string         `gorm:"not null" json:"animation_style"`
	Duration           string         `gorm:"not null" json:"duration"`
	Characteristics    datatypes.JSON `json:"characteristics"`
	URL                string         `json:"url"`
	ThumbnailURL       string         `json:"thumbnail_url"`
}

type Template struct {
	gorm.Model
	Name             string         `gorm:"not null" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	Type             string         `gorm:"not null" json:"type"` // lesson_plan, assessment, course_outline
	QaqfLevel        int            `gorm:"not null" json:"qaqf_level"`
	ContentStructure datatypes.JSON `gorm:"not null" json:"content_structure"`
	CreatedByUserID  uint           `gorm:"not null" json:"created_by_user_id"`
	IsPublic         bool           `gorm:"default:false" json:"is_public"`
	UsageCount       int            `gorm:"default:0" json:"usage_count"`
}
