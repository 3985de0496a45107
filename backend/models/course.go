package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	UserID      uint   `gorm:"not null" json:"userid"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"default:active" json:"status"`
}

type Week struct {
	gorm.Model
	CourseID uint   `gorm:"not null" json:"courseid"`
	Title    string `gorm:"not null" json:"title"`
}

type Lesson struct {
	gorm.Model
	CourseID    uint   `gorm:"not null" json:"courseid"`
	Title       string `gorm:"not null" json:"title"`
	Level       string `json:"level"`
	Description string `gorm:"type:text" json:"description"`
	UserID      uint   `gorm:"not null" json:"userid"`
	Duration    int    `gorm:"default:0" json:"duration"`
	Type        string `gorm:"default:lecture" json:"type"`
	Status      string `gorm:"default:pending" json:"status"`
}

// WeekLesson places a lesson inside a week. OrderNo drives display order;
// duplicate order numbers are allowed. Deleting the lesson or week does not
// remove the link.
type WeekLesson struct {
	gorm.Model
	CourseID uint   `gorm:"not null" json:"courseid"`
	LessonID uint   `gorm:"not null" json:"lessonid"`
	WeekID   uint   `gorm:"not null" json:"weekid"`
	UserID   uint   `gorm:"not null" json:"userid"`
	OrderNo  int    `gorm:"default:1" json:"orderno"`
	Status   string `gorm:"default:active" json:"status"`
}
