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

// CourseController manages the course -> week -> lesson hierarchy and the
// week/lesson placement table. Deleting a parent never cascades; links to
// removed rows simply stop resolving.
type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseController(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

type courseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=active archived draft"`
}

func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Course{})
	if userID := c.QueryInt("userid"); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var courses []models.Course
	if err := query.Order("created_at desc").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	userID := currentUserID(c)
	status := req.Status
	if status == "" {
		status = "active"
	}

	course := models.Course{
		Title:       req.Title,
		UserID:      userID,
		Description: req.Description,
		Status:      status,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	services.RecordActivity(cc.DB, utils.Logger, userID, "create", "course", course.ID,
		map[string]interface{}{"title": course.Title})

	return utils.Created(c, course)
}

func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Status != nil {
		course.Status = *req.Status
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	services.RecordActivity(cc.DB, utils.Logger, currentUserID(c), "delete", "course", uint(id), nil)

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Course deleted"})
}

type weekRequest struct {
	CourseID uint   `json:"courseid" validate:"required"`
	Title    string `json:"title" validate:"required"`
}

func (cc *CourseController) GetWeeks(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Week{})
	if courseID := c.QueryInt("courseid"); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var weeks []models.Week
	if err := query.Order("id asc").Find(&weeks).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, weeks)
}

func (cc *CourseController) CreateWeek(c *fiber.Ctx) error {
	var req weekRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var course models.Course
	if err := cc.DB.First(&course, req.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	week := models.Week{CourseID: req.CourseID, Title: req.Title}
	if err := cc.DB.Create(&week).Error; err != nil {
		return utils.InternalServerError(c, "Could not create week")
	}
	return utils.Created(c, week)
}

func (cc *CourseController) GetWeek(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var week models.Week
	if err := cc.DB.First(&week, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, week)
}

func (cc *CourseController) UpdateWeek(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var week models.Week
	if err := cc.DB.First(&week, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Title *string `json:"title"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if req.Title != nil {
		week.Title = *req.Title
	}

	if err := cc.DB.Save(&week).Error; err != nil {
		return utils.InternalServerError(c, "Could not update week")
	}
	return utils.Success(c, fiber.StatusOK, week)
}

func (cc *CourseController) DeleteWeek(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var week models.Week
	if err := cc.DB.First(&week, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&week).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete week")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Week deleted"})
}

type lessonRequest struct {
	CourseID    uint   `json:"courseid" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Level       string `json:"level"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

func (cc *CourseController) GetLessons(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Lesson{})
	if courseID := c.QueryInt("courseid"); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if userID := c.QueryInt("userid"); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var lessons []models.Lesson
	if err := query.Order("id asc").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, lessons)
}

func (cc *CourseController) GetLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

func (cc *CourseController) CreateLesson(c *fiber.Ctx) error {
	var req lessonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var course models.Course
	if err := cc.DB.First(&course, req.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	lessonType := req.Type
	if lessonType == "" {
		lessonType = "lecture"
	}
	status := req.Status
	if status == "" {
		status = "pending"
	}

	lesson := models.Lesson{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Level:       req.Level,
		Description: req.Description,
		UserID:      currentUserID(c),
		Duration:    req.Duration,
		Type:        lessonType,
		Status:      status,
	}
	if err := cc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}
	return utils.Created(c, lesson)
}

func (cc *CourseController) UpdateLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		Title       *string `json:"title"`
		Level       *string `json:"level"`
		Description *string `json:"description"`
		Duration    *int    `json:"duration"`
		Type        *string `json:"type"`
		Status      *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Level != nil {
		lesson.Level = *req.Level
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Duration != nil {
		lesson.Duration = *req.Duration
	}
	if req.Type != nil {
		lesson.Type = *req.Type
	}
	if req.Status != nil {
		lesson.Status = *req.Status
	}

	if err := cc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

// UpdateLessonStatus is the single-field variant used by the review board.
func (cc *CourseController) UpdateLessonStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	lesson.Status = req.Status
	if err := cc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

func (cc *CourseController) DeleteLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Lesson deleted"})
}

type weekLessonRequest struct {
	CourseID uint `json:"courseid" validate:"required"`
	LessonID uint `json:"lessonid" validate:"required"`
	WeekID   uint `json:"weekid" validate:"required"`
	OrderNo  int  `json:"orderno"`
}

func (cc *CourseController) CreateWeekLesson(c *fiber.Ctx) error {
	var req weekLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, req.LessonID).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}
	var week models.Week
	if err := cc.DB.First(&week, req.WeekID).Error; err != nil {
		return utils.NotFound(c, "Week not found")
	}

	orderNo := req.OrderNo
	if orderNo == 0 {
		orderNo = 1
	}

	weekLesson := models.WeekLesson{
		CourseID: req.CourseID,
		LessonID: req.LessonID,
		WeekID:   req.WeekID,
		UserID:   currentUserID(c),
		OrderNo:  orderNo,
		Status:   "active",
	}
	if err := cc.DB.Create(&weekLesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create week lesson")
	}
	return utils.Created(c, weekLesson)
}

// GetWeekLessons lists the placements of a week joined with lesson details,
// in display order.
func (cc *CourseController) GetWeekLessons(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("weekid"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var rows []struct {
		ID          uint   `json:"id"`
		CourseID    uint   `json:"courseid"`
		LessonID    uint   `json:"lessonid"`
		WeekID      uint   `json:"weekid"`
		OrderNo     int    `json:"orderno"`
		Status      string `json:"status"`
		Title       string `json:"title"`
		Level       string `json:"level"`
		Description string `json:"description"`
		Duration    int    `json:"duration"`
		Type        string `json:"type"`
	}
	err = cc.DB.Table("week_lessons").
		Select("week_lessons.id, week_lessons.course_id, week_lessons.lesson_id, week_lessons.week_id, week_lessons.order_no, week_lessons.status, lessons.title, lessons.level, lessons.description, lessons.duration, lessons.type").
		Joins("JOIN lessons ON lessons.id = week_lessons.lesson_id AND lessons.deleted_at IS NULL").
		Where("week_lessons.week_id = ? AND week_lessons.deleted_at IS NULL", weekID).
		Order("week_lessons.order_no asc").
		Scan(&rows).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, rows)
}

func (cc *CourseController) UpdateWeekLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week lesson ID")
	}

	var weekLesson models.WeekLesson
	if err := cc.DB.First(&weekLesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var req struct {
		WeekID  *uint   `json:"weekid"`
		OrderNo *int    `json:"orderno"`
		Status  *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.WeekID != nil {
		weekLesson.WeekID = *req.WeekID
	}
	if req.OrderNo != nil {
		weekLesson.OrderNo = *req.OrderNo
	}
	if req.Status != nil {
		weekLesson.Status = *req.Status
	}

	if err := cc.DB.Save(&weekLesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update week lesson")
	}
	return utils.Success(c, fiber.StatusOK, weekLesson)
}

func (cc *CourseController) DeleteWeekLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week lesson ID")
	}

	var weekLesson models.WeekLesson
	if err := cc.DB.First(&weekLesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&weekLesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete week lesson")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Week lesson deleted"})
}

// reorderItem allows orderno 0 and duplicates; only negative orders are
// rejected.
type reorderItem struct {
	ID      uint `json:"id" validate:"required"`
	OrderNo int  `json:"orderno" validate:"min=0"`
}

// ReorderWeekLessons applies order updates one row at a time. Items naming
// unknown rows are reported but do not roll back the rest.
func (cc *CourseController) ReorderWeekLessons(c *fiber.Ctx) error {
	var req struct {
		Orders []reorderItem `json:"orders" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	updated := 0
	var failed []uint
	for _, item := range req.Orders {
		result := cc.DB.Model(&models.WeekLesson{}).
			Where("id = ?", item.ID).
			Update("order_no", item.OrderNo)
		if result.Error != nil || result.RowsAffected == 0 {
			failed = append(failed, item.ID)
			continue
		}
		updated++
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"updated": updated,
		"failed":  failed,
	})
}
