package controllers

import (
	"fmt"
	"strings"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/services"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AIController fronts the generation backend. Every generation endpoint
// answers 200 with a usable artifact even when the backend is down; only
// invalid input is rejected.
type AIController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Ollama *services.OllamaService
}

func NewAIController(db *gorm.DB, cfg *config.Config, ollama *services.OllamaService) *AIController {
	return &AIController{DB: db, Cfg: cfg, Ollama: ollama}
}

// GenerateContent produces study content or a course outline. When the
// request asks for plain content, the artifact is also persisted as a
// pending lesson so it shows up in the review queue.
func (ai *AIController) GenerateContent(c *fiber.Ctx) error {
	var req services.ContentGenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	generated := ai.Ollama.GenerateContent(c.Context(), &req)
	userID := currentUserID(c)

	var lessonID uint
	if req.GenerationType == "content" {
		lesson := models.Lesson{
			CourseID:    0,
			Title:       req.Title,
			Level:       fmt.Sprintf("%d", req.QaqfLevel),
			Description: generated,
			UserID:      userID,
			Type:        req.ContentType,
			Status:      "pending",
		}
		if err := ai.DB.Create(&lesson).Error; err != nil {
			utils.Logger.Printf("could not persist generated lesson: %v", err)
		} else {
			lessonID = lesson.ID
		}
	}

	services.RecordActivity(ai.DB, utils.Logger, userID, "generate", "content", lessonID,
		map[string]interface{}{"generation_type": req.GenerationType, "subject_area": req.SubjectArea})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"generated_content": generated,
		"generation_type":   req.GenerationType,
		"qaqf_level":        req.QaqfLevel,
		"subject_area":      req.SubjectArea,
		"lesson_id":         lessonID,
	})
}

// GenerateAssessment produces a quiz, exam or similar assessment artifact.
func (ai *AIController) GenerateAssessment(c *fiber.Ctx) error {
	var req services.AssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	generated := ai.Ollama.GenerateAssessment(c.Context(), &req)

	services.RecordActivity(ai.DB, utils.Logger, currentUserID(c), "generate", "assessment", 0,
		map[string]interface{}{"generation_type": req.GenerationType, "subject": req.Subject})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"generated_content": generated,
		"generation_type":   req.GenerationType,
		"qaqf_level":        req.QaqfLevel,
		"subject":           req.Subject,
	})
}

type assessContentRequest struct {
	Content   string `json:"content" validate:"required"`
	QaqfLevel int    `json:"qaqf_level" validate:"omitempty,min=1,max=9"`
	Subject   string `json:"subject"`
}

// AssessContent asks the backend to review existing content against the
// taxonomy. On failure it falls back to a fixed review template so the
// caller always gets a report.
func (ai *AIController) AssessContent(c *fiber.Ctx) error {
	var req assessContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if req.QaqfLevel == 0 {
		req.QaqfLevel = 1
	}
	if req.Subject == "" {
		req.Subject = "General Education"
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Review the following educational content against QAQF Level %d expectations for %s.\n\n", req.QaqfLevel, req.Subject)
	prompt.WriteString("Assess clarity, coherence, relevance and level-appropriateness, then give concrete improvement suggestions.\n\n")
	fmt.Fprintf(&prompt, "Content:\n%s\n", req.Content)

	review, err := ai.Ollama.Generate(c.Context(), prompt.String())
	if err != nil {
		utils.Logger.Printf("content assessment failed, using fallback: %v", err)
		review = fallbackReview(req.Subject, req.QaqfLevel)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"assessment": strings.TrimSpace(review),
		"qaqf_level": req.QaqfLevel,
		"subject":    req.Subject,
	})
}

func fallbackReview(subject string, level int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Content Review - QAQF Level %d\n\n", level)
	b.WriteString("## Overall Assessment\n")
	fmt.Fprintf(&b, "The submitted %s content has been recorded for review. Automated analysis is currently unavailable, so the points below are general guidance for this level.\n\n", subject)
	b.WriteString("## Review Checklist\n")
	b.WriteString("- Clarity: learning objectives should be stated up front\n")
	fmt.Fprintf(&b, "- Coherence: structure should progress logically through Level %d outcomes\n", level)
	fmt.Fprintf(&b, "- Relevance: examples should connect to %s practice\n", subject)
	b.WriteString("- Assessment alignment: each objective should map to an assessment activity\n\n")
	b.WriteString("## Recommendation\n")
	b.WriteString("Submit the content for manual verification by a reviewer.\n")
	return b.String()
}

// GenerateCourse produces a fully structured course outline.
func (ai *AIController) GenerateCourse(c *fiber.Ctx) error {
	var req services.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	outline := ai.Ollama.GenerateCourse(c.Context(), &req)

	services.RecordActivity(ai.DB, utils.Logger, currentUserID(c), "generate", "course", 0,
		map[string]interface{}{"course_title": req.CourseTitle})

	return utils.Success(c, fiber.StatusOK, outline)
}

// Status reports whether the generation backend is reachable.
func (ai *AIController) Status(c *fiber.Ctx) error {
	available := ai.Ollama.IsAvailable(c.Context())
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"ollama_available": available,
		"model":            ai.Ollama.Model,
		"base_url":         ai.Ollama.BaseURL,
	})
}
