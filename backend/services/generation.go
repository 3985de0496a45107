package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// QaqfLevelName maps a level number to its taxonomy name, used when
// synthesizing fallback artifacts.
var QaqfLevelName = map[int]string{
	1: "Basic Foundation",
	2: "Basic Application",
	3: "Basic Integration",
	4: "Intermediate Analysis",
	5: "Intermediate Synthesis",
	6: "Intermediate Evaluation",
	7: "Advanced Research",
	8: "Advanced Innovation",
	9: "Advanced Leadership",
}

func levelName(level int) string {
	if name, ok := QaqfLevelName[level]; ok {
		return name
	}
	return fmt.Sprintf("Level %d", level)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ContentGenerationRequest carries the recognized options of the
// content/course generation endpoint. Optional fields fall back to fixed
// defaults in applyDefaults.
type ContentGenerationRequest struct {
	GenerationType          string   `json:"generation_type"` // content or course
	ContentType             string   `json:"content_type"`
	Title                   string   `json:"title"`
	SubjectArea             string   `json:"subject_area" validate:"required"`
	QaqfLevel               int      `json:"qaqf_level" validate:"omitempty,min=1,max=9"`
	TargetAudience          string   `json:"target_audience"`
	LearningObjectives      string   `json:"learning_objectives"`
	ModuleCode              string   `json:"module_code"`
	DurationWeeks           int      `json:"duration_weeks"`
	ModulesCount            int      `json:"modules_count"`
	DeliveryMode            string   `json:"delivery_mode"`
	AdditionalInstructions  string   `json:"additional_instructions"`
	SourceContent           string   `json:"source_content"`
	AssessmentMethods       string   `json:"assessment_methods"`
	SelectedCharacteristics []string `json:"selected_characteristics"`
}

func (r *ContentGenerationRequest) applyDefaults() {
	if r.GenerationType == "" {
		r.GenerationType = "content"
	}
	r.GenerationType = strings.ToLower(r.GenerationType)
	if r.ContentType == "" {
		r.ContentType = "academic_paper"
	}
	if r.Title == "" {
		r.Title = "AI Generated Content"
	}
	if r.SubjectArea == "" {
		r.SubjectArea = "General Education"
	}
	if r.QaqfLevel == 0 {
		r.QaqfLevel = 5
	}
	if r.TargetAudience == "" {
		r.TargetAudience = "Students"
	}
	if r.LearningObjectives == "" {
		r.LearningObjectives = "Understand core concepts and apply knowledge in practical scenarios"
	}
	if r.ModuleCode == "" {
		r.ModuleCode = "GEN101"
	}
	if r.DurationWeeks == 0 {
		r.DurationWeeks = 1
	}
	if r.ModulesCount == 0 {
		r.ModulesCount = 1
	}
	if r.DeliveryMode == "" {
		r.DeliveryMode = "online"
	}
	if r.AssessmentMethods == "" {
		r.AssessmentMethods = "quizzes, assignments"
	}
	if len(r.SelectedCharacteristics) == 0 {
		r.SelectedCharacteristics = []string{"clarity", "coherence", "relevance"}
	}
}

// BuildContentPrompt assembles the instruction string for standalone content
// generation.
func BuildContentPrompt(req *ContentGenerationRequest) string {
	req.applyDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive %s for %s at QAQF Level %d.\n\n", req.ContentType, req.SubjectArea, req.QaqfLevel)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Content Type: %s\n", req.ContentType)
	fmt.Fprintf(&b, "- Subject: %s\n", req.SubjectArea)
	fmt.Fprintf(&b, "- QAQF Level: %d\n", req.QaqfLevel)
	fmt.Fprintf(&b, "- Educational Standards: Follow QAQF guidelines for Level %d\n", req.QaqfLevel)
	fmt.Fprintf(&b, "- Module Code: %s\n", req.ModuleCode)
	fmt.Fprintf(&b, "- Target Audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "- Learning Objectives: %s\n", req.LearningObjectives)
	fmt.Fprintf(&b, "- Assessment Methods: %s\n", req.AssessmentMethods)
	fmt.Fprintf(&b, "- Focus Characteristics: %s\n", strings.Join(req.SelectedCharacteristics, ", "))
	if req.SourceContent != "" {
		fmt.Fprintf(&b, "- Source Material: %s\n", req.SourceContent)
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "- Additional Instructions: %s\n", req.AdditionalInstructions)
	}
	b.WriteString("\nGenerate well-structured, educational content with:\n")
	b.WriteString("1. Clear learning objectives\n")
	b.WriteString("2. Comprehensive topic coverage\n")
	b.WriteString("3. Level-appropriate complexity\n")
	b.WriteString("4. Assessment alignment\n")
	b.WriteString("5. Practical applications\n\n")
	b.WriteString("Format professionally with proper headings and structure.\n")
	return b.String()
}

// BuildCourseOutlinePrompt assembles the instruction string for full-course
// generation via the generate-content endpoint.
func BuildCourseOutlinePrompt(req *ContentGenerationRequest) string {
	req.applyDefaults()

	fullTitle := fmt.Sprintf("%s Course - QAQF Level %d", req.SubjectArea, req.QaqfLevel)

	var b strings.Builder
	fmt.Fprintf(&b, "Create a comprehensive course outline titled '%s'.\n\n", fullTitle)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", req.SubjectArea)
	fmt.Fprintf(&b, "- QAQF Level: %d\n", req.QaqfLevel)
	fmt.Fprintf(&b, "- Duration: %d week(s)\n", req.DurationWeeks)
	fmt.Fprintf(&b, "- Module Count: %d\n", req.ModulesCount)
	fmt.Fprintf(&b, "- Delivery Mode: %s\n", req.DeliveryMode)
	fmt.Fprintf(&b, "- Target Audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "- Learning Objectives: %s\n", req.LearningObjectives)
	fmt.Fprintf(&b, "- Assessment Methods: %s\n", req.AssessmentMethods)
	if req.SourceContent != "" {
		fmt.Fprintf(&b, "- Source Material: %s\n", req.SourceContent)
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "- Additional Instructions: %s\n", req.AdditionalInstructions)
	}
	b.WriteString("\nStructure the course with:\n")
	b.WriteString("1. Weekly module breakdown\n")
	b.WriteString("2. Aligned learning outcomes\n")
	b.WriteString("3. Level-appropriate instructional methods\n")
	b.WriteString("4. Embedded assessment strategies\n")
	b.WriteString("5. Real-world application opportunities\n\n")
	fmt.Fprintf(&b, "Ensure the outline is clear, structured, and adheres to QAQF Level %d standards.\n", req.QaqfLevel)
	return b.String()
}

// GenerateContent runs a content or course-outline generation request and
// always returns a non-empty artifact: backend failures of any kind are
// recovered into FallbackContent.
func (s *OllamaService) GenerateContent(ctx context.Context, req *ContentGenerationRequest) string {
	req.applyDefaults()

	var prompt string
	if req.GenerationType == "course" {
		prompt = BuildCourseOutlinePrompt(req)
	} else {
		prompt = BuildContentPrompt(req)
	}

	generated, err := s.Generate(ctx, prompt)
	if err != nil {
		s.Logger.Printf("content generation failed, using fallback: %v", err)
		return FallbackContent(req)
	}
	return strings.TrimSpace(generated)
}

// FallbackContent deterministically synthesizes a structured placeholder
// artifact from the request fields.
func FallbackContent(req *ContentGenerationRequest) string {
	req.applyDefaults()

	name := levelName(req.QaqfLevel)
	kind := strings.ReplaceAll(req.ContentType, "_", " ")
	title := fmt.Sprintf("%s - %s %s", req.SubjectArea, name, titleCase(kind))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("## Learning Objectives\n")
	fmt.Fprintf(&b, "By the end of this %s, learners will be able to:\n", kind)
	fmt.Fprintf(&b, "- Understand key concepts related to %s\n", req.SubjectArea)
	fmt.Fprintf(&b, "- Apply knowledge at QAQF %s level\n", name)
	b.WriteString("- Demonstrate practical skills in the subject area\n\n")
	b.WriteString("## Introduction\n")
	fmt.Fprintf(&b, "This %s covers essential aspects of %s designed for %s learners.\n\n", kind, req.SubjectArea, name)
	b.WriteString("## Main Content\n")
	fmt.Fprintf(&b, "Content structure appropriate for QAQF Level %d.\n\n", req.QaqfLevel)
	b.WriteString("### Key Topics\n")
	b.WriteString("1. Fundamental concepts\n")
	b.WriteString("2. Practical applications\n")
	b.WriteString("3. Assessment criteria\n\n")
	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "This %s provides a comprehensive overview of %s at the appropriate academic level.\n\n", kind, req.SubjectArea)
	b.WriteString("## Further Reading\n")
	b.WriteString("- Additional resources for extended learning\n")
	b.WriteString("- References to support materials\n")
	return strings.TrimSpace(b.String())
}

// AssessmentRequest carries the options of the assessment-generation
// endpoints.
type AssessmentRequest struct {
	GenerationType string `json:"generation_type"`
	Material       string `json:"material"`
	QaqfLevel      int    `json:"qaqf_level" validate:"omitempty,min=1,max=9"`
	Subject        string `json:"subject" validate:"required"`
	UserQuery      string `json:"userquery"`
}

func (r *AssessmentRequest) applyDefaults() {
	if r.GenerationType == "" {
		r.GenerationType = "quiz"
	}
	r.GenerationType = strings.ToLower(r.GenerationType)
	if r.QaqfLevel == 0 {
		r.QaqfLevel = 1
	}
}

// BuildAssessmentPrompt assembles the instruction string for assessment
// generation, with or without supplied source material.
func BuildAssessmentPrompt(req *AssessmentRequest) string {
	req.applyDefaults()

	var b strings.Builder
	if req.Material == "" || strings.EqualFold(req.Material, "nomaterial") {
		fmt.Fprintf(&b, "Create a comprehensive %s related to %s at QAQF Level %d.\n", req.GenerationType, req.Subject, req.QaqfLevel)
	} else {
		fmt.Fprintf(&b, "Create a comprehensive %s for %s at QAQF Level %d based on the provided material: %s.\n", req.GenerationType, req.Subject, req.QaqfLevel, req.Material)
	}
	b.WriteString("Format professionally with proper headings and structure.\n")
	b.WriteString("Ensure the content is engaging and suitable for learning purposes.\n")
	if req.UserQuery != "" {
		fmt.Fprintf(&b, "User query: %s\n", req.UserQuery)
	}
	return b.String()
}

// GenerateAssessment runs an assessment generation request under the same
// fallback contract as GenerateContent.
func (s *OllamaService) GenerateAssessment(ctx context.Context, req *AssessmentRequest) string {
	req.applyDefaults()

	generated, err := s.Generate(ctx, BuildAssessmentPrompt(req))
	if err != nil {
		s.Logger.Printf("assessment generation failed, using fallback: %v", err)
		return FallbackAssessment(req)
	}
	return strings.TrimSpace(generated)
}

// FallbackAssessment synthesizes a fixed-structure assessment paper.
func FallbackAssessment(req *AssessmentRequest) string {
	req.applyDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Assessment - QAQF Level %d\n\n", req.Subject, req.QaqfLevel)
	b.WriteString("## Instructions\n")
	fmt.Fprintf(&b, "This %s assesses your understanding of %s concepts at QAQF Level %d. Please read all questions carefully and provide complete answers.\n\n", req.GenerationType, req.Subject, req.QaqfLevel)
	b.WriteString("## Section A: Multiple Choice Questions (40 points)\n\n")
	fmt.Fprintf(&b, "1. Which of the following best describes the core concept of %s?\n", req.Subject)
	b.WriteString("   a) Basic understanding\n   b) Intermediate application\n   c) Advanced synthesis\n   d) Expert evaluation\n\n")
	fmt.Fprintf(&b, "2. In the context of %s, what is the most important consideration?\n", req.Subject)
	b.WriteString("   a) Theoretical framework\n   b) Practical application\n   c) Historical context\n   d) Future implications\n\n")
	b.WriteString("## Section B: Short Answer Questions (30 points)\n\n")
	fmt.Fprintf(&b, "3. Explain the key principles of %s and their relevance to Level %d learning outcomes. (15 points)\n\n", req.Subject, req.QaqfLevel)
	fmt.Fprintf(&b, "4. Describe how you would apply %s concepts in a real-world scenario. (15 points)\n\n", req.Subject)
	b.WriteString("## Section C: Extended Response (30 points)\n\n")
	fmt.Fprintf(&b, "5. Critically analyze the importance of %s in your field of study. Your response should demonstrate Level %d understanding.\n\n", req.Subject, req.QaqfLevel)
	b.WriteString("## Marking Criteria\n")
	b.WriteString("- Excellent (90-100%): Comprehensive understanding with critical analysis\n")
	b.WriteString("- Good (80-89%): Solid understanding with some analytical depth\n")
	b.WriteString("- Satisfactory (70-79%): Basic understanding with limited analysis\n")
	b.WriteString("- Needs Improvement (60-69%): Minimal understanding, requires additional support\n")
	b.WriteString("- Unsatisfactory (Below 60%): Insufficient understanding of core concepts\n")
	return strings.TrimSpace(b.String())
}

// CourseRequest is the typed request of the structured course generator.
type CourseRequest struct {
	CourseTitle        string   `json:"course_title" validate:"required,min=3,max=200"`
	TargetAudience     string   `json:"target_audience" validate:"required,min=3,max=100"`
	DifficultyLevel    string   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	LearningObjectives []string `json:"learning_objectives" validate:"required,min=1,max=10"`
	DurationWeeks      int      `json:"duration_weeks" validate:"omitempty,min=1,max=52"`
	ModulesCount       int      `json:"modules_count" validate:"omitempty,min=3,max=20"`
}

func (r *CourseRequest) applyDefaults() {
	if r.DurationWeeks == 0 {
		r.DurationWeeks = 8
	}
	if r.ModulesCount == 0 {
		r.ModulesCount = 6
	}
}

// CourseLesson is an individual lesson inside a generated module.
type CourseLesson struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	DurationMinutes  int      `json:"duration_minutes"`
	LearningOutcomes []string `json:"learning_outcomes"`
	KeyConcepts      []string `json:"key_concepts"`
}

// CourseModule is one module of a generated course outline.
type CourseModule struct {
	ModuleNumber   int            `json:"module_number"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	DurationWeeks  float64        `json:"duration_weeks"`
	Lessons        []CourseLesson `json:"lessons"`
	AssessmentType string         `json:"assessment_type"`
}

// CourseOutline is the fixed schema a course generation must satisfy.
type CourseOutline struct {
	CourseTitle        string         `json:"course_title"`
	Description        string         `json:"description"`
	TargetAudience     string         `json:"target_audience"`
	DifficultyLevel    string         `json:"difficulty_level"`
	TotalDurationWeeks int            `json:"total_duration_weeks"`
	TotalLessons       int            `json:"total_lessons"`
	LearningObjectives []string       `json:"learning_objectives"`
	Prerequisites      []string       `json:"prerequisites"`
	Modules            []CourseModule `json:"modules"`
	AssessmentStrategy string         `json:"assessment_strategy"`
	Resources          []string       `json:"resources"`
}

// BuildCoursePrompt assembles the JSON-schema prompt for structured course
// generation.
func BuildCoursePrompt(req *CourseRequest) string {
	req.applyDefaults()

	objectives, _ := json.Marshal(req.LearningObjectives)

	var b strings.Builder
	b.WriteString("Generate a comprehensive course structure for educational content. Return response as valid JSON only.\n\n")
	b.WriteString("Course Parameters:\n")
	fmt.Fprintf(&b, "- Title: %s\n", req.CourseTitle)
	fmt.Fprintf(&b, "- Target Audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "- Difficulty Level: %s\n", req.DifficultyLevel)
	fmt.Fprintf(&b, "- Duration: %d weeks\n", req.DurationWeeks)
	fmt.Fprintf(&b, "- Number of Modules: %d\n\n", req.ModulesCount)
	b.WriteString("Learning Objectives:\n")
	for _, obj := range req.LearningObjectives {
		fmt.Fprintf(&b, "- %s\n", obj)
	}
	b.WriteString("\nGenerate a course as a JSON object with keys: course_title, description, ")
	b.WriteString("target_audience, difficulty_level, total_duration_weeks, total_lessons, ")
	b.WriteString("learning_objectives, prerequisites, modules, assessment_strategy, resources. ")
	b.WriteString("Each module has module_number, title, description, duration_weeks, lessons ")
	b.WriteString("(title, description, duration_minutes, learning_outcomes, key_concepts) and assessment_type.\n\n")
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Create exactly %d modules\n", req.ModulesCount)
	b.WriteString("- Each module should have 3-5 lessons\n")
	fmt.Fprintf(&b, "- Total duration should be %d weeks\n", req.DurationWeeks)
	b.WriteString("- Lessons should be 30-90 minutes each\n")
	b.WriteString("- Include varied assessment types\n")
	fmt.Fprintf(&b, "- Make content relevant to %s level\n", req.DifficultyLevel)
	fmt.Fprintf(&b, "- learning_objectives must be %s\n\n", string(objectives))
	b.WriteString("Return only valid JSON, no additional text.")
	return b.String()
}

// GenerateCourse produces a structured course outline. A backend failure or
// output that does not parse into the outline schema yields FallbackCourse,
// so the result is always well-formed.
func (s *OllamaService) GenerateCourse(ctx context.Context, req *CourseRequest) *CourseOutline {
	req.applyDefaults()

	raw, err := s.GenerateJSON(ctx, BuildCoursePrompt(req))
	if err != nil {
		s.Logger.Printf("course generation failed, using fallback: %v", err)
		return FallbackCourse(req)
	}

	outline, err := parseCourseOutline(raw, req)
	if err != nil {
		s.Logger.Printf("course generation returned malformed output, using fallback: %v", err)
		return FallbackCourse(req)
	}
	return outline
}

func parseCourseOutline(raw string, req *CourseRequest) (*CourseOutline, error) {
	// Models sometimes wrap the JSON object in prose; take the outermost
	// braces.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var outline CourseOutline
	if err := json.Unmarshal([]byte(raw[start:end+1]), &outline); err != nil {
		return nil, err
	}
	if len(outline.Modules) == 0 {
		return nil, fmt.Errorf("outline has no modules")
	}

	if outline.CourseTitle == "" {
		outline.CourseTitle = req.CourseTitle
	}
	if outline.TargetAudience == "" {
		outline.TargetAudience = req.TargetAudience
	}
	if outline.DifficultyLevel == "" {
		outline.DifficultyLevel = req.DifficultyLevel
	}
	if outline.TotalDurationWeeks == 0 {
		outline.TotalDurationWeeks = req.DurationWeeks
	}
	if len(outline.LearningObjectives) == 0 {
		outline.LearningObjectives = req.LearningObjectives
	}

	total := 0
	for i := range outline.Modules {
		if outline.Modules[i].ModuleNumber == 0 {
			outline.Modules[i].ModuleNumber = i + 1
		}
		if outline.Modules[i].AssessmentType == "" {
			outline.Modules[i].AssessmentType = "quiz"
		}
		total += len(outline.Modules[i].Lessons)
	}
	outline.TotalLessons = total

	return &outline, nil
}

// FallbackCourse deterministically synthesizes a course outline honoring the
// requested module and duration counts.
func FallbackCourse(req *CourseRequest) *CourseOutline {
	req.applyDefaults()

	subject := req.CourseTitle
	if fields := strings.Fields(req.CourseTitle); len(fields) > 0 {
		subject = fields[0]
	}

	lessonsPerModule := 20 / req.ModulesCount
	if lessonsPerModule < 3 {
		lessonsPerModule = 3
	}
	if lessonsPerModule > 5 {
		lessonsPerModule = 5
	}

	lessons := make([]CourseLesson, 0, lessonsPerModule)
	for i := 0; i < lessonsPerModule; i++ {
		lessons = append(lessons, CourseLesson{
			Title:           fmt.Sprintf("Lesson %d: Fundamentals of %s", i+1, subject),
			Description:     fmt.Sprintf("In this lesson, we explore key concepts related to %s.", req.CourseTitle),
			DurationMinutes: 45,
			LearningOutcomes: []string{
				fmt.Sprintf("Understand core principles of %s", req.CourseTitle),
				fmt.Sprintf("Apply %s-level concepts", req.DifficultyLevel),
				"Demonstrate practical knowledge",
			},
			KeyConcepts: []string{
				"Theoretical foundations",
				"Practical applications",
				"Real-world examples",
			},
		})
	}

	weeksPerModule := float64(req.DurationWeeks) / float64(req.ModulesCount)
	modules := make([]CourseModule, 0, req.ModulesCount)
	for i := 0; i < req.ModulesCount; i++ {
		assessment := "quiz"
		if i%2 == 1 {
			assessment = "assignment"
		}
		modules = append(modules, CourseModule{
			ModuleNumber:   i + 1,
			Title:          fmt.Sprintf("Module %d: %s - Part %d", i+1, req.CourseTitle, i+1),
			Description:    fmt.Sprintf("This module covers essential aspects of %s for %s.", req.CourseTitle, req.TargetAudience),
			DurationWeeks:  weeksPerModule,
			Lessons:        lessons,
			AssessmentType: assessment,
		})
	}

	return &CourseOutline{
		CourseTitle: req.CourseTitle,
		Description: fmt.Sprintf("A comprehensive %s-level course on %s designed for %s. This course provides practical knowledge and skills through structured learning modules.",
			req.DifficultyLevel, req.CourseTitle, req.TargetAudience),
		TargetAudience:     req.TargetAudience,
		DifficultyLevel:    req.DifficultyLevel,
		TotalDurationWeeks: req.DurationWeeks,
		TotalLessons:       lessonsPerModule * req.ModulesCount,
		LearningObjectives: req.LearningObjectives,
		Prerequisites: []string{
			fmt.Sprintf("Basic understanding of %s", strings.ToLower(subject)),
			"Motivation to learn",
			"Access to learning materials",
		},
		Modules: modules,
		AssessmentStrategy: fmt.Sprintf("Continuous assessment through quizzes, assignments, and practical exercises suitable for %s level.",
			req.DifficultyLevel),
		Resources: []string{
			"Course materials and readings",
			"Interactive exercises",
			"Video demonstrations",
			"Community discussion forums",
		},
	}
}
