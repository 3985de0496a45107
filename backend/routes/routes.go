package routes

import (
	"log"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/controllers"
	"qaqfplatform/backend/middleware"
	"qaqfplatform/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	files := services.NewFileService(cfg, logger)
	ollama := services.NewOllamaService(cfg, logger)
	websites := services.NewWebsiteExtractor()

	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login-json", authController.Login)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// QAQF taxonomy
	qaqfController := controllers.NewQaqfController(db, cfg)
	app.Get("/api/qaqf/levels", authMiddleware, qaqfController.GetLevels)
	app.Get("/api/qaqf/characteristics", authMiddleware, qaqfController.GetCharacteristics)
	app.Post("/api/qaqf/levels", authMiddleware, adminMiddleware, qaqfController.CreateLevel)
	app.Put("/api/qaqf/levels/:id", authMiddleware, adminMiddleware, qaqfController.UpdateLevel)
	app.Delete("/api/qaqf/levels/:id", authMiddleware, adminMiddleware, qaqfController.DeleteLevel)
	app.Post("/api/qaqf/characteristics", authMiddleware, adminMiddleware, qaqfController.CreateCharacteristic)
	app.Patch("/api/qaqf/characteristics/:id", authMiddleware, adminMiddleware, qaqfController.UpdateCharacteristic)
	app.Delete("/api/qaqf/characteristics/:id", authMiddleware, adminMiddleware, qaqfController.DeleteCharacteristic)

	// Content
	contentController := controllers.NewContentController(db, cfg)
	content := app.Group("/api/content", authMiddleware)
	content.Get("/", contentController.GetContents)
	content.Post("/", contentController.CreateContent)
	content.Get("/:id<int>", contentController.GetContent)
	content.Put("/:id<int>", contentController.UpdateContent)
	content.Patch("/:id<int>/verify", contentController.UpdateVerification)
	content.Delete("/:id<int>", contentController.DeleteContent)

	// Text extraction (no persistence)
	extractController := controllers.NewExtractController(db, cfg, files, websites)
	content.Post("/extract-text", extractController.ExtractFile)
	content.Post("/extract-website", extractController.ExtractWebsite)

	// Videos
	videoController := controllers.NewVideoController(db, cfg)
	videos := app.Group("/api/videos", authMiddleware)
	videos.Get("/", videoController.GetVideos)
	videos.Post("/", videoController.CreateVideo)
	videos.Get("/:id", videoController.GetVideo)
	videos.Patch("/:id", videoController.UpdateVideo)

	// File management
	fileController := controllers.NewFileController(db, cfg, files)
	fileRoutes := app.Group("/api/files", authMiddleware)
	fileRoutes.Post("/upload", fileController.Upload)
	fileRoutes.Get("/list", fileController.List)
	fileRoutes.Get("/stats", adminMiddleware, fileController.Stats)
	fileRoutes.Get("/info/*", fileController.Info)
	fileRoutes.Delete("/delete/*", fileController.Delete)

	// Study materials
	materialController := controllers.NewStudyMaterialController(db, cfg, files)
	materials := app.Group("/api/study-materials", authMiddleware)
	materials.Get("/", materialController.GetMaterials)
	materials.Post("/", materialController.CreateMaterial)
	materials.Get("/:id", materialController.GetMaterial)
	materials.Put("/:id", materialController.UpdateMaterial)
	materials.Delete("/:id", materialController.DeleteMaterial)

	// Collections
	collectionController := controllers.NewCollectionController(db, cfg)
	collections := app.Group("/api/collections", authMiddleware)
	collections.Get("/", collectionController.GetCollections)
	collections.Post("/", collectionController.CreateCollection)
	collections.Get("/:id", collectionController.GetCollection)
	collections.Put("/:id", collectionController.UpdateCollection)
	collections.Delete("/:id", collectionController.DeleteCollection)

	// Templates
	templateController := controllers.NewTemplateController(db, cfg)
	templates := app.Group("/api/templates", authMiddleware)
	templates.Get("/", templateController.GetTemplates)
	templates.Post("/", templateController.CreateTemplate)
	templates.Get("/:id", templateController.GetTemplate)
	templates.Put("/:id", templateController.UpdateTemplate)
	templates.Post("/:id/use", templateController.UseTemplate)
	templates.Delete("/:id", templateController.DeleteTemplate)

	// Course structure
	courseController := controllers.NewCourseController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", courseController.GetCourses)
	courses.Post("/", courseController.CreateCourse)
	courses.Get("/:id", courseController.GetCourse)
	courses.Put("/:id", courseController.UpdateCourse)
	courses.Delete("/:id", courseController.DeleteCourse)

	weeks := app.Group("/api/weeks", authMiddleware)
	weeks.Get("/", courseController.GetWeeks)
	weeks.Post("/", courseController.CreateWeek)
	weeks.Get("/:id", courseController.GetWeek)
	weeks.Put("/:id", courseController.UpdateWeek)
	weeks.Delete("/:id", courseController.DeleteWeek)

	lessons := app.Group("/api/lessons", authMiddleware)
	lessons.Get("/", courseController.GetLessons)
	lessons.Post("/", courseController.CreateLesson)
	lessons.Get("/:id", courseController.GetLesson)
	lessons.Put("/:id", courseController.UpdateLesson)
	lessons.Delete("/:id", courseController.DeleteLesson)
	app.Put("/api/lessons_status/:id", authMiddleware, courseController.UpdateLessonStatus)

	weekLessons := app.Group("/api/weeklessons", authMiddleware)
	weekLessons.Post("/", courseController.CreateWeekLesson)
	weekLessons.Get("/week/:weekid", courseController.GetWeekLessons)
	weekLessons.Put("/:id", courseController.UpdateWeekLesson)
	weekLessons.Delete("/:id", courseController.DeleteWeekLesson)
	app.Put("/api/weeklessonsorders", authMiddleware, courseController.ReorderWeekLessons)

	// Generation
	aiController := controllers.NewAIController(db, cfg, ollama)
	ai := app.Group("/api/ai", authMiddleware)
	ai.Post("/generate-content", aiController.GenerateContent)
	ai.Post("/assessment-content", aiController.GenerateAssessment)
	ai.Post("/assess-content", aiController.AssessContent)
	ai.Post("/generate-course", aiController.GenerateCourse)
	ai.Get("/status", aiController.Status)

	// Dashboard
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard/stats", authMiddleware, dashboardController.GetStats)
	app.Get("/api/activities", authMiddleware, dashboardController.GetActivities)
	app.Get("/api/health", dashboardController.Health)

	// Stored uploads
	app.Static("/uploads", cfg.UploadDir)
}
