package utils

import (
	"fmt"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_TYPE, runs migrations and seeds
// the fixed QAQF taxonomy. SQLite is the default; Postgres is kept as a
// configured option for shared deployments.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBType {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := SeedTaxonomy(db); err != nil {
		return nil, fmt.Errorf("failed to seed taxonomy: %w", err)
	}

	return db, nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.QaqfLevel{},
		&models.QaqfCharacteristic{},
		&models.Content{},
		&models.Video{},
		&models.StudyMaterial{},
		&models.Collection{},
		&models.Template{},
		&models.Course{},
		&models.Week{},
		&models.Lesson{},
		&models.WeekLesson{},
		&models.Activity{},
	)
}

// SeedTaxonomy inserts the nine QAQF levels and the standard characteristic
// set if the tables are empty. Seeding is idempotent.
func SeedTaxonomy(db *gorm.DB) error {
	var levelCount int64
	db.Model(&models.QaqfLevel{}).Count(&levelCount)
	if levelCount == 0 {
		levels := []models.QaqfLevel{
			{Level: 1, Name: "Basic Foundation", Description: "Entry level understanding"},
			{Level: 2, Name: "Basic Application", Description: "Basic application of knowledge"},
			{Level: 3, Name: "Basic Integration", Description: "Integration of basic concepts"},
			{Level: 4, Name: "Intermediate Analysis", Description: "Analytical thinking and evaluation"},
			{Level: 5, Name: "Intermediate Synthesis", Description: "Synthesis of complex information"},
			{Level: 6, Name: "Intermediate Evaluation", Description: "Critical evaluation and judgment"},
			{Level: 7, Name: "Advanced Research", Description: "Independent research and investigation"},
			{Level: 8, Name: "Advanced Innovation", Description: "Innovation and creative solutions"},
			{Level: 9, Name: "Advanced Leadership", Description: "Leadership and strategic thinking"},
		}
		if err := db.Create(&levels).Error; err != nil {
			return err
		}
	}

	var charCount int64
	db.Model(&models.QaqfCharacteristic{}).Count(&charCount)
	if charCount == 0 {
		characteristics := []models.QaqfCharacteristic{
			{Name: "Knowledge and understanding", Description: "Depth and breadth of knowledge", Category: "cognitive"},
			{Name: "Application of knowledge", Description: "Practical application skills", Category: "application"},
			{Name: "Critical thinking", Description: "Analysis and evaluation abilities", Category: "cognitive"},
			{Name: "Communication", Description: "Effective communication skills", Category: "interpersonal"},
			{Name: "Self-management", Description: "Personal effectiveness and learning", Category: "personal"},
			{Name: "Problem solving", Description: "Systematic problem resolution", Category: "application"},
			{Name: "Teamwork", Description: "Collaborative working abilities", Category: "interpersonal"},
			{Name: "Leadership", Description: "Leading and influencing others", Category: "interpersonal"},
			{Name: "Innovation", Description: "Creative and innovative thinking", Category: "cognitive"},
			{Name: "Ethics", Description: "Ethical awareness and responsibility", Category: "personal"},
		}
		if err := db.Create(&characteristics).Error; err != nil {
			return err
		}
	}

	return nil
}
