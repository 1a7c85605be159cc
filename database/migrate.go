package database

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"pupils-backend/models"
)

// DefaultClasses are inserted when the school_class table is empty.
var DefaultClasses = []models.SchoolClass{
	{Name: "1-A", Course: "Mathematics"},
	{Name: "2-B", Course: "Physics"},
	{Name: "3-C", Course: "Literature"},
}

func Migrate(db *gorm.DB, seed bool) error {
	log.Info().Msg("🔄 Starting database migration...")

	// Сначала независимые таблицы, потом зависимые
	tables := []interface{}{
		&models.SchoolClass{},
		&models.Pupil{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return errors.Wrapf(err, "migrating %T", table)
		}
		log.Debug().Msgf("✅ Created/Updated table for: %T", table)
	}

	createIndexes(db)

	if seed {
		if err := seedInitialData(db); err != nil {
			return errors.Wrap(err, "seeding school classes")
		}
	}

	log.Info().Msg("✅ Database migration completed successfully!")
	return nil
}

func createIndexes(db *gorm.DB) {
	// порядок выдачи списка учеников
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_pupil_class_last_name ON pupil(school_class_id, last_name)").Error; err != nil {
		log.Warn().Err(err).Msg("⚠️ could not create idx_pupil_class_last_name")
	}
}

func seedInitialData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SchoolClass{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Int64("classes", count).Msg("✅ school classes already present, skipping seed")
		return nil
	}

	classes := make([]models.SchoolClass, len(DefaultClasses))
	copy(classes, DefaultClasses)
	if err := db.Create(&classes).Error; err != nil {
		return err
	}

	log.Info().Int("classes", len(classes)).Msg("🌱 Seeded school classes")
	return nil
}
