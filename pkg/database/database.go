package database

import (
	"fmt"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// Migrate runs AutoMigrate and seeds the built-in lesson catalog. Built-ins
// are upserted by fixed id so the catalog survives a resetAll of custom data.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.ActivityLog{},
		&model.LessonCompletion{},
	)
	if err != nil {
		return err
	}

	for _, lesson := range model.BuiltinLessons() {
		var count int64
		db.Model(&model.Lesson{}).Where("id = ?", lesson.ID).Count(&count)
		if count == 0 {
			if err := db.Create(&lesson).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
