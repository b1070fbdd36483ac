package repository

import (
	"errors"
	"linguist_ai_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

// ListAll returns built-in lessons first, then custom lessons in creation
// order.
func (r *LessonRepository) ListAll() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Order("custom ASC, created_at ASC").Find(&lessons).Error
	return lessons, err
}

// FindByIDOrSlug looks a lesson up by primary id, falling back to slug. Slugs
// are not unique; the most recently created lesson wins a slug lookup.
func (r *LessonRepository) FindByIDOrSlug(key string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("id = ?", key).First(&lesson).Error
	if err == nil {
		return &lesson, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.DB.Where("slug = ?", key).Order("created_at DESC").First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) ListCustom() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("custom = ?", true).Order("created_at ASC").Find(&lessons).Error
	return lessons, err
}

// DeleteCustom removes every user-created lesson. Built-ins are untouched.
func (r *LessonRepository) DeleteCustom() error {
	return r.DB.Unscoped().Where("custom = ?", true).Delete(&model.Lesson{}).Error
}
