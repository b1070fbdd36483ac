package repository

import (
	"linguist_ai_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_active", time.Now()).
		Error
}

// CompletedLessonIDs returns the user's completed set in no particular order.
func (r *UserRepository) CompletedLessonIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ?", userID).
		Pluck("lesson_id", &ids).
		Error
	return ids, err
}

// DeleteAll wipes every user record along with completions. Used by resetAll.
func (r *UserRepository) DeleteAll() error {
	if err := r.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&model.LessonCompletion{}).Error; err != nil {
		return err
	}
	return r.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&model.User{}).Error
}
