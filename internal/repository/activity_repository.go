package repository

import (
	"linguist_ai_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// ListRecent returns up to limit entries, newest first.
func (r *ActivityRepository) ListRecent(userID uint, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).
		Error
	return logs, err
}

// TrimTx deletes entries beyond cap for the user, oldest first. Must run in
// the same transaction as the insert that may have exceeded the cap.
func (r *ActivityRepository) TrimTx(tx *gorm.DB, userID uint, cap int) error {
	var count int64
	if err := tx.Model(&model.ActivityLog{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count <= int64(cap) {
		return nil
	}

	var staleIDs []string
	if err := tx.Model(&model.ActivityLog{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(int(count) - cap).
		Pluck("id", &staleIDs).
		Error; err != nil {
		return err
	}

	return tx.Unscoped().Where("id IN ?", staleIDs).Delete(&model.ActivityLog{}).Error
}

func (r *ActivityRepository) DeleteAll() error {
	return r.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&model.ActivityLog{}).Error
}
