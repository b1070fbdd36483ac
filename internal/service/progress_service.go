package service

import (
	"errors"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

// ProgressService owns the XP/level state machine. Every learning activity
// (quiz, voice session, culture scenario, vocab drill) funnels through
// SaveActivity.
type ProgressService struct {
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityRepository
	DB           *gorm.DB
}

func NewProgressService(userRepo *repository.UserRepository, activityRepo *repository.ActivityRepository, db *gorm.DB) *ProgressService {
	return &ProgressService{
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		DB:           db,
	}
}

// SaveActivity records one activity in a single transaction: ledger insert,
// log cap trim, XP add, level recompute, streak update, idempotent
// completed-set insert. Returns the updated user.
func (s *ProgressService) SaveActivity(userID uint, actType model.ActivityType, title string, score float64, lessonID string) (*model.User, error) {
	if !model.ValidActivityType(actType) {
		return nil, util.ErrInvalidActivity
	}
	if score < 0 {
		return nil, util.ErrNegativeScore
	}

	xpEarned := int(math.Floor(score * 10))
	now := time.Now()

	var user model.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		entry := model.ActivityLog{
			UserID:   userID,
			Type:     actType,
			Title:    title,
			XPEarned: xpEarned,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := s.ActivityRepo.TrimTx(tx, userID, model.ActivityLogCap); err != nil {
			return err
		}

		user.XP += xpEarned
		user.SyncLevel()
		user.Streak = nextStreak(user.Streak, user.LastActive, now)
		user.LastActive = now
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if lessonID != "" {
			completion := model.LessonCompletion{UserID: userID, LessonID: lessonID}
			err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
				FirstOrCreate(&completion).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zeroStateUser(), nil
		}
		return nil, err
	}

	return &user, nil
}

// nextStreak applies the consecutive-day rule: a second activity in one day
// keeps the streak, the first activity of the next day extends it, a gap
// resets it to 1. Days are calendar dates in the timestamps' own zone, so
// 23:30 and 00:30 the next morning count as consecutive days.
func nextStreak(streak int, lastActive, now time.Time) int {
	if streak == 0 || lastActive.IsZero() {
		return 1
	}

	lastDay := time.Date(lastActive.Year(), lastActive.Month(), lastActive.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch days := int(today.Sub(lastDay) / (24 * time.Hour)); {
	case days == 0:
		return streak
	case days == 1:
		return streak + 1
	default:
		return 1
	}
}

// RecentActivity returns the capped ledger, newest first.
func (s *ProgressService) RecentActivity(userID uint) []model.ActivityLog {
	logs, err := s.ActivityRepo.ListRecent(userID, model.ActivityLogCap)
	if err != nil {
		return []model.ActivityLog{}
	}
	return logs
}
