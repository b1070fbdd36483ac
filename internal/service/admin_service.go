package service

import (
	"context"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Snapshot is the raw diagnostic view for operators. Nothing here is
// redacted; the endpoint is admin-only.
type Snapshot struct {
	GeneratedAt   time.Time      `json:"generatedAt"`
	User          *model.User    `json:"user"`
	CustomLessons []model.Lesson `json:"customLessons"`
	SessionActive bool           `json:"sessionActive"`
	LiveSession   bool           `json:"liveSession"`
	// LiveTranscript carries what the open voice session has said so far,
	// when one is open on this instance.
	LiveTranscript []TranscriptEntry `json:"liveTranscript,omitempty"`
	StorageBytes   int64             `json:"storageBytes"`
}

type AdminService struct {
	UserRepo     *repository.UserRepository
	LessonRepo   *repository.LessonRepository
	ActivityRepo *repository.ActivityRepository
	Auth         *AuthService
	Storage      *StorageService
	Hub          *LiveHub
	Redis        *redis.Client
}

func NewAdminService(userRepo *repository.UserRepository, lessonRepo *repository.LessonRepository, activityRepo *repository.ActivityRepository, auth *AuthService, storage *StorageService, hub *LiveHub, redisClient *redis.Client) *AdminService {
	return &AdminService{
		UserRepo:     userRepo,
		LessonRepo:   lessonRepo,
		ActivityRepo: activityRepo,
		Auth:         auth,
		Storage:      storage,
		Hub:          hub,
		Redis:        redisClient,
	}
}

// RawSnapshot dumps the current state for debugging. Best effort: a
// missing user or unreachable storage shows up as zero values, not an
// error.
func (s *AdminService) RawSnapshot(ctx context.Context, userID uint) *Snapshot {
	snap := &Snapshot{GeneratedAt: time.Now()}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		snap.User = user
	}
	if lessons, err := s.LessonRepo.ListCustom(); err == nil {
		snap.CustomLessons = lessons
	}
	snap.SessionActive = s.Auth.IsAuthenticated(userID)
	if s.Hub != nil {
		snap.LiveSession = s.Hub.IsUserLive(userID)
		snap.LiveTranscript = s.Hub.TranscriptFor(userID)
	}
	if size, err := s.Storage.ApproxSize(ctx); err == nil {
		snap.StorageBytes = size
	}
	return snap
}

// ResetAll wipes every user record, activity log, completion mark and
// custom lesson, then flushes derived Redis state. Built-in lessons
// survive. This is the factory-reset path, not a soft delete.
func (s *AdminService) ResetAll(ctx context.Context) error {
	if err := s.ActivityRepo.DeleteAll(); err != nil {
		return err
	}
	if err := s.UserRepo.DeleteAll(); err != nil {
		return err
	}
	if err := s.LessonRepo.DeleteCustom(); err != nil {
		return err
	}

	s.flushRedis(ctx, "session:*", "genai:*", "live:online:*")
	logger.Log.Info("Full reset completed")
	return nil
}

func (s *AdminService) flushRedis(ctx context.Context, patterns ...string) {
	if s.Redis == nil {
		return
	}
	for _, pattern := range patterns {
		iter := s.Redis.Scan(ctx, 0, pattern, 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			logger.Log.Error("Redis scan failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if len(keys) > 0 {
			if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
				logger.Log.Error("Redis cleanup failed", zap.String("pattern", pattern), zap.Error(err))
			}
		}
	}
}
