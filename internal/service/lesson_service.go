package service

import (
	"context"
	"errors"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/internal/util"
	"linguist_ai_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	Storage    *StorageService
}

func NewLessonService(lessonRepo *repository.LessonRepository, storage *StorageService) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		Storage:    storage,
	}
}

// List returns the catalog: built-ins first, customs in creation order.
func (s *LessonService) List() ([]model.Lesson, error) {
	return s.LessonRepo.ListAll()
}

// Get resolves a lesson by id or slug.
func (s *LessonService) Get(key string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByIDOrSlug(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

// CreateLessonInput carries the user-supplied fields of a custom lesson.
type CreateLessonInput struct {
	Title       string
	Level       model.ProficiencyLevel
	Category    string
	Icon        string
	Description string
}

// Create stores a custom lesson. The id is a UUID; the slugified title is a
// separate lookup field, so same-titled lessons shadow each other on slug
// lookups without colliding on identity.
func (s *LessonService) Create(in CreateLessonInput) (*model.Lesson, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, util.ErrEmptyLessonTitle
	}

	level := in.Level
	if level == "" {
		level = model.LevelA1
	}

	lesson := &model.Lesson{
		Title:       strings.TrimSpace(in.Title),
		Slug:        util.Slugify(in.Title),
		Level:       level,
		Category:    in.Category,
		Icon:        in.Icon,
		Description: in.Description,
		Custom:      true,
	}

	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AttachVideo stores an uploaded lesson video, probes it and generates a
// thumbnail next to it.
func (s *LessonService) AttachVideo(ctx context.Context, lessonID string, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.Get(lessonID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := util.VideoContentTypes[ext]
	if !ok {
		return nil, util.ErrUnsupportedMedia
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Stage to a temp file so ffprobe can read it before upload.
	tmp, err := os.CreateTemp("", "lesson-video-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		return nil, err
	}

	// Extension checks are advisory; the content sniff is what counts.
	// Matroska and AVI payloads sniff as octet-stream, so that passes too.
	probe, err := os.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	_, err = util.ValidateMimeType(probe, []string{util.MimeVideo, "application/octet-stream"})
	probe.Close()
	if err != nil {
		return nil, util.ErrUnsupportedMedia
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("lesson video probed",
		zap.String("lessonId", lesson.ID),
		zap.Float64("duration", info.Duration),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height))

	thumbPath := tmp.Name() + ".jpg"
	if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("thumbnail generation failed", zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		thumbName := "lessons/" + lesson.ID + "/thumb.jpg"
		if _, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err != nil {
			logger.Log.Warn("thumbnail upload failed", zap.Error(err))
		}
	}

	videoName := "lessons/" + lesson.ID + "/video" + ext
	url, err := s.Storage.UploadFile(ctx, videoName, tmp.Name(), contentType)
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
