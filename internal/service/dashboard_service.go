package service

import (
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/pkg/logger"

	"go.uber.org/zap"
)

const dashboardLogLimit = 10

// DashboardLesson is a catalog entry with a per-user completion mark.
type DashboardLesson struct {
	model.Lesson
	Completed bool `json:"completed"`
}

type Dashboard struct {
	User    *model.User       `json:"user"`
	Streak  int               `json:"streak"`
	Logs    []model.ActivityLog `json:"logs"`
	Lessons []DashboardLesson `json:"lessons"`
}

// DashboardService assembles the home-screen aggregate in one call so
// the frontend does not fan out four requests on load.
type DashboardService struct {
	UserRepo     *repository.UserRepository
	LessonRepo   *repository.LessonRepository
	ActivityRepo *repository.ActivityRepository
}

func NewDashboardService(userRepo *repository.UserRepository, lessonRepo *repository.LessonRepository, activityRepo *repository.ActivityRepository) *DashboardService {
	return &DashboardService{UserRepo: userRepo, LessonRepo: lessonRepo, ActivityRepo: activityRepo}
}

func (s *DashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		user = zeroStateUser()
	}

	lessons, err := s.LessonRepo.ListAll()
	if err != nil {
		return nil, err
	}

	completed := map[string]bool{}
	if ids, err := s.UserRepo.CompletedLessonIDs(userID); err == nil {
		for _, id := range ids {
			completed[id] = true
		}
	}

	catalog := make([]DashboardLesson, 0, len(lessons))
	for _, l := range lessons {
		catalog = append(catalog, DashboardLesson{Lesson: l, Completed: completed[l.ID]})
	}

	logs, err := s.ActivityRepo.ListRecent(userID, dashboardLogLimit)
	if err != nil {
		logger.Log.Warn("Dashboard activity load failed", zap.Error(err), zap.Uint("userId", userID))
		logs = []model.ActivityLog{}
	}

	return &Dashboard{
		User:    user,
		Streak:  user.Streak,
		Logs:    logs,
		Lessons: catalog,
	}, nil
}
