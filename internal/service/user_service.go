package service

import (
	"errors"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityRepository
}

func NewUserService(userRepo *repository.UserRepository, activityRepo *repository.ActivityRepository) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
	}
}

// zeroStateUser is what callers get when no record exists. The client is
// expected to always have something to render.
func zeroStateUser() *model.User {
	u := &model.User{
		Name:         "Estudiante",
		Role:         model.Student,
		Subscription: model.PlanStarter,
	}
	u.SyncLevel()
	return u
}

// CurrentUser never fails: a missing record degrades to the zero-state
// default.
func (s *UserService) CurrentUser(userID uint) *model.User {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return zeroStateUser()
	}
	user.SyncLevel()
	return user
}

// Profile is the user record plus its derived collections.
type Profile struct {
	User      *model.User         `json:"user"`
	Completed []string            `json:"completed"`
	Logs      []model.ActivityLog `json:"logs"`
}

func (s *UserService) GetProfile(userID uint) *Profile {
	user := s.CurrentUser(userID)

	completed, err := s.UserRepo.CompletedLessonIDs(userID)
	if err != nil {
		completed = []string{}
	}
	logs, err := s.ActivityRepo.ListRecent(userID, model.ActivityLogCap)
	if err != nil {
		logs = []model.ActivityLog{}
	}

	return &Profile{
		User:      user,
		Completed: completed,
		Logs:      logs,
	}
}

// UpdateSubscription switches the user to a paid plan and returns the updated
// record.
func (s *UserService) UpdateSubscription(userID uint, plan model.SubscriptionPlan) (*model.User, error) {
	if !model.ValidUpgradePlan(plan) {
		return nil, util.ErrInvalidPlan
	}

	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zeroStateUser(), nil
	} else if err != nil {
		return nil, err
	}

	user.Subscription = plan
	user.SyncLevel()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
