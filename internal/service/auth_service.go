package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/internal/util"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default account created on the first successful login with the shared
// access code.
const (
	defaultUserName  = "Emprendedor Linguist"
	defaultUserEmail = "admin@linguistai.com"
	defaultUserXP    = 250
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

// Login validates the shared access code. The first successful login creates
// the default user record; later logins reuse it. A wrong code never creates
// anything.
func (s *AuthService) Login(accessCode string) (string, *model.User, error) {
	if !s.codeMatches(accessCode) {
		return "", nil, util.ErrInvalidAccessCode
	}

	user, err := s.UserRepo.FindByEmail(defaultUserEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{
			Name:         defaultUserName,
			Email:        defaultUserEmail,
			Role:         model.Admin, // the shared-code account owns the admin tools
			XP:           defaultUserXP,
			Subscription: model.PlanStarter,
			LastLogin:    time.Now(),
		}
		user.SyncLevel()
		if err := s.UserRepo.Create(user); err != nil {
			return "", nil, err
		}
	} else if err != nil {
		return "", nil, err
	} else {
		user.LastLogin = time.Now()
		user.SyncLevel()
		if err := s.UserRepo.Update(user); err != nil {
			return "", nil, err
		}
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	// Session flag mirrors the token lifetime; Logout only ever clears this.
	s.Redis.Set(context.Background(), sessionKey(user.ID), "true", s.Cfg.JWT.ExpireTime)

	return token, user, nil
}

// codeMatches accepts either a bcrypt hash (release mode) or a plaintext code
// (development), compared in constant time.
func (s *AuthService) codeMatches(code string) bool {
	configured := s.Cfg.AuthSettings().AccessCode
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(code)) == 1
}

// Logout clears the session flag only; the user record and lessons survive.
func (s *AuthService) Logout(userID uint) error {
	return s.Redis.Del(context.Background(), sessionKey(userID)).Err()
}

func (s *AuthService) IsAuthenticated(userID uint) bool {
	val, err := s.Redis.Get(context.Background(), sessionKey(userID)).Result()
	return err == nil && val == "true"
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
