package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/pkg/database"
	"linguist_ai_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// Services log through the global; keep test output quiet.
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type testEnv struct {
	DB       *gorm.DB
	Users    *repository.UserRepository
	Lessons  *repository.LessonRepository
	Activity *repository.ActivityRepository
}

// newTestEnv opens a fresh in-memory database, migrated and seeded with
// the built-in lesson catalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", model.GenerateUUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return &testEnv{
		DB:       db,
		Users:    repository.NewUserRepository(db),
		Lessons:  repository.NewLessonRepository(db),
		Activity: repository.NewActivityRepository(db),
	}
}

// deadRedis is a client pointing at nothing. Session and cache writes
// are fire-and-forget in the services, so tests run fine without a
// reachable Redis; reads just come back empty.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{AccessCode: "LINGUIST2025"},
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret-0123456789abcdef",
			ExpireTime: time.Hour,
		},
	}
}

// seedUser inserts a user row directly and returns it.
func (e *testEnv) seedUser(t *testing.T, xp, streak int) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Emprendedor Linguist",
		Email:        "admin@linguistai.com",
		Role:         model.Admin,
		XP:           xp,
		Streak:       streak,
		Subscription: model.PlanStarter,
	}
	user.SyncLevel()
	if err := e.Users.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
