package service

import (
	"testing"

	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *testEnv) {
	env := newTestEnv(t)
	return NewUserService(env.Users, env.Activity), env
}

func TestCurrentUserZeroState(t *testing.T) {
	svc, _ := newUserService(t)

	user := svc.CurrentUser(999)
	require.NotNil(t, user)
	assert.Equal(t, "Estudiante", user.Name)
	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, model.PlanStarter, user.Subscription)
	assert.Equal(t, model.LevelA1, user.Level)
	assert.Zero(t, user.ID)
}

func TestCurrentUserSyncsLevel(t *testing.T) {
	svc, env := newUserService(t)
	seeded := env.seedUser(t, 2100, 0)

	// Stored level may lag XP; reads always report the derived tier.
	env.DB.Model(&model.User{}).Where("id = ?", seeded.ID).Update("level", "A1")

	user := svc.CurrentUser(seeded.ID)
	assert.Equal(t, model.LevelB1, user.Level)
}

func TestGetProfileCollections(t *testing.T) {
	svc, env := newUserService(t)
	seeded := env.seedUser(t, 0, 0)

	progress := NewProgressService(env.Users, env.Activity, env.DB)
	_, err := progress.SaveActivity(seeded.ID, model.ActivityQuiz, "Quiz", 5, "pres-cont")
	require.NoError(t, err)

	profile := svc.GetProfile(seeded.ID)
	assert.Equal(t, seeded.ID, profile.User.ID)
	assert.Equal(t, []string{"pres-cont"}, profile.Completed)
	require.Len(t, profile.Logs, 1)
	assert.Equal(t, 50, profile.Logs[0].XPEarned)
}

func TestUpdateSubscription(t *testing.T) {
	svc, env := newUserService(t)
	seeded := env.seedUser(t, 0, 0)

	user, err := svc.UpdateSubscription(seeded.ID, model.PlanImmersion)
	require.NoError(t, err)
	assert.Equal(t, model.PlanImmersion, user.Subscription)

	_, err = svc.UpdateSubscription(seeded.ID, "platinum")
	assert.ErrorIs(t, err, util.ErrInvalidPlan)
	_, err = svc.UpdateSubscription(seeded.ID, model.PlanStarter)
	assert.ErrorIs(t, err, util.ErrInvalidPlan)
}

func TestUpdateSubscriptionMissingUser(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.UpdateSubscription(999, model.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, "Estudiante", user.Name)
}
