package service

import (
	"testing"

	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *testEnv) {
	env := newTestEnv(t)
	return NewAuthService(env.Users, deadRedis(), testConfig()), env
}

func TestLoginCreatesDefaultUser(t *testing.T) {
	svc, env := newAuthService(t)

	token, user, err := svc.Login("LINGUIST2025")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Emprendedor Linguist", user.Name)
	assert.Equal(t, "admin@linguistai.com", user.Email)
	assert.Equal(t, model.Admin, user.Role)
	assert.Equal(t, 250, user.XP)
	assert.Equal(t, model.LevelA1, user.Level)
	assert.Equal(t, model.PlanStarter, user.Subscription)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	var count int64
	env.DB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLoginReusesExistingUser(t *testing.T) {
	svc, env := newAuthService(t)

	_, first, err := svc.Login("LINGUIST2025")
	require.NoError(t, err)

	// Accrue some progress, then log in again: nothing resets.
	first.XP = 1200
	first.SyncLevel()
	require.NoError(t, env.Users.Update(first))

	_, second, err := svc.Login("LINGUIST2025")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1200, second.XP)
	assert.Equal(t, model.LevelA2, second.Level)

	var count int64
	env.DB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLoginRejectsWrongCode(t *testing.T) {
	svc, env := newAuthService(t)

	token, user, err := svc.Login("WRONG-CODE")
	assert.ErrorIs(t, err, util.ErrInvalidAccessCode)
	assert.Empty(t, token)
	assert.Nil(t, user)

	// A failed login must not create anything.
	var count int64
	env.DB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestLoginAcceptsBcryptHash(t *testing.T) {
	svc, _ := newAuthService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("sala-secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	svc.Cfg.Auth.AccessCode = string(hash)

	_, user, err := svc.Login("sala-secreta")
	require.NoError(t, err)
	assert.NotNil(t, user)

	_, _, err = svc.Login("sala-publica")
	assert.ErrorIs(t, err, util.ErrInvalidAccessCode)
}

func TestIsAuthenticatedWithoutSession(t *testing.T) {
	svc, _ := newAuthService(t)
	// No reachable session store means no active session, never a panic.
	assert.False(t, svc.IsAuthenticated(42))
}
