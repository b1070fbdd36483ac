package service

import (
	"context"
	"testing"

	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(t *testing.T) (*AdminService, *testEnv) {
	env := newTestEnv(t)
	rdb := deadRedis()
	cfg := testConfig()
	auth := NewAuthService(env.Users, rdb, cfg)
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
	return NewAdminService(env.Users, env.Lessons, env.Activity, auth, storage, nil, rdb), env
}

func TestResetAllWipesUserData(t *testing.T) {
	svc, env := newAdminService(t)
	seeded := env.seedUser(t, 500, 3)

	progress := NewProgressService(env.Users, env.Activity, env.DB)
	_, err := progress.SaveActivity(seeded.ID, model.ActivityQuiz, "Quiz", 10, "pres-cont")
	require.NoError(t, err)

	lessons := NewLessonService(env.Lessons, svc.Storage)
	_, err = lessons.Create(CreateLessonInput{Title: "Custom One"})
	require.NoError(t, err)

	require.NoError(t, svc.ResetAll(context.Background()))

	var users, logs, completions int64
	env.DB.Model(&model.User{}).Count(&users)
	env.DB.Model(&model.ActivityLog{}).Count(&logs)
	env.DB.Model(&model.LessonCompletion{}).Count(&completions)
	assert.Zero(t, users)
	assert.Zero(t, logs)
	assert.Zero(t, completions)

	// Built-in catalog survives a factory reset; customs do not.
	remaining, err := env.Lessons.ListAll()
	require.NoError(t, err)
	assert.Len(t, remaining, 4)
	for _, l := range remaining {
		assert.False(t, l.Custom)
	}
}

func TestRawSnapshot(t *testing.T) {
	svc, env := newAdminService(t)
	seeded := env.seedUser(t, 250, 0)

	lessons := NewLessonService(env.Lessons, svc.Storage)
	_, err := lessons.Create(CreateLessonInput{Title: "Custom Snapshot"})
	require.NoError(t, err)

	snap := svc.RawSnapshot(context.Background(), seeded.ID)
	require.NotNil(t, snap.User)
	assert.Equal(t, seeded.ID, snap.User.ID)
	assert.Len(t, snap.CustomLessons, 1)
	assert.False(t, snap.SessionActive) // no reachable session store
	assert.False(t, snap.LiveSession)
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestRawSnapshotIncludesLiveTranscript(t *testing.T) {
	svc, env := newAdminService(t)
	seeded := env.seedUser(t, 250, 0)

	hub := newTestHub(0)
	svc.Hub = hub
	s := stubSession(hub, seeded.ID)
	require.True(t, hub.register(s))
	s.appendTranscript(TranscriptEntry{Role: "tutor", Text: "¿Cómo estás?"})

	snap := svc.RawSnapshot(context.Background(), seeded.ID)
	assert.True(t, snap.LiveSession)
	require.Len(t, snap.LiveTranscript, 1)
	assert.Equal(t, "¿Cómo estás?", snap.LiveTranscript[0].Text)
}

func TestRawSnapshotMissingUser(t *testing.T) {
	svc, _ := newAdminService(t)

	snap := svc.RawSnapshot(context.Background(), 999)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.CustomLessons)
}
