package service

import (
	"testing"

	"linguist_ai_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.Users, env.Lessons, env.Activity)
	seeded := env.seedUser(t, 0, 0)

	progress := NewProgressService(env.Users, env.Activity, env.DB)
	_, err := progress.SaveActivity(seeded.ID, model.ActivityQuiz, "Present Continuous Quiz", 8, "pres-cont")
	require.NoError(t, err)

	dash, err := svc.GetDashboard(seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, dash.User.ID)
	assert.Equal(t, 1, dash.Streak)
	require.Len(t, dash.Logs, 1)

	require.Len(t, dash.Lessons, 4)
	marks := map[string]bool{}
	for _, l := range dash.Lessons {
		marks[l.ID] = l.Completed
	}
	assert.True(t, marks["pres-cont"])
	assert.False(t, marks["condit-1"])
}

func TestGetDashboardZeroState(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.Users, env.Lessons, env.Activity)

	dash, err := svc.GetDashboard(999)
	require.NoError(t, err)
	assert.Equal(t, "Estudiante", dash.User.Name)
	assert.Zero(t, dash.Streak)
	assert.Empty(t, dash.Logs)
	assert.Len(t, dash.Lessons, 4)
	for _, l := range dash.Lessons {
		assert.False(t, l.Completed)
	}
}
