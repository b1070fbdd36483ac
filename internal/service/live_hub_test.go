package service

import (
	"testing"

	"linguist_ai_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(maxSessions int) *LiveHub {
	cfg := testConfig()
	cfg.Live.MaxSessions = maxSessions
	return NewLiveHub(cfg, nil)
}

// stubSession builds a session without sockets; end() tolerates both
// being absent.
func stubSession(hub *LiveHub, userID uint) *LiveSession {
	return &LiveSession{
		Hub:    hub,
		UserID: userID,
		send:   make(chan liveServerMessage, 8),
		state:  StateIdle,
		done:   make(chan struct{}),
	}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := newTestHub(0) // unlimited
	s := stubSession(hub, 1)

	require.True(t, hub.register(s))
	assert.Equal(t, 1, hub.SessionCount())
	assert.True(t, hub.IsUserLive(1))
	assert.False(t, hub.IsUserLive(2))

	hub.unregister(s)
	assert.Equal(t, 0, hub.SessionCount())
	assert.False(t, hub.IsUserLive(1))
}

func TestHubCapacityLimit(t *testing.T) {
	hub := newTestHub(2)

	require.True(t, hub.register(stubSession(hub, 1)))
	require.True(t, hub.register(stubSession(hub, 2)))
	assert.False(t, hub.register(stubSession(hub, 3)))
	assert.Equal(t, 2, hub.SessionCount())
}

func TestHubEvictsPreviousSessionForUser(t *testing.T) {
	hub := newTestHub(1)

	old := stubSession(hub, 7)
	require.True(t, hub.register(old))

	// Same user reconnecting passes the capacity check and closes the
	// old session.
	replacement := stubSession(hub, 7)
	require.True(t, hub.register(replacement))
	assert.Equal(t, 1, hub.SessionCount())
	assert.Equal(t, StateEnded, old.State())
	assert.True(t, hub.IsUserLive(7))
}

func TestHubUnregisterIgnoresStaleSession(t *testing.T) {
	hub := newTestHub(0)

	old := stubSession(hub, 7)
	require.True(t, hub.register(old))
	replacement := stubSession(hub, 7)
	require.True(t, hub.register(replacement))

	// The evicted session unregisters on teardown; the replacement must
	// stay registered.
	hub.unregister(old)
	assert.Equal(t, 1, hub.SessionCount())
	assert.True(t, hub.IsUserLive(7))
}

func TestHubGaugeBalancedAfterEviction(t *testing.T) {
	hub := newTestHub(0)
	baseline := testutil.ToFloat64(monitoring.LiveSessions)

	// A same-user reconnect evicts the old session; its teardown reaches
	// unregister after the map already points at the replacement. The
	// gauge must still come back to the baseline once everything closes.
	old := stubSession(hub, 7)
	require.True(t, hub.register(old))
	replacement := stubSession(hub, 7)
	require.True(t, hub.register(replacement))

	replacement.end(StateEnded, "")
	assert.Equal(t, baseline, testutil.ToFloat64(monitoring.LiveSessions))
}

func TestHubTranscriptFor(t *testing.T) {
	hub := newTestHub(0)
	s := stubSession(hub, 7)
	require.True(t, hub.register(s))

	s.appendTranscript(TranscriptEntry{Role: "user", Text: "hello"})
	s.appendTranscript(TranscriptEntry{Role: "tutor", Text: "hola"})

	got := hub.TranscriptFor(7)
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Text)
	assert.Equal(t, "tutor", got[1].Role)

	assert.Nil(t, hub.TranscriptFor(99))
}
