package service

import (
	"context"
	"fmt"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/pkg/logger"
	"linguist_ai_backend/pkg/monitoring"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const livePresenceTTL = 2 * time.Minute

// LiveHub tracks open voice lab sessions. One session per user: a new
// connection for the same user evicts the old one. Presence is mirrored
// into Redis with a TTL so other instances can see who is mid-session.
type LiveHub struct {
	Config *config.Config
	Redis  *redis.Client

	mu       sync.RWMutex
	sessions map[uint]*LiveSession

	ctx    context.Context
	cancel context.CancelFunc
}

func NewLiveHub(cfg *config.Config, rdb *redis.Client) *LiveHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &LiveHub{
		Config:   cfg,
		Redis:    rdb,
		sessions: make(map[uint]*LiveSession),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func livePresenceKey(userID uint) string {
	return fmt.Sprintf("live:online:%d", userID)
}

// register adds a session, evicting any previous one for the same user.
// Returns false when the hub is at capacity.
func (h *LiveHub) register(s *LiveSession) bool {
	maxSessions := h.Config.LiveSettings().MaxSessions

	h.mu.Lock()
	prev := h.sessions[s.UserID]
	if prev == nil && maxSessions > 0 && len(h.sessions) >= maxSessions {
		h.mu.Unlock()
		return false
	}
	h.sessions[s.UserID] = s
	h.mu.Unlock()

	if prev != nil {
		prev.end(StateEnded, "replaced by a new session")
		// The gauge is decremented wherever a session loses its map slot.
		// The evicted session's own unregister sees it is stale and skips,
		// so its slot is released here.
		monitoring.LiveSessions.Dec()
	}

	monitoring.LiveSessions.Inc()
	if h.Redis != nil {
		h.Redis.Set(h.ctx, livePresenceKey(s.UserID), "true", livePresenceTTL)
	}
	return true
}

// unregister drops a session if it is still the user's current one.
func (h *LiveHub) unregister(s *LiveSession) {
	h.mu.Lock()
	current, ok := h.sessions[s.UserID]
	if ok && current == s {
		delete(h.sessions, s.UserID)
	} else {
		ok = false
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	monitoring.LiveSessions.Dec()
	if h.Redis != nil {
		h.Redis.Del(h.ctx, livePresenceKey(s.UserID))
	}
}

// Run keeps Redis presence keys alive while sessions are open.
func (h *LiveHub) Run() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.refreshPresence()
		}
	}
}

func (h *LiveHub) refreshPresence() {
	if h.Redis == nil {
		return
	}
	h.mu.RLock()
	ids := make([]uint, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	if len(ids) == 0 {
		return
	}
	pipe := h.Redis.Pipeline()
	for _, id := range ids {
		pipe.Expire(h.ctx, livePresenceKey(id), livePresenceTTL)
	}
	if _, err := pipe.Exec(h.ctx); err != nil {
		logger.Log.Error("Live presence refresh failed", zap.Error(err))
	}
}

// IsUserLive reports whether a user has an open voice session, locally
// or on another instance.
func (h *LiveHub) IsUserLive(userID uint) bool {
	h.mu.RLock()
	_, ok := h.sessions[userID]
	h.mu.RUnlock()
	if ok {
		return true
	}
	if h.Redis == nil {
		return false
	}
	val, err := h.Redis.Get(h.ctx, livePresenceKey(userID)).Result()
	return err == nil && val == "true"
}

// TranscriptFor returns the transcript accumulated by the user's open
// session on this instance, or nil when none is open here.
func (h *LiveHub) TranscriptFor(userID uint) []TranscriptEntry {
	h.mu.RLock()
	s := h.sessions[userID]
	h.mu.RUnlock()
	if s == nil {
		return nil
	}
	return s.Transcript()
}

// SessionCount reports locally open sessions.
func (h *LiveHub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Stop closes every open session and clears presence.
func (h *LiveHub) Stop() {
	h.mu.Lock()
	open := make([]*LiveSession, 0, len(h.sessions))
	for _, s := range h.sessions {
		open = append(open, s)
	}
	h.mu.Unlock()

	for _, s := range open {
		s.end(StateEnded, "server shutting down")
	}
	h.cancel()
	logger.Log.Info("LiveHub stopped", zap.Int("closedSessions", len(open)))
}
