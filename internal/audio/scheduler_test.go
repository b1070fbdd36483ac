package audio

import (
	"testing"
	"time"
)

func TestScheduleBackToBack(t *testing.T) {
	s := NewPlaybackScheduler(PlaybackSampleRate)
	now := time.Unix(1000, 0)

	first := s.Schedule(960, now) // 20ms chunk
	if !first.Equal(now) {
		t.Fatalf("first chunk start %v, want %v", first, now)
	}
	second := s.Schedule(1920, now) // 40ms chunk
	if want := now.Add(20 * time.Millisecond); !second.Equal(want) {
		t.Fatalf("second chunk start %v, want %v", second, want)
	}
	if want := 60 * time.Millisecond; s.Pending(now) != want {
		t.Fatalf("pending %v, want %v", s.Pending(now), want)
	}
}

func TestScheduleSnapsStaleCursorToNow(t *testing.T) {
	s := NewPlaybackScheduler(PlaybackSampleRate)
	now := time.Unix(1000, 0)
	s.Schedule(960, now)

	// Playback drained: the next chunk arrives after the cursor passed.
	later := now.Add(5 * time.Second)
	if start := s.Schedule(960, later); !start.Equal(later) {
		t.Fatalf("stale cursor start %v, want %v", start, later)
	}
}

func TestPendingNeverNegative(t *testing.T) {
	s := NewPlaybackScheduler(PlaybackSampleRate)
	now := time.Unix(1000, 0)
	s.Schedule(960, now)
	if got := s.Pending(now.Add(time.Minute)); got != 0 {
		t.Fatalf("pending after drain = %v, want 0", got)
	}
}

func TestResetDropsBacklog(t *testing.T) {
	s := NewPlaybackScheduler(PlaybackSampleRate)
	now := time.Unix(1000, 0)
	s.Schedule(48000, now) // one second queued
	s.Reset()
	if got := s.Pending(now); got != 0 {
		t.Fatalf("pending after reset = %v, want 0", got)
	}
	// The cursor restarts from now for the next chunk.
	if start := s.Schedule(960, now); !start.Equal(now) {
		t.Fatalf("post-reset start %v, want %v", start, now)
	}
}
