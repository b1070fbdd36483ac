package audio

import "time"

// PlaybackScheduler assigns start times to incoming speech chunks so
// consecutive chunks play back to back with no gaps: each chunk starts
// exactly where the previous one ends, and the cursor only ever moves
// forward. It has a single writer (the session's downstream pump), so
// it carries no lock.
type PlaybackScheduler struct {
	sampleRate int
	cursor     time.Time
}

func NewPlaybackScheduler(sampleRate int) *PlaybackScheduler {
	return &PlaybackScheduler{sampleRate: sampleRate}
}

// Schedule returns the start time for a chunk of pcmLen raw bytes and
// advances the cursor by the chunk's duration. A cursor that has fallen
// behind now (playback drained) snaps forward to now first.
func (s *PlaybackScheduler) Schedule(pcmLen int, now time.Time) time.Time {
	if s.cursor.Before(now) {
		s.cursor = now
	}
	start := s.cursor
	s.cursor = s.cursor.Add(Duration(pcmLen, s.sampleRate))
	return start
}

// Pending reports how much scheduled audio remains after now.
func (s *PlaybackScheduler) Pending(now time.Time) time.Duration {
	if s.cursor.Before(now) {
		return 0
	}
	return s.cursor.Sub(now)
}

// Reset rewinds the cursor, dropping any scheduled backlog. Used when
// the model interrupts itself and the client flushes its queue.
func (s *PlaybackScheduler) Reset() {
	s.cursor = time.Time{}
}
