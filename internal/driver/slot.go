package driver

import (
	"sync"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
)

// Slot is the single-value handoff between the monitor goroutine and the
// render thread. An incoming playback event overwrites a pending
// unconsumed one (latest value wins): only the most recent state matters
// for rendering, so a queue would only add latency. Readers never block.
type Slot struct {
	mu     sync.Mutex
	latest *domain.PlaybackEvent
	at     time.Time
}

// Publish replaces the slot content, recording the arrival time
func (s *Slot) Publish(ev domain.PlaybackEvent, at time.Time) {
	s.mu.Lock()
	e := ev
	s.latest = &e
	s.at = at
	s.mu.Unlock()
}

// Latest returns the most recent event and its arrival time; ok is false
// before the first publish. Repeated calls return the same event until a
// newer one arrives.
func (s *Slot) Latest() (domain.PlaybackEvent, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return domain.PlaybackEvent{}, time.Time{}, false
	}
	return *s.latest, s.at, true
}
