package driver

import (
	"sync"

	"github.com/genricoloni/spindeck/internal/domain"
)

// LevelSource supplies the per-frame audio levels. Real signal capture
// belongs to an external collaborator feeding this interface; the built-in
// SmoothedLevels stands in when none is wired.
type LevelSource interface {
	// Levels returns the current left and right levels in 0.0-1.0
	Levels(status domain.PlayerStatus, volume float64) (float64, float64)
}

const levelEase = 0.15 // fraction of the gap closed per frame

// SmoothedLevels eases both channels toward the player volume while
// playing and toward silence otherwise. Deterministic on purpose: tests
// and headless runs get stable meter output.
type SmoothedLevels struct {
	mu sync.Mutex
	l  float64
	r  float64
}

// NewSmoothedLevels creates the stand-in level source
func NewSmoothedLevels() *SmoothedLevels {
	return &SmoothedLevels{}
}

// Levels eases toward the target and returns both channels
func (s *SmoothedLevels) Levels(status domain.PlayerStatus, volume float64) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := 0.0
	if status == domain.StatusPlaying {
		target = volume
	}
	s.l += (target - s.l) * levelEase
	// the right channel trails slightly so the bars do not move in lockstep
	s.r += (target - s.r) * levelEase * 0.8
	return s.l, s.r
}
