package monitor

import (
	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// NewScreenResolution detects the primary screen resolution at startup.
// The display surface defaults to this when no explicit size is
// configured.
func NewScreenResolution(logger *zap.Logger) *domain.ScreenResolution {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, falling back to 800x480")
		return &domain.ScreenResolution{Width: 800, Height: 480}
	}

	bounds := screenshot.GetDisplayBounds(0)
	logger.Info("Primary display detected",
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	return &domain.ScreenResolution{Width: bounds.Dx(), Height: bounds.Dy()}
}
