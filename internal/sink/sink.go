package sink

import (
	"fmt"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
)

// New builds the configured presentation sink
func New(logger *zap.Logger, cfg domain.Config) (domain.Sink, error) {
	switch mode := cfg.GetSinkMode(); mode {
	case "png", "":
		return NewPNGSink(logger, cfg.GetOutputDir())
	case "wallpaper":
		return NewWallpaperSink(logger, cfg.GetOutputDir())
	default:
		return nil, fmt.Errorf("unknown sink mode %q", mode)
	}
}
