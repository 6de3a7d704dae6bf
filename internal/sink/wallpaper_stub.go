//go:build !linux
// +build !linux

package sink

import (
	"fmt"
	"image"

	"go.uber.org/zap"
)

// WallpaperSink is a placeholder on platforms without a wallpaper setter
type WallpaperSink struct {
	logger *zap.Logger
}

// NewWallpaperSink reports the platform as unsupported
func NewWallpaperSink(logger *zap.Logger, dir string) (*WallpaperSink, error) {
	return nil, fmt.Errorf("wallpaper presentation not implemented for this platform")
}

// SupportsPartial reports no partial-update support
func (s *WallpaperSink) SupportsPartial() bool {
	return false
}

// Present always fails on unsupported platforms
func (s *WallpaperSink) Present(surface *image.RGBA, regions []image.Rectangle) error {
	return fmt.Errorf("wallpaper presentation not implemented for this platform")
}
