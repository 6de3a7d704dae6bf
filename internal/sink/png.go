// Package sink implements the presentation backends the compositor
// presents into: a PNG frame writer that supports partial updates, and a
// desktop-wallpaper backend (per OS) that can only take full-surface
// frames and therefore drives the compositor's degraded mode.
package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const frameFilename = "frame.png"

// PNGSink writes each presented frame to a file in the output directory.
// It accepts region lists, so the compositor keeps its partial-update
// path; the whole surface is available either way, encoding it is the
// cheapest correct behavior for a file target.
type PNGSink struct {
	logger *zap.Logger
	dir    string
}

// NewPNGSink creates the PNG frame sink
func NewPNGSink(logger *zap.Logger, dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	logger.Info("PNG sink initialized", zap.String("dir", dir))
	return &PNGSink{logger: logger, dir: dir}, nil
}

// SupportsPartial reports that region-restricted presents are accepted
func (s *PNGSink) SupportsPartial() bool {
	return true
}

// Present writes the frame. The file is written to a temp name and
// renamed so readers never observe a half-written image.
func (s *PNGSink) Present(surface *image.RGBA, regions []image.Rectangle) error {
	// imaging.Save picks the encoder from the extension, so the temp name
	// must keep the .png suffix.
	tmp := filepath.Join(s.dir, ".tmp-"+frameFilename)
	if err := imaging.Save(surface, tmp, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, frameFilename)); err != nil {
		return fmt.Errorf("failed to publish frame: %w", err)
	}

	s.logger.Debug("Frame presented", zap.Int("regions", len(regions)))
	return nil
}
