package render

import (
	"image"

	"github.com/genricoloni/spindeck/internal/domain"
)

// Static renders a fixed bitmap exactly once. Used for the foreground mask
// (the cassette window cutout or decorative overlay) and any other layer
// whose content never changes after skin load.
type Static struct {
	region   image.Rectangle
	bitmap   image.Image
	rendered bool
}

// NewStatic creates a static bitmap renderer
func NewStatic(bitmap image.Image, region image.Rectangle) *Static {
	return &Static{region: region, bitmap: bitmap}
}

// Render reports changed only on the first call
func (s *Static) Render(*domain.FrameInput) (image.Image, image.Rectangle, bool) {
	if s.rendered {
		return s.bitmap, s.region, false
	}
	s.rendered = true
	return s.bitmap, s.region, true
}
