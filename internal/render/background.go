package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
)

const defaultBlurRadius = 15.0

// Background renders the lowest layer. Three modes, in priority order: a
// static skin bitmap, a blurred fill of the current album art, or a flat
// color. The static and flat modes render exactly once; the blurred-art
// mode re-renders when new artwork arrives.
type Background struct {
	logger     *zap.Logger
	region     image.Rectangle
	bitmap     image.Image
	fill       color.Color
	blurArt    bool
	blurRadius float64

	lastArt  image.Image
	cached   *image.NRGBA
	rendered bool
}

// NewBackground creates the background renderer. bitmap may be nil; fill is
// used when it is and blurArt is off.
func NewBackground(logger *zap.Logger, region image.Rectangle, bitmap image.Image, fill color.Color, blurArt bool) *Background {
	return &Background{
		logger:     logger,
		region:     region,
		bitmap:     bitmap,
		fill:       fill,
		blurArt:    blurArt,
		blurRadius: defaultBlurRadius,
	}
}

// BlursArt reports whether the background re-renders on artwork changes,
// which disqualifies it from static-layer treatment in the compositor.
func (b *Background) BlursArt() bool {
	return b.blurArt
}

// Render produces the background bitmap
func (b *Background) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	if b.blurArt && in != nil && in.Art != nil && in.Art != b.lastArt {
		b.lastArt = in.Art
		filled := imaging.Fill(in.Art, b.region.Dx(), b.region.Dy(), imaging.Center, imaging.Lanczos)
		b.cached = imaging.Blur(filled, b.blurRadius)
		b.rendered = true
		b.logger.Debug("Background re-rendered from album art",
			zap.Int("w", b.region.Dx()), zap.Int("h", b.region.Dy()))
		return b.cached, b.region, true
	}

	if b.rendered {
		return b.cached, b.region, false
	}

	b.cached = newCanvas(b.region.Dx(), b.region.Dy())
	if b.bitmap != nil {
		fitted := imaging.Fill(b.bitmap, b.region.Dx(), b.region.Dy(), imaging.Center, imaging.Lanczos)
		drawAt(b.cached, fitted, image.Point{})
	} else {
		fillRect(b.cached, b.cached.Bounds(), b.fill)
	}
	b.rendered = true
	return b.cached, b.region, true
}
