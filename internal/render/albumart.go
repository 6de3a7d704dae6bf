package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/rotation"
	"go.uber.org/zap"
)

// AlbumArtOptions configures the album art renderer
type AlbumArtOptions struct {
	// Region is the target rectangle on the surface
	Region image.Rectangle
	// Circle clips the art into a disc
	Circle bool
	// Border is the ring thickness in pixels, 0 for none (implies Circle)
	Border int
	// BorderColor paints the ring
	BorderColor color.Color
	// Spin, when non-nil, rotates the art with the element's current angle
	Spin *rotation.Element
}

// AlbumArt renders the cover art layer: fitted to its region, optionally
// disc-masked with a border ring, optionally spinning. A frame without new
// artwork reuses the previous bitmap; if artwork never arrived a neutral
// placeholder stands in (the asset-missing recovery path).
type AlbumArt struct {
	logger *zap.Logger
	opts   AlbumArtOptions

	src       image.Image
	fitted    *image.NRGBA
	lastAngle float64
	cached    *image.NRGBA
	rendered  bool
}

// NewAlbumArt creates the album art renderer
func NewAlbumArt(logger *zap.Logger, opts AlbumArtOptions) *AlbumArt {
	if opts.Border > 0 {
		opts.Circle = true
	}
	if opts.BorderColor == nil {
		opts.BorderColor = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	}
	return &AlbumArt{logger: logger, opts: opts}
}

// Render produces the art bitmap for this frame
func (a *AlbumArt) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	changed := !a.rendered

	if in != nil && in.Art != nil && in.Art != a.src {
		a.src = in.Art
		a.fitted = a.prepare(in.Art)
		changed = true
	}

	if a.fitted == nil {
		// No artwork has ever been supplied for this layer.
		a.logger.Warn("Album art unavailable, using placeholder",
			zap.Error(domain.ErrAssetMissing))
		a.fitted = a.prepare(PlaceholderArt(a.opts.Region.Dx()))
		changed = true
	}

	if a.opts.Spin != nil {
		angle := a.opts.Spin.Angle()
		if angle != a.lastAngle || changed {
			a.lastAngle = angle
			a.cached = imaging.CropCenter(
				imaging.Rotate(a.fitted, -angle, color.Transparent),
				a.opts.Region.Dx(), a.opts.Region.Dy())
			changed = true
		}
	} else if changed {
		a.cached = a.fitted
	}

	a.rendered = true
	return a.cached, a.opts.Region, changed
}

// prepare fits raw artwork into the target region and applies the mask and
// border ring.
func (a *AlbumArt) prepare(src image.Image) *image.NRGBA {
	w, h := a.opts.Region.Dx(), a.opts.Region.Dy()
	fitted := imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)

	if !a.opts.Circle {
		return fitted
	}

	if a.opts.Border > 0 {
		inner := imaging.Fill(src, w-2*a.opts.Border, h-2*a.opts.Border, imaging.Center, imaging.Lanczos)
		disc := newCanvas(w, h)
		fillCircle(disc, w/2, h/2, w/2-1, a.opts.BorderColor)
		drawAt(disc, applyCircleMask(inner), image.Pt(a.opts.Border, a.opts.Border))
		return disc
	}

	return applyCircleMask(fitted)
}
