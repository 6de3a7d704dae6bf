package render

import (
	"image"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/rotation"
	"go.uber.org/zap"
)

// Reel renders one continuously rotating bitmap pivoted at its own center:
// a cassette reel, or the vinyl platter when a legacy configuration's reel
// slot was reinterpreted. The padded canvas is built once; each frame only
// rotates it to the element's current angle.
type Reel struct {
	logger  *zap.Logger
	element *rotation.Element
	canvas  *image.NRGBA
	region  image.Rectangle

	lastAngle float64
	cached    *image.NRGBA
	rendered  bool
}

// NewReel creates a reel renderer. The bitmap spins about its center, which
// is placed at the element's pivot point on the surface.
func NewReel(logger *zap.Logger, bitmap image.Image, element *rotation.Element) *Reel {
	b := bitmap.Bounds()
	center := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	canvas := padAroundPivot(bitmap, center)
	return &Reel{
		logger:  logger,
		element: element,
		canvas:  canvas,
		region:  regionAroundPivot(element.Pivot, canvas.Bounds().Dx()),
	}
}

// Render rotates the reel to its current angle. Changed whenever the angle
// advanced since the previous frame, which with a non-zero speed means
// every frame.
func (r *Reel) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	angle := r.element.Angle()
	if r.rendered && angle == r.lastAngle {
		return r.cached, r.region, false
	}

	r.lastAngle = angle
	r.cached = rotateCanvas(r.canvas, angle)
	r.rendered = true
	return r.cached, r.region, true
}
