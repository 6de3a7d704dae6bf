package render

import (
	"image"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/rotation"
	"go.uber.org/zap"
)

// AngleSource abstracts where a tonearm's angle comes from. The compositor
// never learns whether the arm is driven by continuous time or by playback
// state; both satisfy the same contract.
type AngleSource interface {
	Angle(in *domain.FrameInput) float64
}

// ContinuousAngle reads a time-advanced rotation element
type ContinuousAngle struct {
	Element *rotation.Element
}

// Angle returns the element's current angle
func (c ContinuousAngle) Angle(*domain.FrameInput) float64 {
	return c.Element.Angle()
}

// SweepAngle derives the arm angle from playback state: parked at Rest when
// stopped, otherwise tracking from Start to End proportionally to track
// progress.
type SweepAngle struct {
	Rest  float64
	Start float64
	End   float64
}

// Angle computes the state-driven arm angle
func (s SweepAngle) Angle(in *domain.FrameInput) float64 {
	if in == nil || in.Status == domain.StatusStopped {
		return s.Rest
	}
	total := in.Elapsed + in.Remaining
	if total <= 0 {
		return s.Start
	}
	progress := float64(in.Elapsed) / float64(total)
	return s.Start + (s.End-s.Start)*progress
}

// Tonearm renders the pickup arm pivoted at its bearing point. Unlike the
// reels the pivot is usually not the bitmap center, so the bitmap is padded
// around the configured pivot once at construction.
type Tonearm struct {
	logger *zap.Logger
	src    AngleSource
	canvas *image.NRGBA
	region image.Rectangle

	lastAngle float64
	cached    *image.NRGBA
	rendered  bool
}

// NewTonearm creates the arm renderer. bitmapPivot is the bearing point in
// bitmap coordinates; surfacePivot is where it sits on the surface.
func NewTonearm(logger *zap.Logger, bitmap image.Image, bitmapPivot, surfacePivot image.Point, src AngleSource) *Tonearm {
	canvas := padAroundPivot(bitmap, bitmapPivot)
	return &Tonearm{
		logger: logger,
		src:    src,
		canvas: canvas,
		region: regionAroundPivot(surfacePivot, canvas.Bounds().Dx()),
	}
}

// Render rotates the arm to the angle reported by its source
func (t *Tonearm) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	angle := t.src.Angle(in)
	if t.rendered && angle == t.lastAngle {
		return t.cached, t.region, false
	}

	t.lastAngle = angle
	t.cached = rotateCanvas(t.canvas, angle)
	t.rendered = true
	return t.cached, t.region, true
}
