package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// newCanvas allocates a transparent NRGBA canvas
func newCanvas(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// drawAt composites src over dst with its top-left corner at p
func drawAt(dst *image.NRGBA, src image.Image, p image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(p)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}

// fillRect paints a solid rectangle
func fillRect(dst *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// fillCircle paints a filled disc centered at (cx, cy)
func fillCircle(dst *image.NRGBA, cx, cy, radius int, c color.Color) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				dst.Set(cx+x, cy+y, c)
			}
		}
	}
}

// circleMask builds an alpha mask holding a centered filled disc of the
// given diameter. Used to clip album art into a vinyl-style disc.
func circleMask(diameter int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, diameter, diameter))
	r := float64(diameter) / 2
	for y := 0; y < diameter; y++ {
		for x := 0; x < diameter; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}

// applyCircleMask clips a square image to a centered disc
func applyCircleMask(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	d := b.Dx()
	dst := newCanvas(d, b.Dy())
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, circleMask(d), image.Point{}, draw.Over)
	return dst
}

// padAroundPivot centers the given pivot (in src coordinates) on a square
// transparent canvas large enough that any rotation of src stays inside.
// Rotating the result about its center is then equivalent to rotating src
// about the pivot.
func padAroundPivot(src image.Image, pivot image.Point) *image.NRGBA {
	b := src.Bounds()
	far := 0.0
	for _, corner := range []image.Point{
		{b.Min.X, b.Min.Y}, {b.Max.X, b.Min.Y},
		{b.Min.X, b.Max.Y}, {b.Max.X, b.Max.Y},
	} {
		d := math.Hypot(float64(corner.X-pivot.X), float64(corner.Y-pivot.Y))
		if d > far {
			far = d
		}
	}
	side := 2*int(math.Ceil(far)) + 2
	canvas := newCanvas(side, side)
	off := image.Pt(side/2-(pivot.X-b.Min.X), side/2-(pivot.Y-b.Min.Y))
	drawAt(canvas, src, off)
	return canvas
}

// rotateCanvas spins a pivot-centered square canvas to the given clockwise
// angle in degrees and crops it back to its original side, keeping the
// pivot fixed at the center. imaging rotates counter-clockwise for positive
// angles, hence the sign flip.
func rotateCanvas(canvas *image.NRGBA, angle float64) *image.NRGBA {
	side := canvas.Bounds().Dx()
	rotated := imaging.Rotate(canvas, -angle, color.Transparent)
	return imaging.CropCenter(rotated, side, side)
}

// regionAroundPivot is the surface rectangle a pivot-centered square canvas
// occupies when its center sits at the given surface point.
func regionAroundPivot(pivot image.Point, side int) image.Rectangle {
	return image.Rect(pivot.X-side/2, pivot.Y-side/2, pivot.X-side/2+side, pivot.Y-side/2+side)
}
