package render

import (
	"image"
	"image/color"
)

// Placeholder bitmaps used until real skin assets or album art arrive.
// They are drawn with visible structure (spokes, head shell) so rotation
// stays perceptible even without assets on disk.

// PlaceholderArt returns a neutral dark cover square
func PlaceholderArt(size int) *image.NRGBA {
	img := newCanvas(size, size)
	fillRect(img, img.Bounds(), color.NRGBA{R: 40, G: 40, B: 48, A: 255})
	inset := size / 8
	fillRect(img, image.Rect(inset, inset, size-inset, size-inset),
		color.NRGBA{R: 64, G: 64, B: 76, A: 255})
	return img
}

// PlaceholderReel returns a spoked disc of the given diameter
func PlaceholderReel(diameter int) *image.NRGBA {
	img := newCanvas(diameter, diameter)
	c := diameter / 2
	fillCircle(img, c, c, c-1, color.NRGBA{R: 70, G: 70, B: 70, A: 255})
	// a single bright spoke makes the rotation visible
	spoke := diameter / 10
	fillRect(img, image.Rect(c-spoke/2, 2, c+spoke/2, c), color.NRGBA{R: 180, G: 180, B: 180, A: 255})
	fillCircle(img, c, c, diameter/8, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	return img
}

// PlaceholderTonearm returns an arm bitmap with the pivot at the top center
func PlaceholderTonearm(w, h int) *image.NRGBA {
	img := newCanvas(w, h)
	arm := w / 4
	fillRect(img, image.Rect(w/2-arm/2, 0, w/2+arm/2, h-w/4), color.NRGBA{R: 200, G: 200, B: 210, A: 255})
	fillCircle(img, w/2, h-w/4, w/4, color.NRGBA{R: 160, G: 160, B: 170, A: 255})
	fillCircle(img, w/2, w/4, w/3, color.NRGBA{R: 120, G: 120, B: 130, A: 255})
	return img
}
