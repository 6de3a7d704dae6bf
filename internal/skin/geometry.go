package skin

import (
	"image"
	"image/color"

	"github.com/genricoloni/spindeck/internal/render"
	"github.com/genricoloni/spindeck/internal/rotation"
)

// Geometry is the pre-validated, typed description of one skin: which
// optional elements exist, where they sit, their bitmaps and speeds. It is
// produced by the configuration collaborator; the core never parses
// configuration files itself.
type Geometry struct {
	// Variant selects the skin family
	Variant rotation.Variant
	// Size is the fixed surface size
	Size image.Point

	Background BackgroundSpec
	AlbumArt   *AlbumArtSpec
	ReelLeft   *ReelSpec
	ReelRight  *ReelSpec
	Tonearm    *TonearmSpec
	Meter      MeterSpec
	Text       TextSpec
	Indicators IndicatorSpec
	Meta       MetaSpec
	// Foreground is the optional topmost mask bitmap
	Foreground image.Image
}

// BackgroundSpec configures the lowest layer
type BackgroundSpec struct {
	// Bitmap is the static background, nil for fill/blur modes
	Bitmap image.Image
	// Fill paints a flat color when Bitmap is nil
	Fill color.Color
	// BlurArt re-renders the background from blurred album art
	BlurArt bool
}

// AlbumArtSpec configures the cover art layer
type AlbumArtSpec struct {
	Region      image.Rectangle
	Circle      bool
	Border      int
	BorderColor color.Color
	// Rotate spins the art at SpinSpeed degrees per second
	Rotate    bool
	SpinSpeed float64
}

// ReelSpec configures one reel slot. In a turntable geometry a single
// populated reel slot next to a tonearm is reinterpreted as the vinyl
// platter; the bitmap then becomes the disc.
type ReelSpec struct {
	// Bitmap spins about its own center, nil for a generated placeholder
	Bitmap image.Image
	// Pivot is the spindle position on the surface
	Pivot image.Point
	// Speed in degrees per second, signed
	Speed float64
	// Diameter of the generated placeholder when Bitmap is nil
	Diameter int
}

// TonearmSpec configures the pickup arm
type TonearmSpec struct {
	// Bitmap of the arm, nil for a generated placeholder
	Bitmap image.Image
	// BitmapPivot is the bearing point in bitmap coordinates
	BitmapPivot image.Point
	// Pivot is the bearing position on the surface
	Pivot image.Point
	// Continuous drives the arm from elapsed time at Speed deg/s instead
	// of from playback progress
	Continuous bool
	Speed      float64
	// Sweep angles for the state-driven mode
	RestAngle  float64
	StartAngle float64
	EndAngle   float64
}

// MeterSpec configures the always-live level meter
type MeterSpec struct {
	Region image.Rectangle
}

// TextSpec configures the scrolling track line
type TextSpec struct {
	Region image.Rectangle
	// Rate in pixels per second when the text overflows
	Rate float64
	Mode render.ScrollMode
	Color color.Color
}

// IndicatorSpec configures the status strip
type IndicatorSpec struct {
	Region image.Rectangle
	Volume render.VolumeStyle
	Glow   bool
}

// MetaSpec configures the time/format line
type MetaSpec struct {
	Region image.Rectangle
	Color  color.Color
}

// topologyConfig derives the presence flags the rotation resolver consumes
func (g Geometry) topologyConfig() rotation.TopologyConfig {
	return rotation.TopologyConfig{
		Variant:   g.Variant,
		Tonearm:   g.Tonearm != nil,
		ReelLeft:  g.ReelLeft != nil,
		ReelRight: g.ReelRight != nil,
		Vinyl:     false,
	}
}
