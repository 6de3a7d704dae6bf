package config

import (
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/render"
	"github.com/genricoloni/spindeck/internal/rotation"
	"github.com/genricoloni/spindeck/internal/skin"
	"go.uber.org/zap"
)

// Asset file names looked up in the asset directory. Missing files are
// fine: renderers fall back to generated placeholders.
const (
	assetBackground = "background.png"
	assetReel       = "reel.png"
	assetTonearm    = "tonearm.png"
	assetForeground = "foreground.png"
)

// 33 1/3 rpm in degrees per second
const platterSpeed = 200.0

// Geometry builds the typed, validated skin geometry for the configured
// variant. This is the configuration collaborator's side of the contract:
// the rendering core receives positions, sizes, colors and speeds, never
// raw configuration.
func (c *AppConfig) Geometry(res *domain.ScreenResolution) (skin.Geometry, error) {
	variant, err := rotation.ParseVariant(c.skin)
	if err != nil {
		return skin.Geometry{}, err
	}

	volume, err := render.ParseVolumeStyle(c.volumeStyle)
	if err != nil {
		return skin.Geometry{}, err
	}

	w, h := c.width, c.height
	if w <= 0 || h <= 0 {
		w, h = res.Width, res.Height
	}

	geom := skin.Geometry{
		Variant: variant,
		Size:    image.Pt(w, h),
		Background: skin.BackgroundSpec{
			Bitmap:  c.loadAsset(assetBackground),
			BlurArt: variant == rotation.Basic,
		},
		Meter:      skin.MeterSpec{Region: image.Rect(w/40, h-h/8, w-w/40, h-h/12)},
		Text:       skin.TextSpec{Region: image.Rect(w/40, h/48, w-w/40, h/48+24), Rate: 40},
		Indicators: skin.IndicatorSpec{Region: image.Rect(w/40, h-h/12+4, w-w/40, h-h/48), Volume: volume, Glow: true},
		Meta:       skin.MetaSpec{Region: image.Rect(w/40, h/48+28, w/2, h/48+48)},
		Foreground: c.loadAsset(assetForeground),
	}

	switch variant {
	case rotation.Basic:
		side := h / 2
		geom.AlbumArt = &skin.AlbumArtSpec{
			Region: image.Rect((w-side)/2, (h-side)/2-h/16, (w+side)/2, (h+side)/2-h/16),
		}

	case rotation.Cassette:
		d := h / 3
		geom.ReelLeft = &skin.ReelSpec{
			Bitmap:   c.loadAsset(assetReel),
			Pivot:    image.Pt(w/3, h/2),
			Speed:    90,
			Diameter: d,
		}
		geom.ReelRight = &skin.ReelSpec{
			Bitmap:   c.loadAsset(assetReel),
			Pivot:    image.Pt(2*w/3, h/2),
			Speed:    90,
			Diameter: d,
		}
		side := h / 5
		geom.AlbumArt = &skin.AlbumArtSpec{
			Region: image.Rect(w/2-side/2, h/8, w/2+side/2, h/8+side),
		}

	case rotation.Turntable:
		// A single reel slot plus a tonearm: the topology resolver
		// reinterprets the reel as the vinyl platter.
		geom.ReelLeft = &skin.ReelSpec{
			Bitmap:   c.loadAsset(assetReel),
			Pivot:    image.Pt(w/3, h/2),
			Speed:    platterSpeed,
			Diameter: h / 2,
		}
		geom.Tonearm = &skin.TonearmSpec{
			Bitmap:     c.loadAsset(assetTonearm),
			Pivot:      image.Pt(w/3+h/3, h/4),
			RestAngle:  -25,
			StartAngle: 0,
			EndAngle:   22,
		}
		side := h / 3
		geom.AlbumArt = &skin.AlbumArtSpec{
			Region:    image.Rect(3*w/4-side/2, (h-side)/2, 3*w/4+side/2, (h+side)/2),
			Circle:    true,
			Border:    4,
			Rotate:    true,
			SpinSpeed: platterSpeed / 8,
		}
	}

	return geom, nil
}

// loadAsset reads an optional skin bitmap, returning nil when absent
func (c *AppConfig) loadAsset(name string) image.Image {
	if c.assetDir == "" {
		return nil
	}
	path := filepath.Join(c.assetDir, name)
	img, err := imaging.Open(path)
	if err != nil {
		c.logger.Debug("Skin asset not loaded, using placeholder",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	c.logger.Info("Skin asset loaded", zap.String("path", path))
	return img
}
