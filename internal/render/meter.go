package render

import (
	"image"
	"image/color"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
)

const peakDecayPerSecond = 0.35 // fraction of full scale the peak marker falls per second

// Meter renders the live stereo level bars with peak-hold markers. It is
// the one always-live layer: Render reports changed on every call so the
// compositor redraws it each frame regardless of dirty state.
type Meter struct {
	logger *zap.Logger
	region image.Rectangle
	barL   color.Color
	barR   color.Color
	peak   color.Color

	peakL   float64
	peakR   float64
	lastNow time.Time
}

// NewMeter creates the meter renderer
func NewMeter(logger *zap.Logger, region image.Rectangle) *Meter {
	return &Meter{
		logger: logger,
		region: region,
		barL:   color.NRGBA{R: 80, G: 220, B: 100, A: 255},
		barR:   color.NRGBA{R: 80, G: 200, B: 220, A: 255},
		peak:   color.NRGBA{R: 255, G: 90, B: 70, A: 255},
	}
}

// Render draws both channel bars. Always changed.
func (m *Meter) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	var levelL, levelR float64
	var now time.Time
	if in != nil {
		levelL, levelR = clamp01(in.LevelL), clamp01(in.LevelR)
		now = in.Now
	}

	// Peak markers fall at a fixed rate and latch onto higher levels.
	if !m.lastNow.IsZero() {
		fall := peakDecayPerSecond * now.Sub(m.lastNow).Seconds()
		m.peakL -= fall
		m.peakR -= fall
	}
	m.lastNow = now
	if levelL > m.peakL {
		m.peakL = levelL
	}
	if levelR > m.peakR {
		m.peakR = levelR
	}
	m.peakL, m.peakR = clamp01(m.peakL), clamp01(m.peakR)

	img := newCanvas(m.region.Dx(), m.region.Dy())
	h := m.region.Dy()
	barH := (h - 2) / 2
	m.drawBar(img, 0, barH, levelL, m.peakL, m.barL)
	m.drawBar(img, barH+2, barH, levelR, m.peakR, m.barR)

	return img, m.region, true
}

func (m *Meter) drawBar(img *image.NRGBA, y, h int, level, peak float64, c color.Color) {
	w := m.region.Dx()
	fillRect(img, image.Rect(0, y, w, y+h), color.NRGBA{R: 16, G: 16, B: 16, A: 255})
	fillRect(img, image.Rect(0, y, int(level*float64(w)), y+h), c)
	px := int(peak * float64(w))
	if px > 1 {
		fillRect(img, image.Rect(px-2, y, px, y+h), m.peak)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
