package render

import (
	"image"
	"image/color"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ScrollMode selects how overlong text moves through its window
type ScrollMode int

const (
	// ScrollWrap loops the text with a gap between repetitions
	ScrollWrap ScrollMode = iota
	// ScrollPingPong bounces the text between its edges
	ScrollPingPong
)

const wrapGap = 40 // px between repetitions in wrap mode

// ScrollingText renders the track title/artist line. Text that fits its
// window is drawn centered and only re-renders when the string changes;
// overlong text scrolls at the configured rate and is dirty every frame
// the offset moves.
type ScrollingText struct {
	logger *zap.Logger
	face   font.Face
	color  color.Color
	region image.Rectangle
	rate   float64 // px/s
	mode   ScrollMode

	text     string
	width    int
	offset   float64
	dir      float64
	lastNow  time.Time
	cached   *image.NRGBA
	rendered bool
}

// NewScrollingText creates the text renderer
func NewScrollingText(logger *zap.Logger, face font.Face, col color.Color, region image.Rectangle, rate float64, mode ScrollMode) *ScrollingText {
	return &ScrollingText{
		logger: logger,
		face:   face,
		color:  col,
		region: region,
		rate:   rate,
		mode:   mode,
		dir:    1,
	}
}

// trackLine formats the displayed string
func trackLine(in *domain.FrameInput) string {
	if in == nil || in.Title == "" {
		return ""
	}
	if in.Artist == "" {
		return in.Title
	}
	return in.Title + " - " + in.Artist
}

// Render advances the scroll offset and redraws when needed
func (s *ScrollingText) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	text := trackLine(in)
	changed := !s.rendered

	if text != s.text {
		s.text = text
		s.width = font.MeasureString(s.face, text).Ceil()
		s.offset = 0
		s.dir = 1
		changed = true
	}

	var dt float64
	if in != nil {
		if s.rendered && !s.lastNow.IsZero() {
			dt = in.Now.Sub(s.lastNow).Seconds()
		}
		s.lastNow = in.Now
	}

	if s.width > s.region.Dx() && dt > 0 && s.rate > 0 {
		s.advance(dt)
		changed = true
	}

	if changed {
		s.cached = s.draw()
		s.rendered = true
	}
	return s.cached, s.region, changed
}

// advance moves the scroll offset by rate*dt according to the mode
func (s *ScrollingText) advance(dt float64) {
	switch s.mode {
	case ScrollPingPong:
		limit := float64(s.width - s.region.Dx())
		s.offset += s.dir * s.rate * dt
		if s.offset >= limit {
			s.offset = limit
			s.dir = -1
		} else if s.offset <= 0 {
			s.offset = 0
			s.dir = 1
		}
	default: // ScrollWrap
		span := float64(s.width + wrapGap)
		s.offset += s.rate * dt
		for s.offset >= span {
			s.offset -= span
		}
	}
}

func (s *ScrollingText) draw() *image.NRGBA {
	img := newCanvas(s.region.Dx(), s.region.Dy())
	if s.text == "" {
		return img
	}

	metrics := s.face.Metrics()
	baseline := (s.region.Dy() + metrics.Ascent.Ceil() - metrics.Descent.Ceil()) / 2

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(s.color),
		Face: s.face,
	}

	if s.width <= s.region.Dx() {
		d.Dot = fixed.P((s.region.Dx()-s.width)/2, baseline)
		d.DrawString(s.text)
		return img
	}

	x := -int(s.offset)
	d.Dot = fixed.P(x, baseline)
	d.DrawString(s.text)
	if s.mode == ScrollWrap {
		d.Dot = fixed.P(x+s.width+wrapGap, baseline)
		d.DrawString(s.text)
	}
	return img
}
