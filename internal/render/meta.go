package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// MetaText renders the elapsed/remaining clock and the stream format line.
// Level-triggered: it only redraws when the formatted string differs from
// the previous frame, which for the clock means about once per second.
type MetaText struct {
	logger *zap.Logger
	face   font.Face
	color  color.Color
	region image.Rectangle

	last     string
	cached   *image.NRGBA
	rendered bool
}

// NewMetaText creates the meta text renderer
func NewMetaText(logger *zap.Logger, face font.Face, col color.Color, region image.Rectangle) *MetaText {
	return &MetaText{logger: logger, face: face, color: col, region: region}
}

// Render redraws the meta line when its text changed
func (m *MetaText) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	text := formatMeta(in)
	if m.rendered && text == m.last {
		return m.cached, m.region, false
	}

	m.last = text
	m.cached = newCanvas(m.region.Dx(), m.region.Dy())

	metrics := m.face.Metrics()
	baseline := (m.region.Dy() + metrics.Ascent.Ceil() - metrics.Descent.Ceil()) / 2
	d := font.Drawer{
		Dst:  m.cached,
		Src:  image.NewUniform(m.color),
		Face: m.face,
		Dot:  fixed.P(0, baseline),
	}
	d.DrawString(text)

	m.rendered = true
	return m.cached, m.region, true
}

// formatMeta builds the "elapsed / -remaining  format" line
func formatMeta(in *domain.FrameInput) string {
	if in == nil {
		return ""
	}
	s := fmt.Sprintf("%s / -%s", clock(in.Elapsed), clock(in.Remaining))
	if in.SampleRate > 0 {
		s += fmt.Sprintf("  %gkHz", float64(in.SampleRate)/1000)
		if in.BitDepth > 0 {
			s += fmt.Sprintf("/%dbit", in.BitDepth)
		}
	}
	return s
}

// clock formats a duration as mm:ss
func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
