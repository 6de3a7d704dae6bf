package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// VolumeStyle selects how the volume indicator is drawn
type VolumeStyle int

const (
	// VolumeNumeric shows a percentage
	VolumeNumeric VolumeStyle = iota
	// VolumeSlider shows a horizontal bar
	VolumeSlider
	// VolumeKnob shows a rotary knob with a position mark
	VolumeKnob
	// VolumeArc shows a partial ring filled to the volume
	VolumeArc
)

// ParseVolumeStyle maps a configuration string to a VolumeStyle
func ParseVolumeStyle(s string) (VolumeStyle, error) {
	switch s {
	case "numeric":
		return VolumeNumeric, nil
	case "slider":
		return VolumeSlider, nil
	case "knob":
		return VolumeKnob, nil
	case "arc":
		return VolumeArc, nil
	default:
		return VolumeNumeric, fmt.Errorf("unknown volume style %q", s)
	}
}

// indicatorState is the cached previous-frame snapshot of everything the
// indicator strip depends on. Volume and progress are quantized so that
// sub-pixel input jitter does not mark the layer dirty.
type indicatorState struct {
	status   domain.PlayerStatus
	shuffle  bool
	muted    bool
	repeat   domain.RepeatMode
	volume   int // percent
	progress int // percent
}

// Indicators renders the status strip: play-state, shuffle, repeat and mute
// LEDs, the volume indicator in the configured style, and the track
// progress bar. Level-triggered: redraws only when the underlying state
// differs from the previous frame.
type Indicators struct {
	logger *zap.Logger
	region image.Rectangle
	face   font.Face
	style  VolumeStyle
	glow   bool

	last     indicatorState
	cached   *image.NRGBA
	rendered bool
}

// NewIndicators creates the indicator strip renderer
func NewIndicators(logger *zap.Logger, face font.Face, region image.Rectangle, style VolumeStyle, glow bool) *Indicators {
	return &Indicators{
		logger: logger,
		region: region,
		face:   face,
		style:  style,
		glow:   glow,
	}
}

func stateOf(in *domain.FrameInput) indicatorState {
	if in == nil {
		return indicatorState{status: domain.StatusStopped, repeat: domain.RepeatNone}
	}
	st := indicatorState{
		status:  in.Status,
		shuffle: in.Shuffle,
		muted:   in.Muted,
		repeat:  in.Repeat,
		volume:  int(clamp01(in.Volume)*100 + 0.5),
	}
	if total := in.Elapsed + in.Remaining; total > 0 {
		st.progress = int(float64(in.Elapsed) / float64(total) * 100)
	}
	return st
}

// Render redraws the strip when any indicator value changed
func (r *Indicators) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	state := stateOf(in)
	if r.rendered && state == r.last {
		return r.cached, r.region, false
	}

	r.last = state
	r.cached = r.draw(state)
	r.rendered = true
	return r.cached, r.region, true
}

func (r *Indicators) draw(st indicatorState) *image.NRGBA {
	img := newCanvas(r.region.Dx(), r.region.Dy())
	w, h := r.region.Dx(), r.region.Dy()

	ledY := h / 3
	ledR := h / 6
	step := ledR * 5

	off := color.NRGBA{R: 45, G: 45, B: 45, A: 255}

	playColor := off
	switch st.status {
	case domain.StatusPlaying:
		playColor = color.NRGBA{R: 70, G: 230, B: 90, A: 255}
	case domain.StatusPaused:
		playColor = color.NRGBA{R: 240, G: 200, B: 60, A: 255}
	}
	r.led(img, ledR*2, ledY, ledR, playColor, playColor != off)

	shufColor := off
	if st.shuffle {
		shufColor = color.NRGBA{R: 90, G: 150, B: 250, A: 255}
	}
	r.led(img, ledR*2+step, ledY, ledR, shufColor, st.shuffle)

	repColor := off
	if st.repeat != domain.RepeatNone && st.repeat != "" {
		repColor = color.NRGBA{R: 200, G: 120, B: 250, A: 255}
	}
	r.led(img, ledR*2+2*step, ledY, ledR, repColor, repColor != off)
	if st.repeat == domain.RepeatTrack {
		// second dot distinguishes track repeat from playlist repeat
		fillCircle(img, ledR*2+2*step, ledY-ledR-2, 2, repColor)
	}

	muteColor := off
	if st.muted {
		muteColor = color.NRGBA{R: 250, G: 80, B: 80, A: 255}
	}
	r.led(img, ledR*2+3*step, ledY, ledR, muteColor, st.muted)

	r.drawVolume(img, st, image.Rect(w-h*2, 0, w, h*2/3))

	// progress bar along the bottom edge
	barY := h - h/8 - 1
	fillRect(img, image.Rect(0, barY, w, h), color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	fillRect(img, image.Rect(0, barY, w*st.progress/100, h), color.NRGBA{R: 230, G: 230, B: 230, A: 255})

	return img
}

// led draws one indicator lamp, with an optional glow halo when lit
func (r *Indicators) led(img *image.NRGBA, cx, cy, radius int, c color.Color, lit bool) {
	if r.glow && lit {
		nr, ng, nb, _ := c.RGBA()
		halo := color.NRGBA{R: uint8(nr >> 8), G: uint8(ng >> 8), B: uint8(nb >> 8), A: 70}
		fillCircle(img, cx, cy, radius+radius/2+1, halo)
	}
	fillCircle(img, cx, cy, radius, c)
}

func (r *Indicators) drawVolume(img *image.NRGBA, st indicatorState, box image.Rectangle) {
	switch r.style {
	case VolumeSlider:
		track := image.Rect(box.Min.X, box.Min.Y+box.Dy()/2-2, box.Max.X, box.Min.Y+box.Dy()/2+2)
		fillRect(img, track, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		fillRect(img, image.Rect(track.Min.X, track.Min.Y,
			track.Min.X+box.Dx()*st.volume/100, track.Max.Y),
			color.NRGBA{R: 220, G: 220, B: 220, A: 255})

	case VolumeKnob:
		cx := box.Min.X + box.Dx()/2
		cy := box.Min.Y + box.Dy()/2
		radius := box.Dy() / 2
		fillCircle(img, cx, cy, radius, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
		// mark sweeps 270 degrees from 7 o'clock to 5 o'clock
		a := (135 + 270*float64(st.volume)/100) * math.Pi / 180
		mx := cx + int(float64(radius-2)*math.Cos(a))
		my := cy + int(float64(radius-2)*math.Sin(a))
		fillCircle(img, mx, my, 2, color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	case VolumeArc:
		cx := box.Min.X + box.Dx()/2
		cy := box.Min.Y + box.Dy()/2
		radius := box.Dy() / 2
		sweep := 270 * float64(st.volume) / 100
		for deg := 0.0; deg <= sweep; deg += 2 {
			a := (135 + deg) * math.Pi / 180
			px := cx + int(float64(radius)*math.Cos(a))
			py := cy + int(float64(radius)*math.Sin(a))
			fillCircle(img, px, py, 1, color.NRGBA{R: 220, G: 220, B: 220, A: 255})
		}

	default: // VolumeNumeric
		text := fmt.Sprintf("%d%%", st.volume)
		metrics := r.face.Metrics()
		baseline := box.Min.Y + (box.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{R: 220, G: 220, B: 220, A: 255}),
			Face: r.face,
			Dot:  fixed.P(box.Min.X, baseline),
		}
		d.DrawString(text)
	}
}
