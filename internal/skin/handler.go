// Package skin orchestrates the active skin: it owns the layer stack and
// rotating elements for the selected variant, resolves topology at load and
// feeds the compositor each frame.
package skin

import (
	"fmt"
	"image"
	"image/color"

	"github.com/genricoloni/spindeck/internal/compositor"
	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/render"
	"github.com/genricoloni/spindeck/internal/rotation"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

// State is the handler lifecycle state
type State int

const (
	// Uninitialized is the freshly constructed handler
	Uninitialized State = iota
	// Loaded has a resolved topology and a built layer stack
	Loaded
	// Running drives one frame per tick
	Running
	// Reloading is tearing down and rebuilding the stack
	Reloading
	// Stopped is terminal
	Stopped
)

// String returns the state name
func (s State) String() string {
	names := [...]string{"uninitialized", "loaded", "running", "reloading", "stopped"}
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// Handler owns all layers and rotating elements of the active skin. The
// compositor borrows them each frame and never outlives the handler.
type Handler struct {
	logger *zap.Logger
	sink   domain.Sink

	state    State
	geom     Geometry
	topo     rotation.Topology
	comp     *compositor.Compositor
	elements []*rotation.Element
}

// NewHandler creates an uninitialized handler bound to a presentation sink
func NewHandler(logger *zap.Logger, sink domain.Sink) *Handler {
	return &Handler{logger: logger, sink: sink}
}

// State returns the current lifecycle state
func (h *Handler) State() State {
	return h.state
}

// Topology returns the resolved element set. Valid after Load.
func (h *Handler) Topology() rotation.Topology {
	return h.topo
}

// Compositor exposes the owned compositor for inspection in tests
func (h *Handler) Compositor() *compositor.Compositor {
	return h.comp
}

// Load resolves the skin topology and constructs the fixed layer stack and
// forcing matrix for the selected variant. A topology conflict fails the
// load and keeps the handler out of Running; it is not retried.
func (h *Handler) Load(geom Geometry) error {
	if h.state == Stopped {
		return fmt.Errorf("cannot load a stopped skin handler")
	}

	topo, err := rotation.Resolve(geom.topologyConfig())
	if err != nil {
		return fmt.Errorf("failed to resolve skin topology: %w", err)
	}

	h.geom = geom
	h.topo = topo
	h.comp = compositor.New(h.logger, geom.Size, h.sink, forcingFor(geom.Variant))
	h.elements = h.buildStack()
	h.state = Loaded

	h.logger.Info("Skin loaded",
		zap.String("variant", geom.Variant.String()),
		zap.Bool("vinyl", topo.HasVinyl),
		zap.Bool("tonearm", topo.HasTonearm),
		zap.Int("elements", len(h.elements)))
	return nil
}

// buildStack installs all active layers into the compositor and returns
// the rotating elements that need per-tick advancement.
func (h *Handler) buildStack() []*rotation.Element {
	geom := h.geom
	face := basicfont.Face7x13
	surface := image.Rect(0, 0, geom.Size.X, geom.Size.Y)

	bg := render.NewBackground(h.logger, surface, geom.Background.Bitmap,
		backgroundFill(geom.Background.Fill), geom.Background.BlurArt)
	h.comp.SetLayer(&compositor.Layer{
		Slot:   compositor.ZBackground,
		Source: bg,
		Static: !bg.BlursArt(),
	})

	mech, elements := buildMechanics(h.logger, geom, h.topo)
	if mech != nil {
		h.comp.SetLayer(&compositor.Layer{Slot: compositor.ZMechanics, Source: mech})
	}

	if geom.AlbumArt != nil {
		opts := render.AlbumArtOptions{
			Region:      geom.AlbumArt.Region,
			Circle:      geom.AlbumArt.Circle,
			Border:      geom.AlbumArt.Border,
			BorderColor: geom.AlbumArt.BorderColor,
		}
		if geom.AlbumArt.Rotate {
			center := image.Pt(
				geom.AlbumArt.Region.Min.X+geom.AlbumArt.Region.Dx()/2,
				geom.AlbumArt.Region.Min.Y+geom.AlbumArt.Region.Dy()/2)
			el := rotation.NewElement(rotation.AlbumArt, center, geom.AlbumArt.SpinSpeed)
			elements = append(elements, el)
			opts.Spin = el
		}
		h.comp.SetLayer(&compositor.Layer{
			Slot:   compositor.ZAlbumArt,
			Source: render.NewAlbumArt(h.logger, opts),
		})
	}

	h.comp.SetLayer(&compositor.Layer{
		Slot:   compositor.ZMeter,
		Source: render.NewMeter(h.logger, geom.Meter.Region),
		Live:   true,
	})

	h.comp.SetLayer(&compositor.Layer{
		Slot: compositor.ZText,
		Source: render.NewScrollingText(h.logger, face, defaultColor(geom.Text.Color),
			geom.Text.Region, geom.Text.Rate, geom.Text.Mode),
	})

	h.comp.SetLayer(&compositor.Layer{
		Slot: compositor.ZIndicators,
		Source: render.NewIndicators(h.logger, face, geom.Indicators.Region,
			geom.Indicators.Volume, geom.Indicators.Glow),
	})

	h.comp.SetLayer(&compositor.Layer{
		Slot:   compositor.ZMeta,
		Source: render.NewMetaText(h.logger, face, defaultColor(geom.Meta.Color), geom.Meta.Region),
	})

	if geom.Foreground != nil {
		h.comp.SetLayer(&compositor.Layer{
			Slot:   compositor.ZForeground,
			Source: render.NewStatic(geom.Foreground, surface),
			Static: true,
		})
	}

	return elements
}

// Tick drives one frame: advance all rotating elements to the snapshot
// instant, then hand the stack to the compositor. The snapshot is read
// only; it is never mutated here or below.
func (h *Handler) Tick(in *domain.FrameInput) error {
	switch h.state {
	case Loaded:
		h.state = Running
	case Running:
	default:
		return fmt.Errorf("tick in state %s", h.state)
	}

	for _, e := range h.elements {
		e.Advance(in.Now)
	}

	if _, err := h.comp.Composite(in); err != nil {
		return err
	}
	return nil
}

// Reload tears down the current stack and rebuilds it for a new geometry
// (skin rotation). In-flight invalidation state is discarded.
func (h *Handler) Reload(geom Geometry) error {
	if h.state != Running && h.state != Loaded {
		return fmt.Errorf("reload in state %s", h.state)
	}

	wasRunning := h.state == Running
	h.state = Reloading
	h.logger.Info("Reloading skin", zap.String("variant", geom.Variant.String()))

	if err := h.Load(geom); err != nil {
		h.state = Stopped
		return err
	}
	h.comp.InvalidateAll()

	if wasRunning {
		h.state = Running
	}
	return nil
}

// Stop is terminal: it releases all owned layers and elements
func (h *Handler) Stop() {
	if h.state == Stopped {
		return
	}
	h.state = Stopped
	h.comp = nil
	h.elements = nil
	h.logger.Info("Skin handler stopped")
}

// backgroundFill defaults the background fill to near-black
func backgroundFill(c color.Color) color.Color {
	if c == nil {
		return color.NRGBA{R: 10, G: 10, B: 12, A: 255}
	}
	return c
}
