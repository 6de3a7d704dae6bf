// Package compositor owns the fixed z-ordered layer stack, tracks per-layer
// dirty state, merges per-frame invalidated regions and drives the final
// blit/present sequence.
package compositor

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
)

// Slot is one of the eight fixed z-order positions. The order is frozen at
// skin load; only layer content and dirty state change per frame.
type Slot int

const (
	// ZBackground is the lowest layer
	ZBackground Slot = iota
	// ZMechanics holds the rotating mechanical elements (reels, platter, tonearm)
	ZMechanics
	// ZAlbumArt holds the cover art
	ZAlbumArt
	// ZMeter holds the live level meter
	ZMeter
	// ZText holds the scrolling track text
	ZText
	// ZIndicators holds the status LED strip
	ZIndicators
	// ZMeta holds the time/format text
	ZMeta
	// ZForeground is the topmost mask layer
	ZForeground

	numSlots
)

// String returns the slot name for logging
func (s Slot) String() string {
	names := [...]string{"background", "mechanics", "album-art", "meter",
		"text", "indicators", "meta", "foreground"}
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// Source produces a layer's content for the current frame. The returned
// bitmap may be nil when changed is false; the compositor keeps the bitmap
// from the last changed render.
type Source interface {
	Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool)
}

// Layer is one occupied z-slot
type Layer struct {
	// Slot is the fixed z position
	Slot Slot
	// Source produces this layer's content each frame
	Source Source
	// Static layers render once and are excluded from invalidation until
	// an explicit reload
	Static bool
	// Live layers are exempt from dirty tracking and redraw every frame
	Live bool

	region   image.Rectangle
	content  image.Image
	rendered bool
}

// Region returns the layer's current target region
func (l *Layer) Region() image.Rectangle {
	return l.region
}

// ForcingMatrix declares, per redrawing slot, which other slots must be
// forced dirty in the same frame because a backing restore under the
// redrawing layer would otherwise erase their pixels without repaint. It is
// fixed at skin-topology-resolution time.
type ForcingMatrix map[Slot][]Slot

// Compositor merges per-frame invalidation across the layer stack and
// blits changed content onto the surface in ascending z-order.
type Compositor struct {
	logger  *zap.Logger
	sink    domain.Sink
	forcing ForcingMatrix
	surface *image.RGBA
	layers  [numSlots]*Layer
	invalid RegionSet

	lastInvalidated []image.Rectangle
}

// New creates a compositor for a surface of the given size
func New(logger *zap.Logger, size image.Point, sink domain.Sink, forcing ForcingMatrix) *Compositor {
	return &Compositor{
		logger:  logger,
		sink:    sink,
		forcing: forcing,
		surface: image.NewRGBA(image.Rect(0, 0, size.X, size.Y)),
	}
}

// SetLayer installs a layer into its slot. Called at skin load; never
// during a frame.
func (c *Compositor) SetLayer(l *Layer) {
	c.layers[l.Slot] = l
}

// Layer returns the layer in the given slot, or nil
func (c *Compositor) Layer(s Slot) *Layer {
	return c.layers[s]
}

// Surface exposes the backing surface (test and sink inspection only)
func (c *Compositor) Surface() *image.RGBA {
	return c.surface
}

// InvalidateAll marks every occupied layer dirty and resets static-layer
// state. Used on skin reload; pending invalidation from before the reload
// is discarded.
func (c *Compositor) InvalidateAll() {
	c.invalid.Reset()
	for _, l := range c.layers {
		if l != nil {
			l.rendered = false
			l.content = nil
			l.region = image.Rectangle{}
		}
	}
}

// LastInvalidated returns the regions invalidated by the most recent
// Composite call. Test hook.
func (c *Compositor) LastInvalidated() []image.Rectangle {
	return c.lastInvalidated
}

// Composite runs one frame: render sources in z-order, accumulate
// invalidated regions, apply forcing rules, re-blit every rendered layer
// within the invalidated bounds in ascending z, and present.
func (c *Compositor) Composite(in *domain.FrameInput) ([]image.Rectangle, error) {
	var changed [numSlots]bool

	for slot := Slot(0); slot < numSlots; slot++ {
		l := c.layers[slot]
		if l == nil {
			continue
		}
		// Static layers never re-render after their first frame.
		if l.Static && l.rendered {
			continue
		}

		img, region, dirty := l.Source.Render(in)
		if l.Live || !l.rendered {
			dirty = true
		}
		if !dirty {
			continue
		}

		// A mover whose new region no longer covers its previous one needs
		// the old area restored from lower layers.
		if l.rendered && l.region != region {
			c.invalid.Add(l.region)
		}

		if img != nil {
			l.content = img
		}
		l.region = region
		l.rendered = true
		c.invalid.Add(region)
		changed[slot] = true
	}

	// Forcing runs before the final bounding region is computed so the
	// forced regions are part of this frame's blit.
	for slot, forced := range c.forcing {
		if !changed[slot] {
			continue
		}
		for _, f := range forced {
			if l := c.layers[f]; l != nil && l.rendered {
				c.invalid.Add(l.region)
			}
		}
	}

	c.lastInvalidated = c.invalid.Regions()

	partial := c.sink.SupportsPartial()
	if c.invalid.Empty() && partial {
		return nil, nil
	}

	clip := c.invalid.Bounds()
	if !partial {
		// Degraded mode: the backend takes only whole frames, so every
		// frame repaints and presents the full surface, dirty or not.
		clip = c.surface.Bounds()
	}

	// Every rendered layer touching the repainted area is re-blitted, not
	// only the dirty ones: lower layers repaint the whole clip, so
	// quiescent content inside it would otherwise be erased.
	for slot := Slot(0); slot < numSlots; slot++ {
		l := c.layers[slot]
		if l == nil || l.content == nil {
			continue
		}
		c.blit(l, clip)
	}

	var regions []image.Rectangle
	if partial {
		regions = c.invalid.Regions()
	} else {
		regions = []image.Rectangle{c.surface.Bounds()}
	}

	if err := c.sink.Present(c.surface, regions); err != nil {
		// The backend never showed these regions; keep them so the next
		// successful present covers them too.
		return nil, fmt.Errorf("%w: %v", domain.ErrPresentationFailure, err)
	}

	c.invalid.Reset()
	return regions, nil
}

// blit draws a layer's content onto the surface, restricted to clip
func (c *Compositor) blit(l *Layer, clip image.Rectangle) {
	dst := l.region.Intersect(clip)
	if dst.Empty() {
		return
	}
	src := l.content.Bounds().Min.Add(dst.Min.Sub(l.region.Min))
	draw.Draw(c.surface, dst, l.content, src, draw.Over)
}
