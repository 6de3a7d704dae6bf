// Package render implements the per-element drawing logic for skin layers:
// background, album art, reels, tonearm, scrolling text, indicators and the
// live level meter. Every renderer produces a bitmap/region pair plus a
// changed flag the compositor uses for dirty tracking.
package render

import (
	"image"

	"github.com/genricoloni/spindeck/internal/domain"
)

// Part is the capability shared by all element renderers. The returned
// bitmap may be nil when changed is false: consumers must keep the bitmap
// from the last changed render. The region is in surface coordinates.
type Part interface {
	Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool)
}

// Group composes several parts that share one compositor layer (the two
// cassette reels, or the turntable platter plus tonearm). It re-composes
// its canvas whenever any part reports a change, reusing cached bitmaps
// for the parts that did not.
type Group struct {
	parts  []Part
	states []partState
	region image.Rectangle
}

type partState struct {
	img    image.Image
	region image.Rectangle
}

// NewGroup creates a composite renderer over the given parts
func NewGroup(parts ...Part) *Group {
	return &Group{
		parts:  parts,
		states: make([]partState, len(parts)),
	}
}

// Render renders all parts and composes them into one canvas spanning the
// union of their regions.
func (g *Group) Render(in *domain.FrameInput) (image.Image, image.Rectangle, bool) {
	changed := false
	for i, p := range g.parts {
		img, region, c := p.Render(in)
		if c {
			g.states[i].img = img
			g.states[i].region = region
			changed = true
		}
	}

	// Regions are fixed per part after the first render, so the union is
	// computed once.
	if g.region.Empty() {
		for _, st := range g.states {
			g.region = g.region.Union(st.region)
		}
	}

	if !changed {
		return nil, g.region, false
	}

	canvas := newCanvas(g.region.Dx(), g.region.Dy())
	for _, st := range g.states {
		if st.img == nil {
			continue
		}
		drawAt(canvas, st.img, st.region.Min.Sub(g.region.Min))
	}
	return canvas, g.region, true
}
