package skin

import (
	"image"
	"image/color"

	"github.com/genricoloni/spindeck/internal/compositor"
	"github.com/genricoloni/spindeck/internal/render"
	"github.com/genricoloni/spindeck/internal/rotation"
	"go.uber.org/zap"
)

const placeholderReelDiameter = 120

// forcingFor returns the per-variant forcing matrix. Cassette and
// turntable skins restore the surface under their moving mechanics every
// frame, which erases overlapping text and indicator pixels; those layers
// must therefore be forced dirty whenever the mechanics layer redraws.
// Basic skins have no mechanically animated layer and carry no rules: the
// absence is part of the variant contract, not a runtime decision.
func forcingFor(v rotation.Variant) compositor.ForcingMatrix {
	switch v {
	case rotation.Cassette, rotation.Turntable:
		return compositor.ForcingMatrix{
			compositor.ZMechanics: {
				compositor.ZText,
				compositor.ZMeta,
				compositor.ZIndicators,
			},
		}
	default:
		return nil
	}
}

// buildMechanics constructs the rotating-element renderers for the
// mechanics slot, honoring the resolved topology. It returns nil when the
// variant has no mechanics (Basic).
func buildMechanics(logger *zap.Logger, geom Geometry, topo rotation.Topology) (compositor.Source, []*rotation.Element) {
	var parts []render.Part
	var elements []*rotation.Element

	reelFor := func(id rotation.ElementID, spec *ReelSpec) {
		bitmap := spec.Bitmap
		if bitmap == nil {
			d := spec.Diameter
			if d <= 0 {
				d = placeholderReelDiameter
			}
			bitmap = render.PlaceholderReel(d)
		}
		el := rotation.NewElement(id, spec.Pivot, spec.Speed)
		elements = append(elements, el)
		parts = append(parts, render.NewReel(logger, bitmap, el))
	}

	switch geom.Variant {
	case rotation.Cassette:
		if topo.HasReelLeft && geom.ReelLeft != nil {
			reelFor(rotation.ReelLeft, geom.ReelLeft)
		}
		if topo.HasReelRight && geom.ReelRight != nil {
			reelFor(rotation.ReelRight, geom.ReelRight)
		}

	case rotation.Turntable:
		// The platter comes from whichever reel slot the topology resolved
		// as the vinyl disc.
		if topo.HasVinyl {
			var spec *ReelSpec
			switch topo.VinylFromReel {
			case rotation.ReelLeft:
				spec = geom.ReelLeft
			case rotation.ReelRight:
				spec = geom.ReelRight
			}
			if spec != nil {
				reelFor(rotation.Platter, spec)
			}
		} else {
			if topo.HasReelLeft && geom.ReelLeft != nil {
				reelFor(rotation.ReelLeft, geom.ReelLeft)
			}
			if topo.HasReelRight && geom.ReelRight != nil {
				reelFor(rotation.ReelRight, geom.ReelRight)
			}
		}

		if topo.HasTonearm && geom.Tonearm != nil {
			spec := geom.Tonearm
			bitmap := spec.Bitmap
			pivot := spec.BitmapPivot
			if bitmap == nil {
				bitmap = render.PlaceholderTonearm(32, 140)
				pivot = image.Pt(16, 8)
			}

			var src render.AngleSource
			if spec.Continuous {
				el := rotation.NewElement(rotation.Tonearm, spec.Pivot, spec.Speed)
				elements = append(elements, el)
				src = render.ContinuousAngle{Element: el}
			} else {
				src = render.SweepAngle{
					Rest:  spec.RestAngle,
					Start: spec.StartAngle,
					End:   spec.EndAngle,
				}
			}
			parts = append(parts, render.NewTonearm(logger, bitmap, pivot, spec.Pivot, src))
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}
	return render.NewGroup(parts...), elements
}

// defaultColor substitutes a readable default for unset spec colors
func defaultColor(c color.Color) color.Color {
	if c == nil {
		return color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	}
	return c
}
