package rotation

import (
	"fmt"

	"github.com/genricoloni/spindeck/internal/domain"
)

// Variant selects one of the three skin families
type Variant int

const (
	// Basic has no mechanically animated elements
	Basic Variant = iota
	// Cassette shows a pair of tape reels
	Cassette
	// Turntable shows a vinyl platter and optionally a tonearm
	Turntable
)

// String returns the variant name
func (v Variant) String() string {
	switch v {
	case Basic:
		return "basic"
	case Cassette:
		return "cassette"
	case Turntable:
		return "turntable"
	default:
		return "unknown"
	}
}

// ParseVariant maps a configuration string to a Variant
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "basic":
		return Basic, nil
	case "cassette":
		return Cassette, nil
	case "turntable":
		return Turntable, nil
	default:
		return Basic, fmt.Errorf("unknown skin variant %q", s)
	}
}

// TopologyConfig carries the element presence flags declared by a skin
// configuration, before ambiguity resolution.
type TopologyConfig struct {
	Variant   Variant
	Tonearm   bool
	ReelLeft  bool
	ReelRight bool
	Vinyl     bool
}

// Topology is the resolved, immutable element set of a loaded skin.
type Topology struct {
	Variant      Variant
	HasTonearm   bool
	HasReelLeft  bool
	HasReelRight bool
	HasVinyl     bool

	// VinylFromReel names the reel slot that was reinterpreted as the
	// vinyl platter, or -1 when no reinterpretation happened. Rendering
	// uses it to pick the disc bitmap from the reel's configuration.
	VinylFromReel ElementID
}

// Resolve applies the legacy-configuration compatibility rule and freezes
// the element set: a configuration declaring exactly one reel plus a
// tonearm means that reel is really the vinyl platter, never a genuine
// second reel. Two reels plus a tonearm cannot be reinterpreted and is
// rejected as a topology conflict.
func Resolve(cfg TopologyConfig) (Topology, error) {
	topo := Topology{
		Variant:       cfg.Variant,
		HasTonearm:    cfg.Tonearm,
		HasReelLeft:   cfg.ReelLeft,
		HasReelRight:  cfg.ReelRight,
		HasVinyl:      cfg.Vinyl,
		VinylFromReel: -1,
	}

	reels := 0
	if cfg.ReelLeft {
		reels++
	}
	if cfg.ReelRight {
		reels++
	}

	if cfg.Tonearm && reels == 1 {
		// Single reel next to a tonearm: legacy configs used a reel slot
		// to position the vinyl disc.
		if cfg.ReelLeft {
			topo.VinylFromReel = ReelLeft
		} else {
			topo.VinylFromReel = ReelRight
		}
		topo.HasVinyl = true
		topo.HasReelLeft = false
		topo.HasReelRight = false
		return topo, nil
	}

	if cfg.Tonearm && reels == 2 && !cfg.Vinyl {
		return Topology{}, fmt.Errorf("%w: two reels plus a tonearm", domain.ErrTopologyConflict)
	}

	return topo, nil
}
