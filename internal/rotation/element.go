package rotation

import (
	"image"
	"math"
	"time"
)

// ElementID identifies a continuously rotating skin element
type ElementID int

const (
	// Platter is the turntable vinyl disc
	Platter ElementID = iota
	// Tonearm is the turntable pickup arm
	Tonearm
	// ReelLeft is the left cassette reel
	ReelLeft
	// ReelRight is the right cassette reel
	ReelRight
	// AlbumArt is spinning cover art
	AlbumArt
)

// String returns a human-readable element name for logging
func (id ElementID) String() string {
	switch id {
	case Platter:
		return "platter"
	case Tonearm:
		return "tonearm"
	case ReelLeft:
		return "reel-left"
	case ReelRight:
		return "reel-right"
	case AlbumArt:
		return "album-art"
	default:
		return "unknown"
	}
}

// Element models one rotating part. The angle is always derived from
// elapsed wall-clock time multiplied by the configured speed, never from
// per-frame increments, so variable frame timing cannot change the
// physical rotation rate.
type Element struct {
	// ID of the element
	ID ElementID
	// Pivot is the rotation center in surface coordinates
	Pivot image.Point
	// Speed in degrees per second; negative rotates counter-clockwise,
	// zero means the element is static
	Speed float64

	angle   float64
	last    time.Time
	started bool
}

// NewElement creates a rotating element at angle zero
func NewElement(id ElementID, pivot image.Point, speed float64) *Element {
	return &Element{ID: id, Pivot: pivot, Speed: speed}
}

// Advance moves the element to its angle at the given instant and returns
// it. The first call only records the epoch. Arbitrarily large gaps between
// calls are fine: the angle wraps via modulo, it is never clamped.
func (e *Element) Advance(now time.Time) float64 {
	if !e.started {
		e.started = true
		e.last = now
		return e.angle
	}

	dt := now.Sub(e.last).Seconds()
	e.last = now

	if e.Speed == 0 || dt == 0 {
		return e.angle
	}

	e.angle = wrap360(e.angle + e.Speed*dt)
	return e.angle
}

// Angle returns the current angle without advancing time
func (e *Element) Angle() float64 {
	return e.angle
}

// SetAngle forces the element to a specific angle. Used by state-driven
// elements (a tonearm tracking play position) that bypass time derivation.
func (e *Element) SetAngle(a float64) {
	e.angle = wrap360(a)
}

// wrap360 normalizes an angle into [0, 360)
func wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
