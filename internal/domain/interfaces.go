package domain

import (
	"context"
	"image"
)

// Monitor defines the interface for monitoring media playback events
// Implementations should handle D-Bus/MPRIS communication
type Monitor interface {
	// Start begins monitoring for media events
	// It should block until context is cancelled or an error occurs
	Start(ctx context.Context) error

	// Stop gracefully stops the monitor
	Stop(ctx context.Context) error

	// Events returns a read-only channel that emits PlaybackEvent
	// when media playback state changes
	Events() <-chan PlaybackEvent
}

// Snapshots supplies the frame driver with input snapshots.
// Latest never blocks: it returns the most recent available snapshot, the
// previous one when nothing new has arrived, or nil before the first one.
type Snapshots interface {
	Latest() *FrameInput
}

// Fetcher defines the interface for retrieving album artwork
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Sink abstracts the display backend that receives composited frames.
type Sink interface {
	// Present pushes the surface to the display. When SupportsPartial
	// reports true, regions lists the screen rectangles that actually
	// changed this frame; a backend that cannot do partial updates
	// receives the full surface bounds instead.
	Present(surface *image.RGBA, regions []image.Rectangle) error

	// SupportsPartial reports whether the backend can present a subset
	// of the surface. Backends returning false are driven in degraded
	// full-surface mode.
	SupportsPartial() bool
}

// Config defines the interface for application configuration
type Config interface {
	// GetSkin returns the configured skin variant name
	GetSkin() string

	// GetFrameRate returns the target frames per second
	GetFrameRate() int

	// GetOutputDir returns the directory for rendered frames
	GetOutputDir() string

	// GetSinkMode selects the presentation backend ("png" or "wallpaper")
	GetSinkMode() string
}
