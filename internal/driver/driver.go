// Package driver runs the per-tick frame loop: sample inputs, advance the
// skin, composite and present, then sleep to hold the target rate. All
// rendering work happens on the loop's goroutine because the underlying
// surface is not safely shareable across threads.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/skin"
	"go.uber.org/zap"
)

// Options configures the frame driver
type Options struct {
	// FrameRate is the target ticks per second
	FrameRate int
	// MaxPresentFailures is the consecutive presentation-failure count
	// after which Run gives up and returns the error to the caller
	MaxPresentFailures int
}

// Driver owns the frame loop. Reload and Stop requests are recorded from
// any goroutine and honored at the top of the next tick; a tick in flight
// always completes so no partial frame is presented.
type Driver struct {
	logger      *zap.Logger
	handler     *skin.Handler
	source      domain.Snapshots
	frameRate   int
	maxFailures int

	mu      sync.Mutex
	pending *skin.Geometry
	stopped bool

	prev     *domain.FrameInput
	failures int
}

// New creates a frame driver over a loaded skin handler
func New(logger *zap.Logger, handler *skin.Handler, source domain.Snapshots, opts Options) *Driver {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	if opts.MaxPresentFailures <= 0 {
		opts.MaxPresentFailures = 10
	}
	return &Driver{
		logger:      logger,
		handler:     handler,
		source:      source,
		frameRate:   opts.FrameRate,
		maxFailures: opts.MaxPresentFailures,
	}
}

// Run drives ticks at the configured rate until the context is cancelled,
// Stop is called, or consecutive presentation failures exceed the cap.
func (d *Driver) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(d.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Info("Frame loop started",
		zap.Int("fps", d.frameRate),
		zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Frame loop stopped by context")
			d.handler.Stop()
			return nil
		case now := <-ticker.C:
			if d.isStopped() {
				d.logger.Info("Frame loop stopped")
				d.handler.Stop()
				return nil
			}
			if err := d.Tick(now); err != nil {
				d.handler.Stop()
				return err
			}
		}
	}
}

// Tick advances exactly one frame. Local render problems never escape: a
// non-nil return means the loop should terminate (repeated presentation
// failure or an unusable handler state).
func (d *Driver) Tick(now time.Time) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	if pending != nil {
		if err := d.handler.Reload(*pending); err != nil {
			return fmt.Errorf("skin reload failed: %w", err)
		}
	}

	in := d.source.Latest()
	if in == nil {
		in = d.prev
	}
	if in == nil {
		// Nothing has ever arrived: render the idle skin.
		in = &domain.FrameInput{Status: domain.StatusStopped, Repeat: domain.RepeatNone}
	}
	d.prev = in

	snap := *in
	snap.Now = now

	err := d.handler.Tick(&snap)
	if err == nil {
		d.failures = 0
		return nil
	}

	if errors.Is(err, domain.ErrPresentationFailure) {
		d.failures++
		d.logger.Error("Presentation failed",
			zap.Int("consecutive", d.failures),
			zap.Error(err))
		if d.failures >= d.maxFailures {
			return fmt.Errorf("giving up after %d consecutive presentation failures: %w",
				d.failures, err)
		}
		return nil
	}

	return fmt.Errorf("frame tick failed: %w", err)
}

// Reload schedules a skin change, applied at the top of the next tick. A
// newer request overwrites an unapplied one.
func (d *Driver) Reload(geom skin.Geometry) {
	d.mu.Lock()
	d.pending = &geom
	d.mu.Unlock()
	d.logger.Info("Skin reload scheduled",
		zap.String("variant", geom.Variant.String()))
}

// Stop requests terminal shutdown, honored at the top of the next tick
func (d *Driver) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

func (d *Driver) isStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}
