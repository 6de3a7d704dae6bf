package driver

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"sync"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
)

// Collector turns asynchronous playback events and album-art decode
// results into per-frame input snapshots. It implements domain.Snapshots:
// the render thread calls Latest at the start of each tick and never
// blocks; playback events go through the latest-wins Slot and decoded
// art through mutex-guarded state.
type Collector struct {
	logger  *zap.Logger
	monitor domain.Monitor
	fetcher domain.Fetcher
	levels  LevelSource

	slot Slot

	mu     sync.Mutex
	artURL string
	art    image.Image

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCollector creates the input collector
func NewCollector(logger *zap.Logger, mon domain.Monitor, fetch domain.Fetcher, levels LevelSource) *Collector {
	return &Collector{
		logger:  logger,
		monitor: mon,
		fetcher: fetch,
		levels:  levels,
	}
}

// Start launches the event consumption loop
func (c *Collector) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.run(runCtx)
	return nil
}

// Stop cancels the loop and waits for in-flight art fetches
func (c *Collector) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Collector) run(ctx context.Context) {
	defer c.wg.Done()
	events := c.monitor.Events()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Input collector stopped")
			return
		case ev, ok := <-events:
			if !ok {
				c.logger.Info("Monitor events channel closed")
				return
			}
			c.apply(ctx, ev)
		}
	}
}

// apply publishes a playback event into the slot and kicks off an art
// fetch when the artwork URL changed.
func (c *Collector) apply(ctx context.Context, ev domain.PlaybackEvent) {
	c.slot.Publish(ev, time.Now())

	c.mu.Lock()
	fetchNeeded := ev.ArtURL != "" && ev.ArtURL != c.artURL
	c.mu.Unlock()

	c.logger.Debug("Playback event applied",
		zap.String("title", ev.Title),
		zap.String("status", string(ev.Status)))

	if fetchNeeded {
		c.wg.Add(1)
		go c.fetchArt(ctx, ev.ArtURL)
	}
}

// fetchArt downloads and decodes artwork off the render thread. A decode
// failure keeps the previous art (the asset-missing recovery: renderers
// simply see no new bitmap).
func (c *Collector) fetchArt(ctx context.Context, url string) {
	defer c.wg.Done()

	data, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.logger.Warn("Failed to fetch album art",
			zap.String("url", url), zap.Error(err))
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.logger.Warn("Failed to decode album art",
			zap.String("url", url), zap.Error(err))
		return
	}

	c.mu.Lock()
	c.artURL = url
	c.art = img
	c.mu.Unlock()

	b := img.Bounds()
	c.logger.Info("Album art updated",
		zap.String("url", url),
		zap.Int("w", b.Dx()), zap.Int("h", b.Dy()))
}

// Latest assembles the current snapshot. Non-blocking; returns nil before
// the first playback event arrives.
func (c *Collector) Latest() *domain.FrameInput {
	st, at, ok := c.slot.Latest()
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := st.Elapsed
	if st.Status == domain.StatusPlaying {
		// Extrapolate between position reports so the clock keeps moving.
		elapsed += time.Since(at)
	}
	remaining := st.Length - elapsed
	if remaining < 0 {
		remaining = 0
	}

	in := &domain.FrameInput{
		Status:     st.Status,
		Shuffle:    st.Shuffle,
		Repeat:     st.Repeat,
		Muted:      st.Volume == 0,
		Volume:     st.Volume,
		Elapsed:    elapsed,
		Remaining:  remaining,
		SampleRate: st.SampleRate,
		BitDepth:   st.BitDepth,
		Art:        c.art,
		Title:      st.Title,
		Artist:     st.Artist,
	}
	in.LevelL, in.LevelR = c.levels.Levels(st.Status, st.Volume)
	return in
}
