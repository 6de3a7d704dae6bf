// Package monitor watches MPRIS players over the session D-Bus and emits
// playback events carrying everything the display renders: track text,
// artwork URL, status, volume, shuffle, repeat and position.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix = "org.mpris.MediaPlayer2."
	mprisPath   = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// playerProps are the PropertiesChanged keys that trigger a state refresh
var playerProps = []string{"Metadata", "PlaybackStatus", "Volume", "Shuffle", "LoopStatus"}

// MprisMonitor monitors media playback via the D-Bus MPRIS interface
type MprisMonitor struct {
	logger          *zap.Logger
	events          chan domain.PlaybackEvent
	mu              sync.RWMutex
	running         bool
	cancel          context.CancelFunc
	conn            DBusClient        // Interface for testability
	lastDropWarning time.Time         // Rate limiting for "channel full" warnings
	wg              sync.WaitGroup    // Tracks active producer goroutines
	playerNames     map[string]string // Maps unique bus names (:1.45) to well-known names
}

// NewMprisMonitor creates a new MPRIS monitor instance
func NewMprisMonitor(logger *zap.Logger) *MprisMonitor {
	return &MprisMonitor{
		logger:      logger,
		events:      make(chan domain.PlaybackEvent, 10),
		playerNames: make(map[string]string),
	}
}

// Start begins monitoring for media events. It blocks until the context is
// cancelled or the bus connection fails.
func (m *MprisMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true

	monitorCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	m.logger.Info("MPRIS monitor started")

	conn, err := NewStdDBusClient()
	if err != nil {
		m.logger.Error("Failed to connect to session bus", zap.Error(err))
		m.mu.Lock()
		defer m.mu.Unlock()
		m.running = false
		m.cancel = nil
		return fmt.Errorf("session bus connection failed: %w", err)
	}

	// Stop may have raced the connection attempt.
	select {
	case <-monitorCtx.Done():
		m.logger.Info("Monitor stopped during D-Bus connection")
		if err := conn.Close(); err != nil {
			m.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
		return monitorCtx.Err()
	default:
	}

	m.mu.Lock()
	m.conn = conn
	m.mu.Unlock()

	m.wg.Add(1)
	func() {
		defer m.wg.Done()
		if err := m.detectExistingPlayers(); err != nil {
			m.logger.Warn("Failed to detect existing players", zap.Error(err))
		}
	}()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(mprisPath),
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		m.logger.Error("Failed to add match signal", zap.Error(err))
		return fmt.Errorf("failed to add match signal: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		// Non-fatal, continue without dynamic player tracking.
		m.logger.Warn("Failed to add NameOwnerChanged match signal", zap.Error(err))
	}

	m.wg.Add(1)
	go m.monitorSignals(monitorCtx)

	<-monitorCtx.Done()

	m.logger.Info("MPRIS monitor stopped")
	return monitorCtx.Err()
}

// Stop gracefully stops the monitor
func (m *MprisMonitor) Stop(ctx context.Context) error {
	m.mu.Lock()

	if !m.running {
		m.mu.Unlock()
		return nil
	}

	if m.cancel != nil {
		m.cancel()
	}

	m.running = false
	m.mu.Unlock()

	// All producers must finish before the channel closes.
	m.logger.Debug("Waiting for monitoring goroutines to finish")
	m.wg.Wait()

	close(m.events)

	m.mu.Lock()
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			m.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
	}
	m.mu.Unlock()

	m.logger.Info("MPRIS monitor shutdown complete")
	return nil
}

// Events returns a read-only channel that emits playback events
func (m *MprisMonitor) Events() <-chan domain.PlaybackEvent {
	return m.events
}

// detectExistingPlayers queries D-Bus for currently running MPRIS players
func (m *MprisMonitor) detectExistingPlayers() error {
	names, err := m.conn.ListNames()
	if err != nil {
		return fmt.Errorf("failed to list bus names: %w", err)
	}

	playerCount := 0
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		playerCount++
		m.logger.Info("Detected MPRIS player", zap.String("name", name))

		uniqueName, err := m.conn.GetNameOwner(name)
		if err == nil {
			m.mu.Lock()
			m.playerNames[uniqueName] = name
			m.mu.Unlock()
		}

		if err := m.fetchPlayerState(name); err != nil {
			m.logger.Warn("Failed to fetch initial player state",
				zap.String("player", name),
				zap.Error(err))
		}
	}

	m.logger.Info("Player detection complete", zap.Int("count", playerCount))
	return nil
}

// fetchPlayerState reads the full playback state of one player and emits
// an event. Individual optional properties failing (volume, shuffle, loop,
// position) degrade to zero values rather than failing the fetch.
func (m *MprisMonitor) fetchPlayerState(playerName string) error {
	metaVariant, err := m.conn.GetProperty(playerName, mprisPath, playerIface+".Metadata")
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}

	// Players idling without a track may return nil or odd types here.
	metadata, ok := metaVariant.Value().(map[string]dbus.Variant)
	if !ok {
		m.logger.Debug("Metadata variant is not a map, skipping",
			zap.String("player", playerName))
		return nil
	}

	statusVariant, err := m.conn.GetProperty(playerName, mprisPath, playerIface+".PlaybackStatus")
	if err != nil {
		return fmt.Errorf("failed to get playback status: %w", err)
	}
	status, ok := statusVariant.Value().(string)
	if !ok {
		return fmt.Errorf("invalid playback status format")
	}

	ev := m.parseEvent(playerName, metadata, status)
	m.emit(ev)
	return nil
}

// parseEvent builds a playback event from metadata plus the optional
// player properties.
func (m *MprisMonitor) parseEvent(playerName string, metadata map[string]dbus.Variant, status string) domain.PlaybackEvent {
	ev := domain.PlaybackEvent{Status: domain.PlayerStatus(status), Repeat: domain.RepeatNone}

	if v, ok := metadata["xesam:title"]; ok {
		ev.Title, _ = v.Value().(string)
	}
	if v, ok := metadata["xesam:artist"]; ok {
		switch artists := v.Value().(type) {
		case []string:
			ev.Artist = strings.Join(artists, ", ")
		case string:
			// some players ship a bare string instead of a string array
			ev.Artist = artists
		}
	}
	if v, ok := metadata["xesam:album"]; ok {
		ev.Album, _ = v.Value().(string)
	}
	if v, ok := metadata["mpris:artUrl"]; ok {
		ev.ArtURL, _ = v.Value().(string)
	}
	if v, ok := metadata["mpris:length"]; ok {
		if us, ok := toInt64(v.Value()); ok {
			ev.Length = time.Duration(us) * time.Microsecond
		}
	}

	if v, err := m.conn.GetProperty(playerName, mprisPath, playerIface+".Volume"); err == nil {
		if vol, ok := v.Value().(float64); ok {
			ev.Volume = vol
		}
	}
	if v, err := m.conn.GetProperty(playerName, mprisPath, playerIface+".Shuffle"); err == nil {
		ev.Shuffle, _ = v.Value().(bool)
	}
	if v, err := m.conn.GetProperty(playerName, mprisPath, playerIface+".LoopStatus"); err == nil {
		if loop, ok := v.Value().(string); ok && loop != "" {
			ev.Repeat = domain.RepeatMode(loop)
		}
	}
	if v, err := m.conn.GetProperty(playerName, mprisPath, playerIface+".Position"); err == nil {
		if us, ok := toInt64(v.Value()); ok {
			ev.Elapsed = time.Duration(us) * time.Microsecond
		}
	}

	return ev
}

// toInt64 accepts the integer widths different players use for
// microsecond values
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}

// emit delivers an event without ever blocking a producer. Dropping
// intermediate events during rapid track changes is fine: the consumer is
// a latest-value-wins slot anyway.
func (m *MprisMonitor) emit(ev domain.PlaybackEvent) {
	select {
	case m.events <- ev:
		m.logger.Debug("Emitted playback event",
			zap.String("title", ev.Title),
			zap.String("status", string(ev.Status)))
	default:
		m.logChannelFullWarning()
	}
}

// monitorSignals listens for D-Bus signals and processes them
func (m *MprisMonitor) monitorSignals(ctx context.Context) {
	defer m.wg.Done()

	signals := make(chan *dbus.Signal, 10)
	m.conn.Signal(signals)

	m.logger.Info("Signal monitoring goroutine started")

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Signal monitoring goroutine stopped")
			return
		case sig := <-signals:
			if sig == nil {
				continue
			}
			if sig.Name == "org.freedesktop.DBus.NameOwnerChanged" {
				m.handleNameOwnerChanged(sig)
			} else {
				m.handlePropertiesChanged(sig)
			}
		}
	}
}

// handleNameOwnerChanged tracks player lifecycle on the bus
func (m *MprisMonitor) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}

	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, mprisPrefix) {
		return
	}

	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	switch {
	case newOwner != "" && oldOwner == "":
		m.mu.Lock()
		m.playerNames[newOwner] = name
		m.mu.Unlock()

		m.logger.Info("New MPRIS player detected",
			zap.String("player", name),
			zap.String("unique", newOwner))

		if err := m.fetchPlayerState(name); err != nil {
			m.logger.Warn("Failed to fetch state from new player",
				zap.String("player", name),
				zap.Error(err))
		}

	case newOwner == "" && oldOwner != "":
		m.mu.Lock()
		delete(m.playerNames, oldOwner)
		m.mu.Unlock()

		m.logger.Info("MPRIS player removed",
			zap.String("player", name),
			zap.String("unique", oldOwner))

		// The display should not keep spinning for a dead player.
		m.emit(domain.PlaybackEvent{Status: domain.StatusStopped, Repeat: domain.RepeatNone})

	default:
		m.mu.Lock()
		delete(m.playerNames, oldOwner)
		m.playerNames[newOwner] = name
		m.mu.Unlock()

		m.logger.Debug("MPRIS player ownership changed",
			zap.String("player", name),
			zap.String("oldUnique", oldOwner),
			zap.String("newUnique", newOwner))
	}
}

// handlePropertiesChanged refreshes the player state when any property the
// display depends on changed.
func (m *MprisMonitor) handlePropertiesChanged(sig *dbus.Signal) {
	if sig.Name != "org.freedesktop.DBus.Properties.PropertiesChanged" {
		return
	}
	if len(sig.Body) < 2 {
		return
	}

	interfaceName, ok := sig.Body[0].(string)
	if !ok || interfaceName != playerIface {
		return
	}

	changedProps, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	relevant := false
	for _, p := range playerProps {
		if _, has := changedProps[p]; has {
			relevant = true
			break
		}
	}
	if !relevant {
		return
	}

	playerName := m.getPlayerName(sig.Sender)
	m.logger.Debug("Received PropertiesChanged signal",
		zap.String("sender", sig.Sender),
		zap.String("player", playerName),
		zap.Int("properties", len(changedProps)))

	// Re-reading the full state is simpler than merging partial deltas and
	// the property set is tiny.
	if err := m.fetchPlayerState(playerName); err != nil {
		m.logger.Warn("Failed to refresh player state",
			zap.String("player", playerName),
			zap.Error(err))
	}
}

// getPlayerName resolves a unique bus name to the player's well-known
// name, falling back to the unique name itself.
func (m *MprisMonitor) getPlayerName(sender string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if name, ok := m.playerNames[sender]; ok {
		return name
	}
	return sender
}

// logChannelFullWarning rate-limits the "events channel full" warning
func (m *MprisMonitor) logChannelFullWarning() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Since(m.lastDropWarning) > 10*time.Second {
		m.lastDropWarning = time.Now()
		m.logger.Warn("Events channel full, dropping playback event")
	}
}
