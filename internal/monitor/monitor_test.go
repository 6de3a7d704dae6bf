package monitor

import (
	"testing"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// noopDBusClient satisfies DBusClient with empty results, for tests that
// only exercise parsing.
type noopDBusClient struct{}

func (noopDBusClient) Close() error                             { return nil }
func (noopDBusClient) AddMatchSignal(...dbus.MatchOption) error { return nil }
func (noopDBusClient) Signal(chan<- *dbus.Signal)               {}
func (noopDBusClient) ListNames() ([]string, error)             { return nil, nil }
func (noopDBusClient) GetNameOwner(string) (string, error)      { return "", nil }
func (noopDBusClient) GetProperty(string, string, string) (dbus.Variant, error) {
	return dbus.Variant{}, errUnavailable
}

var errUnavailable = dbus.ErrMsgNoObject

// TestParseEvent_DataVariations covers the metadata shapes different players
// actually produce.
func TestParseEvent_DataVariations(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]dbus.Variant
		status   string
		check    func(*testing.T, domain.PlaybackEvent)
	}{
		{
			name: "Artist array joined",
			metadata: map[string]dbus.Variant{
				"xesam:artist": dbus.MakeVariant([]string{"Simon", "Garfunkel"}),
			},
			status: "Playing",
			check: func(t *testing.T, e domain.PlaybackEvent) {
				if e.Artist != "Simon, Garfunkel" {
					t.Errorf("Expected joined artists, got %q", e.Artist)
				}
			},
		},
		{
			name: "Artist as bare string",
			metadata: map[string]dbus.Variant{
				"xesam:artist": dbus.MakeVariant("Single Artist"),
			},
			status: "Playing",
			check: func(t *testing.T, e domain.PlaybackEvent) {
				if e.Artist != "Single Artist" {
					t.Errorf("Expected 'Single Artist', got %q", e.Artist)
				}
			},
		},
		{
			name: "Length as uint64 microseconds",
			metadata: map[string]dbus.Variant{
				"mpris:length": dbus.MakeVariant(uint64(240_000_000)),
			},
			status: "Paused",
			check: func(t *testing.T, e domain.PlaybackEvent) {
				if e.Length != 240*time.Second {
					t.Errorf("Expected 240s length, got %v", e.Length)
				}
				if e.Status != domain.StatusPaused {
					t.Errorf("Expected Paused, got %v", e.Status)
				}
			},
		},
		{
			name:     "Missing everything defaults",
			metadata: map[string]dbus.Variant{},
			status:   "Stopped",
			check: func(t *testing.T, e domain.PlaybackEvent) {
				if e.Status != domain.StatusStopped {
					t.Errorf("Expected Stopped, got %v", e.Status)
				}
				if e.Repeat != domain.RepeatNone {
					t.Errorf("Expected RepeatNone, got %v", e.Repeat)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mon := NewMprisMonitor(zap.NewNop())
			mon.conn = noopDBusClient{}

			ev := mon.parseEvent("org.mpris.MediaPlayer2.test", tt.metadata, tt.status)
			tt.check(t, ev)
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		name     string
		in       interface{}
		expected int64
		ok       bool
	}{
		{"int64", int64(42), 42, true},
		{"uint64", uint64(42), 42, true},
		{"int32", int32(-7), -7, true},
		{"uint32", uint32(7), 7, true},
		{"string", "42", 0, false},
		{"float", 42.0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toInt64(tt.in)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("toInt64(%v): expected (%d, %v), got (%d, %v)",
					tt.in, tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestGetPlayerName(t *testing.T) {
	mon := NewMprisMonitor(zap.NewNop())
	mon.playerNames = map[string]string{":1.100": "org.mpris.MediaPlayer2.spotify"}

	if got := mon.getPlayerName(":1.100"); got != "org.mpris.MediaPlayer2.spotify" {
		t.Errorf("Expected the well-known name, got %q", got)
	}
	if got := mon.getPlayerName(":1.999"); got != ":1.999" {
		t.Errorf("Expected the unique name fallback, got %q", got)
	}
}

// TestEmit_NeverBlocks fills the channel past capacity; producers must not
// hang on a slow consumer.
func TestEmit_NeverBlocks(t *testing.T) {
	mon := NewMprisMonitor(zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			mon.emit(domain.PlaybackEvent{Title: "flood"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a full channel")
	}
}
