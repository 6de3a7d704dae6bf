package monitor

import (
	"fmt"
	"testing"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/monitor/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	testPlayer = "org.mpris.MediaPlayer2.spotify"
	objPath    = "/org/mpris/MediaPlayer2"
	metaProp   = "org.mpris.MediaPlayer2.Player.Metadata"
	statusProp = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
	volProp    = "org.mpris.MediaPlayer2.Player.Volume"
	shufProp   = "org.mpris.MediaPlayer2.Player.Shuffle"
	loopProp   = "org.mpris.MediaPlayer2.Player.LoopStatus"
	posProp    = "org.mpris.MediaPlayer2.Player.Position"
)

// expectOptionalProps wires the four optional player properties
func expectOptionalProps(m *mocks.MockDBusClient, volume float64, shuffle bool, loop string, positionUs int64) {
	m.EXPECT().GetProperty(testPlayer, objPath, volProp).
		Return(dbus.MakeVariant(volume), nil)
	m.EXPECT().GetProperty(testPlayer, objPath, shufProp).
		Return(dbus.MakeVariant(shuffle), nil)
	m.EXPECT().GetProperty(testPlayer, objPath, loopProp).
		Return(dbus.MakeVariant(loop), nil)
	m.EXPECT().GetProperty(testPlayer, objPath, posProp).
		Return(dbus.MakeVariant(positionUs), nil)
}

// expectOptionalPropsFail makes all optional properties unavailable
func expectOptionalPropsFail(m *mocks.MockDBusClient) {
	for _, prop := range []string{volProp, shufProp, loopProp, posProp} {
		m.EXPECT().GetProperty(testPlayer, objPath, prop).
			Return(dbus.Variant{}, fmt.Errorf("unknown property"))
	}
}

// TestFetchPlayerState unifies all scenarios around full-state fetching:
// 1. Success with every optional property
// 2. Degraded success when optional properties are unavailable
// 3. DBus errors
// 4. Invalid data types
func TestFetchPlayerState(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*mocks.MockDBusClient)
		expectError   bool
		expectedEvent *domain.PlaybackEvent
	}{
		{
			name: "Success - Full state",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(testPlayer, objPath, metaProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title":  dbus.MakeVariant("Stairway to Heaven"),
						"xesam:artist": dbus.MakeVariant([]string{"Led Zeppelin"}),
						"xesam:album":  dbus.MakeVariant("Led Zeppelin IV"),
						"mpris:artUrl": dbus.MakeVariant("https://example.com/cover.jpg"),
						"mpris:length": dbus.MakeVariant(int64(482_000_000)),
					}), nil)
				m.EXPECT().GetProperty(testPlayer, objPath, statusProp).
					Return(dbus.MakeVariant("Playing"), nil)
				expectOptionalProps(m, 0.8, true, "Track", 30_000_000)
			},
			expectedEvent: &domain.PlaybackEvent{
				Title:   "Stairway to Heaven",
				Artist:  "Led Zeppelin",
				Album:   "Led Zeppelin IV",
				ArtURL:  "https://example.com/cover.jpg",
				Status:  domain.StatusPlaying,
				Volume:  0.8,
				Shuffle: true,
				Repeat:  domain.RepeatTrack,
				Elapsed: 30 * time.Second,
				Length:  482 * time.Second,
			},
		},
		{
			name: "Degraded - Optional properties unavailable",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(testPlayer, objPath, metaProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{
						"xesam:title": dbus.MakeVariant("Song A"),
					}), nil)
				m.EXPECT().GetProperty(testPlayer, objPath, statusProp).
					Return(dbus.MakeVariant("Paused"), nil)
				expectOptionalPropsFail(m)
			},
			expectedEvent: &domain.PlaybackEvent{
				Title:  "Song A",
				Status: domain.StatusPaused,
				Repeat: domain.RepeatNone,
			},
		},
		{
			name: "DBus Error - Metadata fetch fails",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(testPlayer, objPath, metaProp).
					Return(dbus.Variant{}, fmt.Errorf("connection timeout"))
			},
			expectError: true,
		},
		{
			name: "Invalid Data - Metadata is Int not Map",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(testPlayer, objPath, metaProp).
					Return(dbus.MakeVariant(12345), nil)
			},
			// Handled gracefully: no error, no event.
		},
		{
			name: "Invalid Data - Status is Array not String",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(testPlayer, objPath, metaProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{}), nil)
				m.EXPECT().GetProperty(testPlayer, objPath, statusProp).
					Return(dbus.MakeVariant([]string{"Playing"}), nil)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			mon := NewMprisMonitor(zap.NewNop())
			mon.conn = mockClient
			mon.running = true

			err := mon.fetchPlayerState(testPlayer)

			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			select {
			case event := <-mon.Events():
				if tt.expectedEvent == nil {
					t.Errorf("Unexpected event emitted: %+v", event)
					return
				}
				if event != *tt.expectedEvent {
					t.Errorf("Event mismatch:\nwant %+v\ngot  %+v", *tt.expectedEvent, event)
				}
			default:
				if tt.expectedEvent != nil {
					t.Error("Expected event was not emitted")
				}
			}
		})
	}
}

// TestDetectExistingPlayers verifies the initial scan of bus names.
func TestDetectExistingPlayers(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(*mocks.MockDBusClient)
		expectError      bool
		expectedEvents   int
		expectedMappings map[string]string
	}{
		{
			name: "Success - Detects Spotify and VLC",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{
					"org.freedesktop.DBus",
					"org.mpris.MediaPlayer2.spotify",
					"org.mpris.MediaPlayer2.vlc",
					"com.example.OtherApp",
				}, nil)

				m.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.spotify").Return(":1.100", nil)
				m.EXPECT().GetNameOwner("org.mpris.MediaPlayer2.vlc").Return(":1.200", nil)

				for _, player := range []string{"org.mpris.MediaPlayer2.spotify", "org.mpris.MediaPlayer2.vlc"} {
					m.EXPECT().GetProperty(player, objPath, metaProp).
						Return(dbus.MakeVariant(map[string]dbus.Variant{
							"xesam:title": dbus.MakeVariant("Song"),
						}), nil)
					m.EXPECT().GetProperty(player, objPath, statusProp).
						Return(dbus.MakeVariant("Playing"), nil)
					for _, prop := range []string{volProp, shufProp, loopProp, posProp} {
						m.EXPECT().GetProperty(player, objPath, prop).
							Return(dbus.Variant{}, fmt.Errorf("unknown property"))
					}
				}
			},
			expectedEvents: 2,
			expectedMappings: map[string]string{
				":1.100": "org.mpris.MediaPlayer2.spotify",
				":1.200": "org.mpris.MediaPlayer2.vlc",
			},
		},
		{
			name: "Failure - ListNames fails",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return(nil, fmt.Errorf("bus error"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			mon := NewMprisMonitor(zap.NewNop())
			mon.conn = mockClient
			mon.running = true

			err := mon.detectExistingPlayers()

			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if len(mon.playerNames) != len(tt.expectedMappings) {
				t.Errorf("Mapping count mismatch: want %d, got %d",
					len(tt.expectedMappings), len(mon.playerNames))
			}
			for k, v := range tt.expectedMappings {
				if mon.playerNames[k] != v {
					t.Errorf("Mapping mismatch for %s: want %s, got %s", k, v, mon.playerNames[k])
				}
			}

			eventsFound := 0
			for len(mon.Events()) > 0 {
				<-mon.Events()
				eventsFound++
			}
			if eventsFound != tt.expectedEvents {
				t.Errorf("Expected %d events, got %d", tt.expectedEvents, eventsFound)
			}
		})
	}
}

// TestHandlePropertiesChanged verifies that only relevant property changes
// trigger a state refresh.
func TestHandlePropertiesChanged(t *testing.T) {
	tests := []struct {
		name        string
		signal      *dbus.Signal
		expectFetch bool
	}{
		{
			name: "Relevant - PlaybackStatus changed",
			signal: &dbus.Signal{
				Name:   "org.freedesktop.DBus.Properties.PropertiesChanged",
				Sender: ":1.100",
				Body: []interface{}{
					playerIface,
					map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Paused")},
					[]string{},
				},
			},
			expectFetch: true,
		},
		{
			name: "Relevant - Volume changed",
			signal: &dbus.Signal{
				Name:   "org.freedesktop.DBus.Properties.PropertiesChanged",
				Sender: ":1.100",
				Body: []interface{}{
					playerIface,
					map[string]dbus.Variant{"Volume": dbus.MakeVariant(0.4)},
					[]string{},
				},
			},
			expectFetch: true,
		},
		{
			name: "Ignored - Irrelevant property",
			signal: &dbus.Signal{
				Name:   "org.freedesktop.DBus.Properties.PropertiesChanged",
				Sender: ":1.100",
				Body: []interface{}{
					playerIface,
					map[string]dbus.Variant{"CanSeek": dbus.MakeVariant(true)},
					[]string{},
				},
			},
		},
		{
			name: "Ignored - Wrong interface",
			signal: &dbus.Signal{
				Name:   "org.freedesktop.DBus.Properties.PropertiesChanged",
				Sender: ":1.100",
				Body: []interface{}{
					"org.mpris.MediaPlayer2",
					map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Paused")},
					[]string{},
				},
			},
		},
		{
			name: "Ignored - Short body",
			signal: &dbus.Signal{
				Name:   "org.freedesktop.DBus.Properties.PropertiesChanged",
				Sender: ":1.100",
				Body:   []interface{}{playerIface},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			if tt.expectFetch {
				mockClient.EXPECT().GetProperty(testPlayer, objPath, metaProp).
					Return(dbus.MakeVariant(map[string]dbus.Variant{}), nil)
				mockClient.EXPECT().GetProperty(testPlayer, objPath, statusProp).
					Return(dbus.MakeVariant("Paused"), nil)
				for _, prop := range []string{volProp, shufProp, loopProp, posProp} {
					mockClient.EXPECT().GetProperty(testPlayer, objPath, prop).
						Return(dbus.Variant{}, fmt.Errorf("unknown property"))
				}
			}

			mon := NewMprisMonitor(zap.NewNop())
			mon.conn = mockClient
			mon.running = true
			mon.playerNames = map[string]string{":1.100": testPlayer}

			mon.handlePropertiesChanged(tt.signal)

			select {
			case <-mon.Events():
				if !tt.expectFetch {
					t.Error("Should NOT emit event for ignored signal")
				}
			default:
				if tt.expectFetch {
					t.Error("Expected event was not emitted")
				}
			}
		})
	}
}

// TestHandleNameOwnerChanged verifies player lifecycle tracking on the bus.
func TestHandleNameOwnerChanged(t *testing.T) {
	t.Run("Player appears", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockClient := mocks.NewMockDBusClient(ctrl)
		mockClient.EXPECT().GetProperty(testPlayer, objPath, metaProp).
			Return(dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:title": dbus.MakeVariant("Song"),
			}), nil)
		mockClient.EXPECT().GetProperty(testPlayer, objPath, statusProp).
			Return(dbus.MakeVariant("Playing"), nil)
		for _, prop := range []string{volProp, shufProp, loopProp, posProp} {
			mockClient.EXPECT().GetProperty(testPlayer, objPath, prop).
				Return(dbus.Variant{}, fmt.Errorf("unknown property"))
		}

		mon := NewMprisMonitor(zap.NewNop())
		mon.conn = mockClient
		mon.running = true

		mon.handleNameOwnerChanged(&dbus.Signal{
			Name: "org.freedesktop.DBus.NameOwnerChanged",
			Body: []interface{}{testPlayer, "", ":1.100"},
		})

		if mon.playerNames[":1.100"] != testPlayer {
			t.Errorf("Player not registered, mappings: %v", mon.playerNames)
		}
		select {
		case event := <-mon.Events():
			if event.Title != "Song" {
				t.Errorf("Expected the new player's state, got %+v", event)
			}
		default:
			t.Error("Expected event from the new player")
		}
	})

	t.Run("Player disappears", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mon := NewMprisMonitor(zap.NewNop())
		mon.conn = mocks.NewMockDBusClient(ctrl)
		mon.running = true
		mon.playerNames = map[string]string{":1.100": testPlayer}

		mon.handleNameOwnerChanged(&dbus.Signal{
			Name: "org.freedesktop.DBus.NameOwnerChanged",
			Body: []interface{}{testPlayer, ":1.100", ""},
		})

		if _, still := mon.playerNames[":1.100"]; still {
			t.Error("Dead player still registered")
		}
		select {
		case event := <-mon.Events():
			if event.Status != domain.StatusStopped {
				t.Errorf("Expected a stopped event, got %+v", event)
			}
		default:
			t.Error("Expected a stopped event for the dead player")
		}
	})

	t.Run("Non-MPRIS name ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mon := NewMprisMonitor(zap.NewNop())
		mon.conn = mocks.NewMockDBusClient(ctrl)
		mon.running = true

		mon.handleNameOwnerChanged(&dbus.Signal{
			Name: "org.freedesktop.DBus.NameOwnerChanged",
			Body: []interface{}{"com.example.OtherApp", "", ":1.50"},
		})

		if len(mon.playerNames) != 0 {
			t.Errorf("Non-player name registered: %v", mon.playerNames)
		}
	})
}
