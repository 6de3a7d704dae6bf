package domain

import (
	"image"
	"time"
)

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// RepeatMode mirrors the MPRIS LoopStatus values
type RepeatMode string

const (
	// RepeatNone disables repeat
	RepeatNone RepeatMode = "None"
	// RepeatTrack repeats the current track
	RepeatTrack RepeatMode = "Track"
	// RepeatAll repeats the whole playlist
	RepeatAll RepeatMode = "Playlist"
)

// PlaybackEvent is what the player monitor emits when the playback state of
// any tracked player changes. It carries everything the display needs except
// the decoded artwork, which arrives separately through the art pipeline
// (ArtURL is the key linking the two).
type PlaybackEvent struct {
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
	// Album name
	Album string
	// ArtURL is the URL or local path to the album artwork
	ArtURL string
	// Status is the current playback status
	Status PlayerStatus
	// Volume in the 0.0-1.0 range
	Volume float64
	// Shuffle playback order
	Shuffle bool
	// Repeat mode
	Repeat RepeatMode
	// Elapsed position into the current track
	Elapsed time.Duration
	// Length of the current track (zero when unknown)
	Length time.Duration
	// SampleRate of the stream in Hz (zero when the player does not report it)
	SampleRate int
	// BitDepth of the stream in bits (zero when unknown)
	BitDepth int
}

// FrameInput is the read-only per-frame snapshot consumed by the skin
// handler. It is assembled once per frame boundary by the input collector;
// nothing downstream may mutate it. A nil Art means "no new artwork this
// frame, keep whatever was shown before".
type FrameInput struct {
	// Now is the frame timestamp, stamped by the frame driver
	Now time.Time

	// LevelL and LevelR are the current audio levels, 0.0-1.0
	LevelL float64
	LevelR float64

	// Playback state
	Status  PlayerStatus
	Shuffle bool
	Repeat  RepeatMode
	Muted   bool
	Volume  float64

	// Track position
	Elapsed   time.Duration
	Remaining time.Duration

	// Stream format
	SampleRate int
	BitDepth   int

	// Art is the decoded album artwork, or nil while decoding is pending
	Art image.Image

	// Track text
	Title  string
	Artist string
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}
