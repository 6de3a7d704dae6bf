//go:build linux
// +build linux

package sink

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// setterCommand represents a detected wallpaper setter command
type setterCommand struct {
	Name   string
	Binary string
	Args   []string // %s will be replaced with image path
}

var (
	// Ordered list of wallpaper commands to try (highest priority first)
	setterCommands = []setterCommand{
		// Hyprland - swww (recommended)
		{Name: "swww", Binary: "swww", Args: []string{"img", "%s"}},
		// Hyprland - hyprpaper
		{Name: "hyprpaper", Binary: "hyprctl", Args: []string{"hyprpaper", "wallpaper", ",%s"}},
		// swaybg (Sway/Wayland)
		{Name: "swaybg", Binary: "swaybg", Args: []string{"-i", "%s", "-m", "fill"}},
		// GNOME (dark theme)
		{Name: "gnome", Binary: "gsettings", Args: []string{"set", "org.gnome.desktop.background", "picture-uri-dark", "file://%s"}},
		// Generic X11 - feh
		{Name: "feh", Binary: "feh", Args: []string{"--bg-fill", "%s"}},
		// Generic X11 - nitrogen
		{Name: "nitrogen", Binary: "nitrogen", Args: []string{"--set-zoom-fill", "%s"}},
	}
)

// WallpaperSink presents frames by setting them as the desktop wallpaper.
// Wallpaper setters take whole images only, so this sink reports no
// partial-update support and the compositor drives it in degraded
// full-surface mode.
type WallpaperSink struct {
	logger  *zap.Logger
	command setterCommand
	path    string
}

// NewWallpaperSink detects a wallpaper setter and prepares the frame file
func NewWallpaperSink(logger *zap.Logger, dir string) (*WallpaperSink, error) {
	cmd := detectCommand(logger)
	if cmd.Binary == "" {
		return nil, fmt.Errorf("no supported wallpaper command found on this system")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Info("Wallpaper setter detected",
		zap.String("name", cmd.Name),
		zap.String("binary", cmd.Binary))

	return &WallpaperSink{
		logger:  logger,
		command: cmd,
		path:    filepath.Join(dir, "frame.jpg"),
	}, nil
}

// detectCommand analyzes the environment to choose the best wallpaper command
func detectCommand(logger *zap.Logger) setterCommand {
	desktop := os.Getenv("XDG_CURRENT_DESKTOP")
	session := os.Getenv("XDG_SESSION_TYPE")
	wayland := os.Getenv("WAYLAND_DISPLAY")
	hyprland := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")

	logger.Debug("Detecting wallpaper command",
		zap.String("desktop", desktop),
		zap.String("session", session),
		zap.String("wayland", wayland),
		zap.String("hyprland", hyprland))

	if hyprland != "" {
		for _, cmd := range setterCommands {
			if (cmd.Name == "swww" || cmd.Name == "hyprpaper") && commandExists(cmd.Binary) {
				return cmd
			}
		}
	}

	if strings.Contains(strings.ToLower(desktop), "gnome") {
		for _, cmd := range setterCommands {
			if cmd.Name == "gnome" && commandExists(cmd.Binary) {
				return cmd
			}
		}
	}

	if wayland != "" || session == "wayland" {
		for _, cmd := range setterCommands {
			if (cmd.Name == "swww" || cmd.Name == "swaybg") && commandExists(cmd.Binary) {
				return cmd
			}
		}
	}

	for _, cmd := range setterCommands {
		if commandExists(cmd.Binary) {
			logger.Info("Using fallback wallpaper command", zap.String("name", cmd.Name))
			return cmd
		}
	}

	return setterCommand{}
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// SupportsPartial reports that only full-surface presents work here
func (s *WallpaperSink) SupportsPartial() bool {
	return false
}

// Present writes the frame to disk and invokes the wallpaper setter
func (s *WallpaperSink) Present(surface *image.RGBA, regions []image.Rectangle) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := jpeg.Encode(f, surface, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write frame file: %w", err)
	}

	args := make([]string, len(s.command.Args))
	for i, arg := range s.command.Args {
		args[i] = strings.ReplaceAll(arg, "%s", s.path)
	}

	cmd := exec.Command(s.command.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to set wallpaper with %s: %w (output: %s)",
			s.command.Name, err, string(output))
	}

	s.logger.Debug("Frame presented as wallpaper", zap.String("path", s.path))
	return nil
}
