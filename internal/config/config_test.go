package config

import (
	"testing"

	"github.com/genricoloni/spindeck/internal/domain"
	"github.com/genricoloni/spindeck/internal/rotation"
	"go.uber.org/zap"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig(zap.NewNop())

	if cfg.GetSkin() != "turntable" {
		t.Errorf("expected default skin turntable, got %q", cfg.GetSkin())
	}
	if cfg.GetSinkMode() != "png" {
		t.Errorf("expected default sink png, got %q", cfg.GetSinkMode())
	}
	if cfg.GetFrameRate() != 30 {
		t.Errorf("expected default 30 fps, got %d", cfg.GetFrameRate())
	}
	if cfg.GetMaxPresentFailures() != 10 {
		t.Errorf("expected default failure cap 10, got %d", cfg.GetMaxPresentFailures())
	}
	if cfg.GetOutputDir() == "" {
		t.Error("expected a default output directory")
	}
}

func TestNewAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SPINDECK_SKIN", "cassette")
	t.Setenv("SPINDECK_SINK", "wallpaper")
	t.Setenv("SPINDECK_FPS", "60")
	t.Setenv("SPINDECK_VOLUME_STYLE", "knob")
	t.Setenv("SPINDECK_WIDTH", "800")
	t.Setenv("SPINDECK_HEIGHT", "480")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.GetSkin() != "cassette" {
		t.Errorf("expected cassette, got %q", cfg.GetSkin())
	}
	if cfg.GetSinkMode() != "wallpaper" {
		t.Errorf("expected wallpaper, got %q", cfg.GetSinkMode())
	}
	if cfg.GetFrameRate() != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.GetFrameRate())
	}
	if cfg.GetVolumeStyle() != "knob" {
		t.Errorf("expected knob, got %q", cfg.GetVolumeStyle())
	}
	if w, h := cfg.SurfaceSize(); w != 800 || h != 480 {
		t.Errorf("expected 800x480, got %dx%d", w, h)
	}
}

func TestNewAppConfig_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SPINDECK_FPS", "fast")
	cfg := NewAppConfig(zap.NewNop())
	if cfg.GetFrameRate() != 30 {
		t.Errorf("expected the default fps on a bad value, got %d", cfg.GetFrameRate())
	}
}

func TestGeometry_Variants(t *testing.T) {
	res := &domain.ScreenResolution{Width: 800, Height: 480}

	t.Run("Basic", func(t *testing.T) {
		t.Setenv("SPINDECK_SKIN", "basic")
		cfg := NewAppConfig(zap.NewNop())

		geom, err := cfg.Geometry(res)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if geom.Variant != rotation.Basic {
			t.Errorf("expected basic variant, got %s", geom.Variant)
		}
		if !geom.Background.BlurArt {
			t.Error("basic skin backgrounds follow the album art")
		}
		if geom.AlbumArt == nil {
			t.Fatal("basic skin needs an album art slot")
		}
		if geom.ReelLeft != nil || geom.ReelRight != nil || geom.Tonearm != nil {
			t.Error("basic skin must not carry mechanics")
		}
	})

	t.Run("Cassette", func(t *testing.T) {
		t.Setenv("SPINDECK_SKIN", "cassette")
		cfg := NewAppConfig(zap.NewNop())

		geom, err := cfg.Geometry(res)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if geom.ReelLeft == nil || geom.ReelRight == nil {
			t.Fatal("cassette skin needs both reels")
		}
		if geom.Tonearm != nil {
			t.Error("cassette skin has no tonearm")
		}
		if geom.ReelLeft.Speed != geom.ReelRight.Speed {
			t.Error("cassette reels spin at the same rate")
		}
	})

	t.Run("Turntable", func(t *testing.T) {
		t.Setenv("SPINDECK_SKIN", "turntable")
		cfg := NewAppConfig(zap.NewNop())

		geom, err := cfg.Geometry(res)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if geom.ReelLeft == nil {
			t.Fatal("turntable skin needs the platter reel slot")
		}
		if geom.ReelRight != nil {
			t.Error("a second reel would conflict with the tonearm")
		}
		if geom.Tonearm == nil {
			t.Fatal("turntable skin needs a tonearm")
		}
		if geom.AlbumArt == nil || !geom.AlbumArt.Circle || !geom.AlbumArt.Rotate {
			t.Error("turntable art is a spinning disc")
		}
	})

	t.Run("Unknown skin", func(t *testing.T) {
		t.Setenv("SPINDECK_SKIN", "8track")
		cfg := NewAppConfig(zap.NewNop())
		if _, err := cfg.Geometry(res); err == nil {
			t.Error("expected an error for an unknown skin")
		}
	})

	t.Run("Unknown volume style", func(t *testing.T) {
		t.Setenv("SPINDECK_SKIN", "basic")
		t.Setenv("SPINDECK_VOLUME_STYLE", "dial")
		cfg := NewAppConfig(zap.NewNop())
		if _, err := cfg.Geometry(res); err == nil {
			t.Error("expected an error for an unknown volume style")
		}
	})

	t.Run("Explicit size wins over the screen", func(t *testing.T) {
		t.Setenv("SPINDECK_SKIN", "basic")
		t.Setenv("SPINDECK_WIDTH", "400")
		t.Setenv("SPINDECK_HEIGHT", "240")
		cfg := NewAppConfig(zap.NewNop())

		geom, err := cfg.Geometry(res)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if geom.Size.X != 400 || geom.Size.Y != 240 {
			t.Errorf("expected 400x240, got %v", geom.Size)
		}
	})
}
