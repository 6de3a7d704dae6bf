package sink

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
)

type stubConfig struct {
	mode string
	dir  string
}

func (c stubConfig) GetSkin() string      { return "basic" }
func (c stubConfig) GetFrameRate() int    { return 30 }
func (c stubConfig) GetOutputDir() string { return c.dir }
func (c stubConfig) GetSinkMode() string  { return c.mode }

func TestNew_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		mode    string
		partial bool
		wantErr bool
	}{
		{"PNG sink", "png", true, false},
		{"Default is PNG", "", true, false},
		{"Unknown mode", "x11", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(zap.NewNop(), stubConfig{mode: tt.mode, dir: dir})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unknown sink mode")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.SupportsPartial() != tt.partial {
				t.Errorf("SupportsPartial = %v, expected %v", s.SupportsPartial(), tt.partial)
			}
		})
	}
}

func TestPNGSink_Present(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPNGSink(zap.NewNop(), dir)
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}

	surface := image.NewRGBA(image.Rect(0, 0, 16, 16))
	if err := s.Present(surface, []image.Rectangle{surface.Bounds()}); err != nil {
		t.Fatalf("present failed: %v", err)
	}

	frame := filepath.Join(dir, frameFilename)
	info, err := os.Stat(frame)
	if err != nil {
		t.Fatalf("frame file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("frame file is empty")
	}

	// No half-written temp files remain after the rename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the frame file, found %d entries", len(entries))
	}

	// A second present overwrites atomically.
	if err := s.Present(surface, nil); err != nil {
		t.Fatalf("second present failed: %v", err)
	}
}

func TestNewPNGSink_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "frames")
	if _, err := NewPNGSink(zap.NewNop(), dir); err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

var _ domain.Sink = (*PNGSink)(nil)
