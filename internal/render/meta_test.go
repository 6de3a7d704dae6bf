package render

import (
	"image"
	"testing"
	"time"

	"github.com/genricoloni/spindeck/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

func TestFormatMeta(t *testing.T) {
	tests := []struct {
		name     string
		in       *domain.FrameInput
		expected string
	}{
		{
			name:     "Nil input",
			in:       nil,
			expected: "",
		},
		{
			name:     "Clock only",
			in:       &domain.FrameInput{Elapsed: 75 * time.Second, Remaining: 120 * time.Second},
			expected: "01:15 / -02:00",
		},
		{
			name: "Clock with sample rate",
			in: &domain.FrameInput{
				Elapsed: 10 * time.Second, Remaining: 20 * time.Second,
				SampleRate: 44100,
			},
			expected: "00:10 / -00:20  44.1kHz",
		},
		{
			name: "Clock with full format",
			in: &domain.FrameInput{
				Elapsed: 10 * time.Second, Remaining: 20 * time.Second,
				SampleRate: 96000, BitDepth: 24,
			},
			expected: "00:10 / -00:20  96kHz/24bit",
		},
		{
			name:     "Negative durations clamp to zero",
			in:       &domain.FrameInput{Elapsed: -time.Second, Remaining: -time.Second},
			expected: "00:00 / -00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMeta(tt.in); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMetaText_RedrawsOncePerTextChange(t *testing.T) {
	m := NewMetaText(zap.NewNop(), basicfont.Face7x13, nil, image.Rect(0, 0, 150, 16))

	in := &domain.FrameInput{Elapsed: 10 * time.Second, Remaining: 20 * time.Second}
	if _, _, changed := m.Render(in); !changed {
		t.Fatal("first render must report changed")
	}

	// Sub-second elapsed movement keeps the same mm:ss string.
	in2 := *in
	in2.Elapsed += 400 * time.Millisecond
	in2.Remaining -= 400 * time.Millisecond
	if _, _, changed := m.Render(&in2); changed {
		t.Error("redraw without a visible text change")
	}

	in3 := *in
	in3.Elapsed += time.Second
	if _, _, changed := m.Render(&in3); !changed {
		t.Error("crossing a second boundary must redraw")
	}
}
