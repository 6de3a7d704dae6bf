package compositor

import "image"

// RegionSet accumulates the screen rectangles requiring redraw this frame.
// It is built from changed layers plus forcing-rule additions and cleared
// after presentation.
type RegionSet struct {
	rects []image.Rectangle
}

// Add records a rectangle. Empty rectangles are ignored; a rectangle
// already covered by a recorded one is dropped.
func (s *RegionSet) Add(r image.Rectangle) {
	if r.Empty() {
		return
	}
	for _, have := range s.rects {
		if r.In(have) {
			return
		}
	}
	s.rects = append(s.rects, r)
}

// Intersects reports whether r overlaps any recorded rectangle
func (s *RegionSet) Intersects(r image.Rectangle) bool {
	for _, have := range s.rects {
		if have.Overlaps(r) {
			return true
		}
	}
	return false
}

// Covers reports whether some recorded rectangle fully contains r
func (s *RegionSet) Covers(r image.Rectangle) bool {
	for _, have := range s.rects {
		if r.In(have) {
			return true
		}
	}
	return false
}

// Bounds returns the union of all recorded rectangles
func (s *RegionSet) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, r := range s.rects {
		b = b.Union(r)
	}
	return b
}

// Empty reports whether nothing was recorded
func (s *RegionSet) Empty() bool {
	return len(s.rects) == 0
}

// Regions returns a copy of the recorded rectangles
func (s *RegionSet) Regions() []image.Rectangle {
	out := make([]image.Rectangle, len(s.rects))
	copy(out, s.rects)
	return out
}

// Reset clears the set for the next frame
func (s *RegionSet) Reset() {
	s.rects = s.rects[:0]
}
