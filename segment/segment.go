// Package segment implements the longest-match stroke-to-segment
// translator (spec §4.E): it converts a window of strokes into an
// ordered list of segments, consulting a dictionary stack and retrying
// with auto-suffix stripping before falling back to fingerspelling.
package segment

import "github.com/stenocore/steno/stroke"

// Segment is the translation of one outline (or a synthetic
// auto-suffix) into output text. Start and Length index into the
// stroke window the segment was built from; Length is 0 for a
// synthetic auto-suffix segment, which consumes no additional strokes
// of its own (spec §4.E "appends the auto-suffix as a synthetic
// adjacent segment").
type Segment struct {
	Start         int
	Length        int
	Text          string
	Source        string
	Fingerspelled bool
	Synthetic     bool
}

// StrokeSpan is the number of strokes this segment accounts for.
func (s Segment) StrokeSpan() int { return s.Length }

// List is an ordered sequence of segments whose stroke spans sum to the
// length of the window they were built from.
type List []Segment

// StrokeCount is the total number of strokes the segments in l consume.
func (l List) StrokeCount() int {
	n := 0
	for _, s := range l {
		n += s.Length
	}
	return n
}
