// Package convert implements the text converter (spec §4.G): it walks
// a segment list, parses formatting directives embedded in translation
// text, and produces a key-code buffer the engine diffs against the
// previous one.
package convert

// EventKind distinguishes the kinds of key-code events spec §3's
// "Key-Code Buffer" is built from.
type EventKind int

const (
	// Text is a run of plain UTF-8 text to emit.
	Text EventKind = iota
	// Backspace deletes the previous Count characters.
	Backspace
	// RawKey emits a single raw key event (scan code + modifiers),
	// spec §4.G "{#key}".
	RawKey
)

// Event is one emitted key-code event.
type Event struct {
	Kind      EventKind
	Text      string
	Count     int // Backspace count
	ScanCode  int // RawKey
	Modifiers int // RawKey
}

// Buffer is the ordered sequence of key-code events produced by
// converting a segment list, spec §3 "Key-Code Buffer".
type Buffer struct {
	Events []Event
	// Text is the flattened visible text the buffer renders, used by
	// the engine to compute the longest-common-prefix diff between
	// successive buffers (spec §4.H).
	Text string
}

func (b *Buffer) appendText(s string) {
	if s == "" {
		return
	}
	if n := len(b.Events); n > 0 && b.Events[n-1].Kind == Text {
		b.Events[n-1].Text += s
	} else {
		b.Events = append(b.Events, Event{Kind: Text, Text: s})
	}
	b.Text += s
}

func (b *Buffer) appendRawKey(scanCode, modifiers int) {
	b.Events = append(b.Events, Event{Kind: RawKey, ScanCode: scanCode, Modifiers: modifiers})
}
