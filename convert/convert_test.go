package convert

import (
	"testing"

	"github.com/stenocore/steno/segment"
)

func TestConvertInsertsSpacesBetweenSegments(t *testing.T) {
	c := New(nil)
	segs := segment.List{
		{Text: "hello"},
		{Text: "world"},
	}
	buf, _ := c.Convert(segs, DefaultState())

	if buf.Text != "hello world" {
		t.Fatalf("Text = %q, want %q", buf.Text, "hello world")
	}
}

func TestConvertGlueSuppressesSpaceBothSides(t *testing.T) {
	c := New(nil)
	segs := segment.List{
		{Text: "a"},
		{Text: "{^}b"},
		{Text: "c"},
	}
	buf, _ := c.Convert(segs, DefaultState())

	if buf.Text != "abc" {
		t.Fatalf("Text = %q, want %q", buf.Text, "abc")
	}
}

func TestConvertGlueBeforeOnly(t *testing.T) {
	c := New(nil)
	segs := segment.List{
		{Text: "hello"},
		{Text: "{^ing}"},
		{Text: "world"},
	}
	buf, _ := c.Convert(segs, DefaultState())

	if buf.Text != "helloing world" {
		t.Fatalf("Text = %q, want %q", buf.Text, "helloing world")
	}
}

func TestConvertTitleNextCapitalizesOnlyNextSegment(t *testing.T) {
	c := New(nil)
	segs := segment.List{
		{Text: "{-|}hello"},
		{Text: "world"},
	}
	buf, _ := c.Convert(segs, DefaultState())

	if buf.Text != "Hello world" {
		t.Fatalf("Text = %q, want %q", buf.Text, "Hello world")
	}
}

func TestConvertMacroInvocation(t *testing.T) {
	macros := map[string]Macro{
		"upper": func(args []string, state *State) string {
			out := ""
			for _, a := range args {
				out += a
			}
			return out
		},
	}
	c := New(macros)
	segs := segment.List{{Text: "{:upper:HI}"}}
	buf, _ := c.Convert(segs, DefaultState())

	if buf.Text != "HI" {
		t.Fatalf("Text = %q, want %q", buf.Text, "HI")
	}
}

func TestConvertMalformedDirectiveIsStripped(t *testing.T) {
	c := New(nil)
	segs := segment.List{{Text: "hello{!!!}world"}}
	buf, _ := c.Convert(segs, DefaultState())

	if buf.Text != "helloworld" {
		t.Fatalf("Text = %q, want %q", buf.Text, "helloworld")
	}
}

func TestConvertRawKeyEmitsEvent(t *testing.T) {
	c := New(nil)
	segs := segment.List{{Text: "{#Return}"}}
	buf, _ := c.Convert(segs, DefaultState())

	found := false
	for _, e := range buf.Events {
		if e.Kind == RawKey && e.ScanCode == 0x28 {
			found = true
		}
	}
	if !found {
		t.Fatalf("Events = %+v, want a RawKey event for Return", buf.Events)
	}
}
