package convert

import "github.com/stenocore/steno/segment"

// Macro is a named formatting macro, spec §4.G "{:macro:args}", e.g. a
// retroactive case change over already-emitted text.
type Macro func(args []string, state *State) string

// Converter walks a segment list into a key-code buffer.
type Converter struct {
	Macros map[string]Macro
}

// New builds a Converter. A nil macros map means no macros are
// registered; unknown macro directives are then always treated as
// malformed (spec §4.E "A malformed directive in text is logged and
// treated as inert").
func New(macros map[string]Macro) *Converter {
	if macros == nil {
		macros = map[string]Macro{}
	}
	return &Converter{Macros: macros}
}

// Convert produces a key-code buffer "as if emitting from scratch"
// (spec §4.G) from segments, starting from state. It returns the
// buffer and the formatting state after the last segment, which the
// engine threads into the next Convert call's starting state.
func (c *Converter) Convert(segments segment.List, state State) (*Buffer, State) {
	buf := &Buffer{}
	suppressNextLeadingSpace := true // nothing precedes the first segment

	for _, seg := range segments {
		tokens := parseSegmentText(seg.Text)

		leadingGlue := false
		trailingGlue := false
		var pending []any

		for _, tok := range tokens {
			switch t := tok.(type) {
			case string:
				pending = append(pending, t)
			case directive:
				switch {
				case t.glueWhole:
					leadingGlue = true
					trailingGlue = true
				case t.glueBefore && t.glueAfter:
					leadingGlue = true
					trailingGlue = true
					pending = append(pending, t.glueText)
				case t.glueBefore:
					leadingGlue = true
					pending = append(pending, t.glueText)
				case t.glueAfter:
					trailingGlue = true
					pending = append(pending, t.glueText)
				case t.hasCase:
					state.Case = t.setCase
				case t.hasRawKey:
					if code, ok := lookupScanCode(t.rawKeyName); ok {
						buf.appendRawKey(code, 0)
					}
					// unknown key name: malformed, stripped silently.
				case t.hasMacro:
					if macro, ok := c.Macros[t.macroName]; ok {
						pending = append(pending, macro(t.macroArgs, &state))
					}
					// unknown macro: malformed, stripped silently.
				case t.malformed:
					// logged-and-stripped per spec §7; this package has
					// no logging sink wired in, so the directive is
					// simply dropped from output.
				}
			}
		}

		if !suppressNextLeadingSpace && !leadingGlue {
			buf.appendText(state.Space)
		}

		text := joinStrings(pending)
		text = state.Case.apply(text)
		if state.Case == CaseTitleNext {
			state.Case = CaseNormal
		}
		buf.appendText(text)

		suppressNextLeadingSpace = trailingGlue
	}

	return buf, state
}

func joinStrings(parts []any) string {
	var out string
	for _, p := range parts {
		if s, ok := p.(string); ok {
			out += s
		}
	}
	return out
}
