package convert

import (
	"regexp"
	"strconv"
	"strings"
)

var directivePattern = regexp.MustCompile(`\{([^{}]*)\}`)

// directive is one parsed `{...}` token from a segment's translation
// text, spec §4.G.
type directive struct {
	raw             string
	glueWhole       bool // {^}
	glueBefore      bool // {^text}
	glueAfter       bool // {text^}
	setCase         CaseMode
	hasCase         bool
	glueText        string // literal text carried by a glue directive
	rawKeyName      string // {#key}
	macroName       string
	macroArgs       []string
	hasMacro        bool
	hasRawKey       bool
	malformed       bool
}

// parseSegmentText splits translation text into literal runs and
// directives, in order of appearance.
func parseSegmentText(text string) []any {
	var out []any
	last := 0
	for _, loc := range directivePattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			out = append(out, text[last:loc[0]])
		}
		body := text[loc[2]:loc[3]]
		out = append(out, parseDirective(body))
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, text[last:])
	}
	return out
}

func parseDirective(body string) directive {
	switch body {
	case "^":
		return directive{raw: body, glueWhole: true}
	case "-|", "<":
		return directive{raw: body, hasCase: true, setCase: CaseTitleNext}
	case ">":
		return directive{raw: body, hasCase: true, setCase: CaseUpper}
	}

	if strings.HasPrefix(body, "^") {
		return directive{raw: body, glueBefore: true, glueText: strings.TrimPrefix(body, "^")}
	}
	if strings.HasSuffix(body, "^") {
		return directive{raw: body, glueAfter: true, glueText: strings.TrimSuffix(body, "^")}
	}
	if strings.HasPrefix(body, "&") {
		return directive{raw: body, glueBefore: true, glueAfter: true, glueText: strings.TrimPrefix(body, "&")}
	}
	if strings.HasPrefix(body, "#") {
		return directive{raw: body, hasRawKey: true, rawKeyName: strings.TrimPrefix(body, "#")}
	}
	if strings.HasPrefix(body, ":") {
		parts := strings.Split(strings.TrimPrefix(body, ":"), ":")
		name := parts[0]
		var args []string
		if len(parts) > 1 {
			args = parts[1:]
		}
		return directive{raw: body, hasMacro: true, macroName: name, macroArgs: args}
	}

	return directive{raw: body, malformed: true}
}

// scanCode is a minimal key-name -> scan code table for {#key}
// directives, covering the keys the conversion layer is likely to be
// asked to emit literally (arrows, editing keys). Unknown names are
// reported as not found; the caller treats that as a malformed
// directive.
var scanCode = map[string]int{
	"Return":    0x28,
	"Tab":       0x2b,
	"Escape":    0x29,
	"Backspace": 0x2a,
	"Up":        0x52,
	"Down":      0x51,
	"Left":      0x50,
	"Right":     0x4f,
}

func lookupScanCode(name string) (int, bool) {
	if code, ok := scanCode[name]; ok {
		return code, true
	}
	if code, err := strconv.Atoi(name); err == nil {
		return code, true
	}
	return 0, false
}
